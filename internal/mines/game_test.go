package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, params GameParams, mines ...int) *GameState {
	t.Helper()
	b, err := NewBoard(params, mines)
	require.NoError(t, err)
	return NewGameState(b)
}

func revealedSet(s *GameState) map[int]bool {
	set := make(map[int]bool)
	for i, c := range s.board.cells {
		if c.Revealed {
			set[i] = true
		}
	}
	return set
}

// closure computes, independently of floodFill, every cell opened by
// revealing the blank cell at origin on an untouched board.
func closure(b *Board, origin int) map[int]bool {
	out := map[int]bool{origin: true}
	queue := []int{origin}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		row, col := i/b.size, i%b.size
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := row+dr, col+dc
				if !b.InBounds(r, c) {
					continue
				}
				j := r*b.size + c
				if out[j] || b.cells[j].Kind == Mine {
					continue
				}
				out[j] = true
				if b.cells[j].Kind == Blank {
					queue = append(queue, j)
				}
			}
		}
	}
	return out
}

func TestRevealNumberedNextToCentreMine(t *testing.T) {
	s := newTestGame(t, GameParams{Size: 3, MineCount: 1}, 4)
	require.Equal(t, 8, s.Remaining())

	kind, err := s.Board().CellKind(0, 0)
	require.NoError(t, err)
	require.Equal(t, CellKind(1), kind)

	outcome, err := s.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
	assert.Equal(t, 7, s.Remaining())
	assert.Equal(t, map[int]bool{0: true}, revealedSet(s))
	assert.Equal(t, InProgress, s.Phase())
}

func TestRevealBlankFloodsToWin(t *testing.T) {
	s := newTestGame(t, GameParams{Size: 3, MineCount: 1}, 0)

	outcome, err := s.Reveal(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Win, outcome)
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, Won, s.Phase())
	assert.Len(t, revealedSet(s), 8)

	revealed, err := s.Board().IsRevealed(0, 0)
	require.NoError(t, err)
	assert.False(t, revealed, "mine must not be opened by flood fill")
}

func TestRevealMineLoses(t *testing.T) {
	s := newTestGame(t, GameParams{Size: 3, MineCount: 1}, 4)

	_, err := s.Reveal(0, 0)
	require.NoError(t, err)
	before := s.Remaining()

	outcome, err := s.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Loss, outcome)
	assert.Equal(t, Lost, s.Phase())
	assert.Equal(t, before, s.Remaining())

	revealed, err := s.Board().IsRevealed(1, 1)
	require.NoError(t, err)
	assert.True(t, revealed)
}

func TestRevealAfterLossIsTerminal(t *testing.T) {
	s := newTestGame(t, GameParams{Size: 3, MineCount: 1}, 4)

	outcome, err := s.Reveal(1, 1)
	require.NoError(t, err)
	require.Equal(t, Loss, outcome)

	snapshot := revealedSet(s)
	for row := range 3 {
		for col := range 3 {
			outcome, err := s.Reveal(row, col)
			require.NoError(t, err)
			assert.Equal(t, AlreadyTerminal, outcome)
		}
	}
	assert.Equal(t, snapshot, revealedSet(s))
	assert.Equal(t, 8, s.Remaining())
	assert.Equal(t, Lost, s.Phase())
}

func TestRevealAfterWinIsTerminal(t *testing.T) {
	s := newTestGame(t, GameParams{Size: 3, MineCount: 1}, 0)
	outcome, err := s.Reveal(2, 2)
	require.NoError(t, err)
	require.Equal(t, Win, outcome)

	outcome, err = s.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, AlreadyTerminal, outcome)
	assert.Equal(t, Won, s.Phase())
}

func TestRevealTwiceIsIdempotent(t *testing.T) {
	s := newTestGame(t, GameParams{Size: 3, MineCount: 1}, 4)

	outcome, err := s.Reveal(2, 1)
	require.NoError(t, err)
	require.Equal(t, Continue, outcome)

	remaining, phase := s.Remaining(), s.Phase()
	outcome, err = s.Reveal(2, 1)
	require.NoError(t, err)
	assert.Equal(t, AlreadyRevealed, outcome)
	assert.Equal(t, remaining, s.Remaining())
	assert.Equal(t, phase, s.Phase())
}

func TestRevealOutOfBounds(t *testing.T) {
	s := newTestGame(t, GameParams{Size: 3, MineCount: 1}, 4)

	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		_, err := s.Reveal(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, "%+v", p)
	}
	assert.Equal(t, 8, s.Remaining())
	assert.Empty(t, revealedSet(s))
}

func TestDenseNeighbourhoodLabeling(t *testing.T) {
	// Top row mined: the centre cell sees three mines.
	t.Run("classic", func(t *testing.T) {
		s := newTestGame(t, GameParams{Size: 3, MineCount: 3}, 0, 1, 2)

		kind, err := s.Board().CellKind(1, 1)
		require.NoError(t, err)
		require.True(t, kind.IsBlank())

		outcome, err := s.Reveal(1, 1)
		require.NoError(t, err)
		assert.Equal(t, Win, outcome)
		assert.Equal(t, 0, s.Remaining())
	})

	t.Run("standard", func(t *testing.T) {
		s := newTestGame(t, GameParams{Size: 3, MineCount: 3, Labeling: LabelStandard}, 0, 1, 2)

		kind, err := s.Board().CellKind(1, 1)
		require.NoError(t, err)
		require.Equal(t, CellKind(3), kind)

		outcome, err := s.Reveal(1, 1)
		require.NoError(t, err)
		assert.Equal(t, Continue, outcome)
		assert.Equal(t, 5, s.Remaining())
		assert.Equal(t, map[int]bool{4: true}, revealedSet(s))
	})
}

func TestFloodFillClosure(t *testing.T) {
	t.Parallel()

	for _, labeling := range []Labeling{LabelClassic, LabelStandard} {
		t.Run(labeling.String(), func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			params := GameParams{Size: 16, MineCount: 30, Labeling: labeling}

			for range 50 {
				b, err := Generate(params, r)
				require.NoError(t, err)
				s := NewGameState(b)

				blanks := []int{}
				for i, c := range b.cells {
					if c.Kind == Blank {
						blanks = append(blanks, i)
					}
				}
				if len(blanks) == 0 {
					continue
				}
				origin := blanks[r.IntN(len(blanks))]
				want := closure(b, origin)

				outcome, err := s.Reveal(origin/params.Size, origin%params.Size)
				require.NoError(t, err)

				assert.Equal(t, want, revealedSet(s))
				assert.Equal(t, params.SafeCount()-len(want), s.Remaining())
				if s.Remaining() == 0 {
					assert.Equal(t, Win, outcome)
				} else {
					assert.Equal(t, Continue, outcome)
				}
			}
		})
	}
}

func TestWinOnlyWhenAllSafeCellsRevealed(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	params := GameParams{Size: 8, MineCount: 10}

	for range 50 {
		b, err := Generate(params, r)
		require.NoError(t, err)
		s := NewGameState(b)

		order := r.Perm(params.CellCount())
		wins := 0
		for _, i := range order {
			if b.cells[i].Kind == Mine {
				continue
			}
			before := s.Remaining()
			outcome, err := s.Reveal(i/params.Size, i%params.Size)
			require.NoError(t, err)

			switch outcome {
			case AlreadyRevealed:
				assert.Equal(t, before, s.Remaining())
			case Win:
				wins++
				assert.Equal(t, 0, s.Remaining())
			case Continue:
				assert.Positive(t, s.Remaining())
				assert.Less(t, s.Remaining(), before)
			default:
				t.Fatalf("unexpected outcome %s", outcome)
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, Won, s.Phase())
	}
}

func TestMineNeverWins(t *testing.T) {
	// Every safe cell but one is open; hitting the mine still loses.
	s := newTestGame(t, GameParams{Size: 2, MineCount: 1}, 0)
	for _, p := range []Point{{0, 1}, {1, 0}} {
		outcome, err := s.Reveal(p.Row, p.Col)
		require.NoError(t, err)
		require.Equal(t, Continue, outcome)
	}
	require.Equal(t, 1, s.Remaining())

	outcome, err := s.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Loss, outcome)
	assert.Equal(t, Lost, s.Phase())
	assert.Equal(t, 1, s.Remaining())
}

func TestFloodFillLargeGrid(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	params := GameParams{Size: 400, MineCount: 1}
	s := newTestGame(t, params, 0)

	outcome, err := s.Reveal(399, 399)
	require.NoError(t, err)
	assert.Equal(t, Win, outcome)
	assert.Equal(t, 0, s.Remaining())
}

func TestRevealMines(t *testing.T) {
	s := newTestGame(t, GameParams{Size: 3, MineCount: 2}, 0, 8)
	assert.Nil(t, s.RevealMines())

	_, err := s.Reveal(0, 0)
	require.NoError(t, err)

	points := s.RevealMines()
	assert.Equal(t, []Point{{0, 0}, {2, 2}}, points)
	for _, p := range points {
		revealed, err := s.Board().IsRevealed(p.Row, p.Col)
		require.NoError(t, err)
		assert.True(t, revealed)
	}
	assert.Equal(t, 7, s.Remaining())
}

func TestNewGame(t *testing.T) {
	s, err := NewGame(DefaultParams(), 42)
	require.NoError(t, err)
	assert.Equal(t, 54, s.Remaining())
	assert.Equal(t, InProgress, s.Phase())
	assert.False(t, s.Terminal())

	_, err = NewGame(GameParams{Size: 2, MineCount: 4}, 42)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
