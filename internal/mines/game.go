package mines

import (
	"fmt"
	"log/slog"
)

var Log *slog.Logger = slog.Default()

type Phase int8

const (
	InProgress Phase = iota
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("phase(%d)", int8(p))
	}
}

// Outcome is the result of a single reveal request. AlreadyTerminal and
// AlreadyRevealed are no-ops the caller is expected to ignore.
type Outcome int8

const (
	Continue Outcome = iota
	Win
	Loss
	AlreadyTerminal
	AlreadyRevealed
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Win:
		return "win"
	case Loss:
		return "loss"
	case AlreadyTerminal:
		return "already terminal"
	case AlreadyRevealed:
		return "already revealed"
	default:
		return fmt.Sprintf("outcome(%d)", int8(o))
	}
}

// Terminal reports whether the outcome ended the game.
func (o Outcome) Terminal() bool {
	return o == Win || o == Loss
}

// GameState is not safe for concurrent use; callers serialize reveals.
type GameState struct {
	board         *Board
	safeRemaining int
	phase         Phase
}

func NewGameState(board *Board) *GameState {
	return &GameState{
		board:         board,
		safeRemaining: len(board.cells) - len(board.mines),
		phase:         InProgress,
	}
}

// NewGame generates a board and wraps it in a fresh state.
func NewGame(params GameParams, seed uint64) (*GameState, error) {
	board, err := GenerateSeeded(params, seed)
	if err != nil {
		return nil, err
	}
	return NewGameState(board), nil
}

func (s *GameState) Board() *Board { return s.board }
func (s *GameState) Phase() Phase { return s.phase }
func (s *GameState) Remaining() int { return s.safeRemaining }
func (s *GameState) Terminal() bool { return s.phase != InProgress }

func (s *GameState) Reveal(row, col int) (Outcome, error) {
	i, err := s.board.index(row, col)
	if err != nil {
		return 0, err
	}
	if s.phase != InProgress {
		return AlreadyTerminal, nil
	}

	cell := &s.board.cells[i]
	if cell.Revealed {
		return AlreadyRevealed, nil
	}

	switch {
	case cell.Kind == Mine:
		cell.Revealed = true
		s.phase = Lost
		Log.Debug("mine hit", slog.Int("row", row), slog.Int("col", col))
		return Loss, nil
	case cell.Kind == Blank:
		s.floodFill(i)
	default:
		cell.Revealed = true
		s.safeRemaining--
	}

	if s.safeRemaining == 0 {
		s.phase = Won
		Log.Debug("board cleared", slog.Int("row", row), slog.Int("col", col))
		return Win, nil
	}
	return Continue, nil
}

// floodFill opens the connected blank region around origin. Numbered
// cells on the border are opened but do not spread the fill; mines are
// never touched.
func (s *GameState) floodFill(origin int) {
	cells := s.board.cells
	visited := make([]bool, len(cells))
	stack := []int{origin}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[i] {
			continue
		}
		visited[i] = true
		if !cells[i].Revealed {
			cells[i].Revealed = true
			s.safeRemaining--
		}

		for j := range neighbours(s.board.size, i) {
			switch n := &cells[j]; {
			case n.Kind == Blank:
				if !visited[j] && !n.Revealed {
					stack = append(stack, j)
				}
			case n.Kind.IsNumbered():
				if !n.Revealed {
					n.Revealed = true
					s.safeRemaining--
				}
			}
		}
	}
}

// RevealMines uncovers every mine for the end-of-game display. It does
// nothing while the game is still in progress.
func (s *GameState) RevealMines() []Point {
	if s.phase == InProgress {
		return nil
	}
	for _, i := range s.board.mines {
		s.board.cells[i].Revealed = true
	}
	return s.board.MinePositions()
}
