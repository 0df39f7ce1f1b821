package mines

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// CellKind is what a cell holds. Values 1 to 8 are numbered cells showing
// their neighbour mine count.
type CellKind int8

const (
	Mine  CellKind = -1
	Blank CellKind = 0
)

func (k CellKind) IsMine() bool { return k == Mine }
func (k CellKind) IsBlank() bool { return k == Blank }
func (k CellKind) IsNumbered() bool { return 1 <= k && k <= 8 }

func (k CellKind) String() string {
	switch {
	case k == Mine:
		return "*"
	case k == Blank:
		return "."
	case k.IsNumbered():
		return strconv.Itoa(int(k))
	default:
		return "!"
	}
}

type Cell struct {
	Kind     CellKind
	Revealed bool
}

// Board is an N×N grid stored row-major. Only the reveal engine in this
// package changes the revealed flags; everything else reads.
type Board struct {
	size  int
	cells []Cell
	mines []int /* sorted flat indices */
}

// NewBoard lays out mines at the given flat indices and labels every other
// cell according to params.Labeling.
func NewBoard(params GameParams, mines []int) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	size, mineCount, labeling := params.Unpack()
	if len(mines) != mineCount {
		return nil, fmt.Errorf(
			"%w: expected %d mines, got %d", ErrInvalidConfig, mineCount, len(mines),
		)
	}

	b := &Board{
		size:  size,
		cells: make([]Cell, size*size),
		mines: slices.Clone(mines),
	}
	slices.Sort(b.mines)

	for n, i := range b.mines {
		if i < 0 || i >= len(b.cells) {
			return nil, fmt.Errorf("%w: mine index %d out of range", ErrInvalidConfig, i)
		}
		if n > 0 && b.mines[n-1] == i {
			return nil, fmt.Errorf("%w: duplicate mine index %d", ErrInvalidConfig, i)
		}
		b.cells[i].Kind = Mine
	}

	for i := range b.cells {
		if b.cells[i].Kind == Mine {
			continue
		}
		b.cells[i].Kind = labeling.label(b.adjacent(i))
	}

	return b, nil
}

func (b *Board) Size() int { return b.size }

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.size && 0 <= col && col < b.size
}

func (b *Board) index(row, col int) (int, error) {
	if !b.InBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) on %dx%d grid", ErrOutOfBounds, row, col, b.size, b.size)
	}
	return row*b.size + col, nil
}

func (b *Board) point(i int) Point {
	return Point{Row: i / b.size, Col: i % b.size}
}

func (b *Board) CellKind(row, col int) (CellKind, error) {
	i, err := b.index(row, col)
	if err != nil {
		return 0, err
	}
	return b.cells[i].Kind, nil
}

func (b *Board) IsRevealed(row, col int) (bool, error) {
	i, err := b.index(row, col)
	if err != nil {
		return false, err
	}
	return b.cells[i].Revealed, nil
}

// Adjacent returns the true number of mines around a cell, before labeling.
func (b *Board) Adjacent(row, col int) (int, error) {
	i, err := b.index(row, col)
	if err != nil {
		return 0, err
	}
	return b.adjacent(i), nil
}

func (b *Board) adjacent(i int) int {
	n := 0
	for j := range neighbours(b.size, i) {
		if b.cells[j].Kind == Mine {
			n++
		}
	}
	return n
}

// Mines returns the sorted flat indices of all mines.
func (b *Board) Mines() []int {
	return slices.Clone(b.mines)
}

func (b *Board) MinePositions() []Point {
	points := make([]Point, len(b.mines))
	for n, i := range b.mines {
		points[n] = b.point(i)
	}
	return points
}

// Render draws the board one row per line. Unrevealed cells are '#';
// showMines draws mines even when they are still covered.
func (b *Board) Render(showMines bool) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for col := range b.size {
		fmt.Fprintf(&sb, "%2d", col)
	}
	sb.WriteByte('\n')
	for row := range b.size {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := range b.size {
			cell := b.cells[row*b.size+col]
			sym := "#"
			if cell.Revealed || showMines && cell.Kind == Mine {
				sym = cell.Kind.String()
			}
			sb.WriteString(" " + sym)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.Render(false)
}
