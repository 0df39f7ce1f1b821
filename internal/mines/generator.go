package mines

import (
	"fmt"
	"strings"
)

const (
	DefaultSize      = 8
	DefaultMineCount = 10
)

// Labeling selects how neighbour mine counts are turned into cell labels.
type Labeling int8

const (
	// LabelClassic shows only counts of 1 and 2. Every other count,
	// including 3 and above, is labelled blank and opens like a zero.
	LabelClassic Labeling = iota
	// LabelStandard blanks only zero counts and numbers everything else.
	LabelStandard
)

func (l Labeling) String() string {
	switch l {
	case LabelClassic:
		return "classic"
	case LabelStandard:
		return "standard"
	default:
		return fmt.Sprintf("labeling(%d)", int8(l))
	}
}

func ParseLabeling(s string) (Labeling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic":
		return LabelClassic, nil
	case "standard":
		return LabelStandard, nil
	default:
		return 0, fmt.Errorf("%w: unknown labeling %q", ErrInvalidConfig, s)
	}
}

// label maps a true neighbour count to the kind shown on the board.
func (l Labeling) label(count int) CellKind {
	switch l {
	case LabelStandard:
		return CellKind(count)
	default:
		if count == 1 || count == 2 {
			return CellKind(count)
		}
		return Blank
	}
}

type GameParams struct {
	Size, MineCount int
	Labeling        Labeling
}

func DefaultParams() GameParams {
	return GameParams{Size: DefaultSize, MineCount: DefaultMineCount}
}

func (p GameParams) Unpack() (size int, mc int, l Labeling) {
	return p.Size, p.MineCount, p.Labeling
}

func (p GameParams) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("%w: grid size must be positive, got %d", ErrInvalidConfig, p.Size)
	}
	if p.MineCount <= 0 || p.MineCount >= p.Size*p.Size {
		return fmt.Errorf(
			"%w: mine count must be between 1 and %d, got %d",
			ErrInvalidConfig, p.Size*p.Size-1, p.MineCount,
		)
	}
	if p.Labeling != LabelClassic && p.Labeling != LabelStandard {
		return fmt.Errorf("%w: unknown labeling %d", ErrInvalidConfig, p.Labeling)
	}
	return nil
}

// CellCount is the number of cells on the board.
func (p GameParams) CellCount() int {
	return p.Size * p.Size
}

// SafeCount is the number of cells that must be revealed to win.
func (p GameParams) SafeCount() int {
	return p.CellCount() - p.MineCount
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%s", p.Size, p.MineCount, p.Labeling)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	var labeling string
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %s", &p.Size, &p.MineCount, &labeling)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	if p.Labeling, err = ParseLabeling(labeling); err != nil {
		return nil, err
	}
	return p, p.Validate()
}

func (p GameParams) PointInBounds(row, col int) bool {
	return 0 <= row && row < p.Size && 0 <= col && col < p.Size
}
