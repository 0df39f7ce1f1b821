package mines

import "iter"

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// neighbours yields the flat indices of the up to 8 cells around i.
// Edges do not wrap.
func neighbours(size, i int) iter.Seq[int] {
	row, col := i/size, i%size
	return func(yield func(int) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				r, c := row+dr, col+dc
				if r < 0 || r >= size || c < 0 || c >= size {
					continue
				}
				if !yield(r*size + c) {
					return
				}
			}
		}
	}
}
