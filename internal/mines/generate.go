package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed picks a fresh seed for games that do not need to be replayed.
func RandomSeed() uint64 {
	return new(maphash.Hash).Sum64()
}

// Generate places params.MineCount mines uniformly at random without
// replacement and labels the remaining cells.
func Generate(params GameParams, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	/*
	 * Write down the list of possible mine locations, then pick n off
	 * the list at random, swapping each pick out of the live range.
	 */
	candidates := make([]int, params.CellCount())
	for i := range candidates {
		candidates[i] = i
	}
	mines := make([]int, 0, params.MineCount)
	k := len(candidates)
	for range params.MineCount {
		i := r.IntN(k)
		mines = append(mines, candidates[i])
		k--
		candidates[i] = candidates[k]
	}

	return NewBoard(params, mines)
}

// GenerateSeeded is Generate with a PCG source built from seed. The same
// params and seed always produce the same board.
func GenerateSeeded(params GameParams, seed uint64) (*Board, error) {
	return Generate(params, NewRand(seed))
}
