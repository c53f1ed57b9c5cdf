package engine

import "math/rand"

// Randomizer picks the type of the next generated piece.
// Implementations may keep state; use one randomizer per game.
type Randomizer interface {
	Next(rng *rand.Rand, types []Cell) Cell
	Reset()
}

// Uniform draws every piece independently with equal weight.
// Immediate repeats are possible.
type Uniform struct{}

// Next returns a uniformly chosen type.
func (Uniform) Next(rng *rand.Rand, types []Cell) Cell {
	return types[rng.Intn(len(types))]
}

// Reset is a no-op; Uniform keeps no state.
func (Uniform) Reset() {}

// Bag deals every type once, in shuffled order, before reshuffling.
type Bag struct {
	bag []Cell
}

// NewBag creates an empty bag randomizer.
func NewBag() *Bag {
	return &Bag{}
}

// Next pops the next type from the bag, refilling it when empty.
func (b *Bag) Next(rng *rand.Rand, types []Cell) Cell {
	if len(b.bag) == 0 {
		b.bag = append(b.bag[:0], types...)
		rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}
	t := b.bag[0]
	b.bag = b.bag[1:]
	return t
}

// Reset drops the remaining bag contents.
func (b *Bag) Reset() {
	b.bag = nil
}
