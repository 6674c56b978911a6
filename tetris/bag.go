package tetris

import "math/rand/v2"

// bag is the 7-bag randomizer: every kind is dealt once, in random
// order, before the bag is refilled.
type bag struct {
	bag []Kind
	rng *rand.Rand
}

func newBag(rng *rand.Rand) *bag {
	return &bag{bag: make([]Kind, 0, len(Kinds)), rng: rng}
}

func (b *bag) refill() {
	if len(b.bag) != 0 {
		panic("tetris: refilling a bag that is not empty")
	}
	b.bag = append(b.bag, Kinds[:]...)
	b.rng.Shuffle(len(b.bag), func(i, j int) {
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	})
}

// peek returns the kind that the next draw will return.
func (b *bag) peek() Kind {
	if len(b.bag) == 0 {
		b.refill()
	}
	return b.bag[len(b.bag)-1]
}

func (b *bag) draw() Kind {
	k := b.peek()
	b.bag = b.bag[:len(b.bag)-1]
	return k
}
