package dataops

import (
	"gonum.org/v1/gonum/mathext/prng"
)

// IRandomSource yields uniform values in [0, 1).
type IRandomSource interface {
	Float64() float64
}

/*
* Mersenne twister source. Seeding and the 53-bit double construction
* follow numpy's legacy global generator, so a given seed produces the
* same sequence as np.random.seed(seed); np.random.rand(n).
 */
type SeededSource struct {
	seed uint32
	mt   *prng.MT19937
}

func NewSeededSource(seed uint32) *SeededSource {
	mt := prng.NewMT19937()
	mt.Seed(uint64(seed))
	return &SeededSource{seed: seed, mt: mt}
}

func (obj *SeededSource) Seed() uint32 {
	return obj.seed
}

func (obj *SeededSource) Float64() float64 {
	a := obj.mt.Uint32() >> 5
	b := obj.mt.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}
