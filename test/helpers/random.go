package helpers

// FixedRandom returns the same values on every call.
// Intn clamps its fixed value into [0, n).
type FixedRandom struct {
	Float float64
	Int   int
}

// NewFixedRandom creates a FixedRandom
func NewFixedRandom(f float64, i int) *FixedRandom {
	return &FixedRandom{Float: f, Int: i}
}

func (r *FixedRandom) Float64() float64 {
	return r.Float
}

func (r *FixedRandom) Intn(n int) int {
	if r.Int >= n {
		return n - 1
	}
	if r.Int < 0 {
		return 0
	}
	return r.Int
}

// SequenceRandom replays scripted values, repeating the last one when exhausted
type SequenceRandom struct {
	Floats []float64
	Ints   []int

	floatPos int
	intPos   int
}

func (r *SequenceRandom) Float64() float64 {
	if len(r.Floats) == 0 {
		return 0
	}
	v := r.Floats[min(r.floatPos, len(r.Floats)-1)]
	r.floatPos++
	return v
}

func (r *SequenceRandom) Intn(n int) int {
	if len(r.Ints) == 0 {
		return 0
	}
	v := r.Ints[min(r.intPos, len(r.Ints)-1)]
	r.intPos++
	if v >= n {
		return n - 1
	}
	return v
}
