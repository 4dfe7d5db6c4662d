package cpu

// Float is the constraint for pooling element types.
type Float interface {
	~float32 | ~float64
}

// Reducer is the compare-and-select strategy a pooling pass uses to pick
// one element per window. The windowing and mask bookkeeping are agnostic
// to the reduction kind, so variants (min pooling, and so on) only need a
// new Reducer.
type Reducer[T Float] interface {
	// Improves reports whether candidate should replace the current best.
	// A strict policy keeps the first occurrence on ties, which fixes the
	// row-major-first mask convention.
	Improves(candidate, best T) bool
}

// Max keeps the largest value in each window.
type Max[T Float] struct{}

// Improves implements Reducer with a strict greater-than comparison.
func (Max[T]) Improves(candidate, best T) bool {
	return candidate > best
}
