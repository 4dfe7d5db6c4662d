// Package ops exposes the pooling operator pair through the fixed-arity
// forward/backward call shapes a compute-graph framework consumes.
//
// Each operator object validates its configuration at construction time and
// its tensor shapes before any kernel runs; shape inference is queryable
// without execution so a surrounding graph can plan buffers ahead of time.
// The operator records the tensors a later backward pass depends on (the
// mask in particular), mirroring a graph engine's backward-dependency
// declaration.
package ops

import "github.com/born-ml/poolmask/internal/tensor"

// Operation represents a differentiable operation in a computation graph.
// The operation records its inputs and outputs during the forward pass and
// computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors recorded by the forward pass.
	Inputs() []*tensor.RawTensor

	// Output returns the primary output tensor.
	Output() *tensor.RawTensor
}

// MultiOutputOperation represents an operation that produces multiple
// outputs. The pooling-mask operator is one: it emits the pooled tensor and
// the mask together, and only the pooled output carries gradient.
type MultiOutputOperation interface {
	Operation

	// Outputs returns all output tensors produced by this operation.
	Outputs() []*tensor.RawTensor

	// BackwardMulti computes input gradients given gradients for ALL
	// outputs. Entries for non-differentiable outputs may be nil.
	BackwardMulti(outputGrads []*tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor
}
