package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/poolmask/internal/tensor"
	"github.com/born-ml/poolmask/internal/window"
)

// PoolMaskOp is the mask-tracking max-pooling operator.
//
// Forward:  [data] -> [pooled, mask]
// Backward: [d_pooled] -> [d_data]
//
// The forward pass records the mask; the backward pass reuses exactly that
// mask to route each upstream gradient cell to the input position that won
// its window, never recomputing the argmax. The mask output itself carries
// no gradient.
type PoolMaskOp struct {
	cfg    window.Config
	data   *tensor.RawTensor
	pooled *tensor.RawTensor
	mask   *tensor.RawTensor
}

// NewPoolMaskOp creates a pooling-mask operator, validating the window
// configuration eagerly.
func NewPoolMaskOp(cfg window.Config) (*PoolMaskOp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "poolmask")
	}
	return &PoolMaskOp{cfg: cfg}, nil
}

// Config returns the operator's window configuration.
func (op *PoolMaskOp) Config() window.Config {
	return op.cfg
}

// InferShapes computes the [pooled, mask] output shapes from the input
// shapes without executing anything.
func (op *PoolMaskOp) InferShapes(in []tensor.Shape) ([]tensor.Shape, error) {
	if len(in) != 1 {
		return nil, errors.Errorf("poolmask: expected 1 input shape, got %d", len(in))
	}
	d := in[0]
	if len(d) != 4 {
		return nil, &ShapeError{Op: "poolmask", Got: d, Detail: "input data should be 4D in (batch, channel, y, x)"}
	}

	outH, outW, err := window.PoolOutputSize(op.cfg, d[2], d[3])
	if err != nil {
		return nil, err
	}

	out := tensor.Shape{d[0], d[1], outH, outW}
	return []tensor.Shape{out, out.Clone()}, nil
}

// Forward runs the pooling pass, producing the pooled tensor and the mask
// together. All validation happens before the kernel runs.
func (op *PoolMaskOp) Forward(data *tensor.RawTensor, backend tensor.Backend) (pooled, mask *tensor.RawTensor, err error) {
	if _, err = op.InferShapes([]tensor.Shape{data.Shape()}); err != nil {
		return nil, nil, err
	}

	pooled, mask = backend.MaxPoolMask(data, op.cfg)
	op.data = data
	op.pooled = pooled
	op.mask = mask
	return pooled, mask, nil
}

// Inputs returns the input tensors recorded by the forward pass.
func (op *PoolMaskOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.data}
}

// Output returns the pooled tensor.
func (op *PoolMaskOp) Output() *tensor.RawTensor {
	return op.pooled
}

// Outputs returns the pooled tensor and the mask.
func (op *PoolMaskOp) Outputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.pooled, op.mask}
}

// Mask returns the mask recorded by the forward pass.
func (op *PoolMaskOp) Mask() *tensor.RawTensor {
	return op.mask
}

// Backward routes the pooled-output gradient through the stored mask.
func (op *PoolMaskOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradData := backend.MaxPoolMaskBackward(outputGrad, op.mask, op.data.Shape(), op.cfg)
	return []*tensor.RawTensor{gradData}
}

// BackwardMulti accepts gradients for both outputs; the mask gradient entry
// is ignored (masks are not differentiable).
func (op *PoolMaskOp) BackwardMulti(outputGrads []*tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return op.Backward(outputGrads[0], backend)
}
