package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/poolmask/internal/tensor"
	"github.com/born-ml/poolmask/internal/window"
)

// UnpoolOp is the mask-driven max-unpooling operator.
//
// Forward:  [data, mask] -> [out]
// Backward: [d_out] -> [d_data, d_mask]
//
// data and mask must share one shape; the mask is the one produced by a
// matching PoolMaskOp forward pass and is treated as read-only evidence.
// d_mask is always the zero tensor. Padding must be zero.
//
// The target shape is either the explicit unpool size given at construction
// or derived as the inverse of the pooling shape formula.
type UnpoolOp struct {
	cfg        window.Config
	unpoolSize [2]int
	data       *tensor.RawTensor
	mask       *tensor.RawTensor
	out        *tensor.RawTensor
}

// NewUnpoolOp creates an unpooling operator. unpoolSize of (0, 0) means
// "derive the target shape from the formula". Non-zero padding is a
// configuration error.
func NewUnpoolOp(cfg window.Config, unpoolSize [2]int) (*UnpoolOp, error) {
	if err := cfg.ValidateUnpool(); err != nil {
		return nil, errors.WithMessage(err, "unpool")
	}
	return &UnpoolOp{cfg: cfg, unpoolSize: unpoolSize}, nil
}

// Config returns the operator's window configuration.
func (op *UnpoolOp) Config() window.Config {
	return op.cfg
}

// InferShapes computes the output shape from one or more data shapes
// followed by the mask shape. Every shape must match the first: the
// operator accepts a variadic argument list whose entries are unpooled with
// the same mask, so any disagreement is a shape error.
func (op *UnpoolOp) InferShapes(in []tensor.Shape) ([]tensor.Shape, error) {
	if len(in) < 2 {
		return nil, errors.Errorf("unpool: expected at least data and mask shapes, got %d", len(in))
	}
	d := in[0]
	if len(d) != 4 {
		return nil, &ShapeError{Op: "unpool", Got: d, Detail: "input data should be 4D in (batch, channel, y, x)"}
	}
	for i := 1; i < len(in); i++ {
		if !d.Equal(in[i]) {
			return nil, &ShapeError{Op: "unpool", Want: d, Got: in[i],
				Detail: "incompatible shapes across arguments"}
		}
	}

	outH, outW, err := window.UnpoolOutputSize(op.cfg, d[2], d[3], op.unpoolSize[0], op.unpoolSize[1])
	if err != nil {
		return nil, err
	}

	return []tensor.Shape{{d[0], d[1], outH, outW}}, nil
}

// Forward scatters data to the high-resolution grid through the mask.
//
// A float-typed mask (the uniform-dtype transport convention of some graph
// frameworks) is cast back to the integral mask dtype before use.
func (op *UnpoolOp) Forward(data, mask *tensor.RawTensor, backend tensor.Backend) (*tensor.RawTensor, error) {
	shapes, err := op.InferShapes([]tensor.Shape{data.Shape(), mask.Shape()})
	if err != nil {
		return nil, err
	}

	if mask.DType() != tensor.Int32 {
		mask = backend.Cast(mask, tensor.Int32)
	}

	out := backend.MaxUnpool(data, mask, op.cfg, shapes[0][2], shapes[0][3])
	op.data = data
	op.mask = mask
	op.out = out
	return out, nil
}

// Inputs returns the input tensors recorded by the forward pass.
func (op *UnpoolOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.data, op.mask}
}

// Output returns the unpooled tensor.
func (op *UnpoolOp) Output() *tensor.RawTensor {
	return op.out
}

// Backward gathers the upstream gradient through the mask. Returns the data
// gradient and the (always zero) mask gradient, in input order.
func (op *UnpoolOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradData, gradMask := backend.MaxUnpoolBackward(outputGrad, op.mask, op.cfg)
	return []*tensor.RawTensor{gradData, gradMask}
}
