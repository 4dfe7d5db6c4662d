package tensor

import "github.com/born-ml/poolmask/internal/window"

// Backend defines the interface a compute backend must implement for the
// mask-tracking pooling/unpooling operator pair.
//
// All methods are pure functions over their inputs: inputs are never
// mutated, outputs are freshly allocated. Configuration is assumed to be
// validated by the caller (the ops layer); backends panic on misuse.
type Backend interface {
	// MaxPoolMask reduces each window of data to its maximum and records,
	// per output cell, the in-window offset of the first position attaining
	// it. data is [N,C,H,W]; pooled and mask share the inferred output
	// shape. mask is Int32.
	MaxPoolMask(data *RawTensor, cfg window.Config) (pooled, mask *RawTensor)

	// MaxPoolMaskBackward routes each pooled-output gradient cell to the
	// single input position its mask entry names, accumulating across
	// overlapping windows. Offsets that land in virtual padding are dropped.
	MaxPoolMaskBackward(gradPooled, mask *RawTensor, dataShape Shape, cfg window.Config) *RawTensor

	// MaxUnpool scatters data[b,c,i,j] to the high-resolution position named
	// by mask[b,c,i,j]; every position not named by any mask entry is zero.
	// Requires zero padding.
	MaxUnpool(data, mask *RawTensor, cfg window.Config, outH, outW int) *RawTensor

	// MaxUnpoolBackward gathers, per window cell, the upstream gradient from
	// the position its mask entry names. The second result is the gradient
	// w.r.t. the mask: always all-zero (masks are not differentiable).
	MaxUnpoolBackward(gradOut, mask *RawTensor, cfg window.Config) (gradData, gradMask *RawTensor)

	// Cast converts a tensor to a different data type. Used as the transport
	// shim between the integral mask dtype and graph infrastructures that
	// require uniform float tensors.
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
