// Package window maps pooling output coordinates onto rectangular regions of
// a (possibly zero-padded) input plane, and holds the shape-inference rules
// shared by the pooling and unpooling operators.
package window

import (
	"fmt"

	"github.com/pkg/errors"
)

// Config describes a 2D pooling window: kernel extent, stride, and padding,
// each as a (row, col) pair.
//
// Invariants: kernel and stride are positive, stride is uniform across the
// two spatial axes, pad is non-negative. Unpooling additionally requires
// pad == (0, 0).
type Config struct {
	Kernel [2]int // pooling kernel size: (y, x)
	Stride [2]int // stride: (y, x)
	Pad    [2]int // zero padding: (y, x)
}

// DefaultConfig returns a config with the given kernel, stride (1, 1) and
// pad (0, 0).
func DefaultConfig(kernelH, kernelW int) Config {
	return Config{
		Kernel: [2]int{kernelH, kernelW},
		Stride: [2]int{1, 1},
	}
}

// String returns a compact human-readable form of the config.
func (c Config) String() string {
	return fmt.Sprintf("kernel=(%d,%d) stride=(%d,%d) pad=(%d,%d)",
		c.Kernel[0], c.Kernel[1], c.Stride[0], c.Stride[1], c.Pad[0], c.Pad[1])
}

// Validate checks the pooling invariants.
func (c Config) Validate() error {
	if c.Kernel[0] <= 0 || c.Kernel[1] <= 0 {
		return configErr(c, ErrNonPositiveKernel)
	}
	if c.Stride[0] <= 0 || c.Stride[1] <= 0 {
		return configErr(c, ErrNonPositiveStride)
	}
	if c.Stride[0] != c.Stride[1] {
		return configErr(c, ErrNonUniformStride)
	}
	if c.Pad[0] < 0 || c.Pad[1] < 0 {
		return configErr(c, ErrNegativePad)
	}
	return nil
}

// ValidateUnpool checks the unpooling invariants: everything Validate checks
// plus the zero-padding requirement.
func (c Config) ValidateUnpool() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Pad[0] != 0 || c.Pad[1] != 0 {
		return configErr(c, ErrUnpoolPadding)
	}
	return nil
}

// Overlaps reports whether adjacent windows share input cells
// (stride < kernel on either axis).
func (c Config) Overlaps() bool {
	return c.Stride[0] < c.Kernel[0] || c.Stride[1] < c.Kernel[1]
}

// Rect is the rectangle of padded-input coordinates a single output cell
// reduces over. RowStart/ColStart may be negative and RowEnd/ColEnd may
// exceed the input extent; those cells are virtual zero padding.
type Rect struct {
	RowStart, RowEnd int // [RowStart, RowEnd)
	ColStart, ColEnd int // [ColStart, ColEnd)
}

// WindowRect returns the input rectangle covered by output cell
// (outRow, outCol) under c.
func (c Config) WindowRect(outRow, outCol int) Rect {
	rs := outRow*c.Stride[0] - c.Pad[0]
	cs := outCol*c.Stride[1] - c.Pad[1]
	return Rect{
		RowStart: rs,
		RowEnd:   rs + c.Kernel[0],
		ColStart: cs,
		ColEnd:   cs + c.Kernel[1],
	}
}

// Unflatten converts an in-window flat offset (row-major, relative to the
// window's top-left corner) back into a (row, col) pair.
func (c Config) Unflatten(offset int) (int, int) {
	return offset / c.Kernel[1], offset % c.Kernel[1]
}

// poolDim computes one spatial output dimension of the pooling operator.
//
//	out = min(in + 2*pad - kernel + stride - 1, in + 2*pad - 1) / stride + 1
//
// The min term caps windows that start inside the input; the formula reduces
// to the familiar (in + 2*pad - kernel)/stride + 1 when kernel >= stride.
func poolDim(in, kernel, stride, pad int) int {
	a := in + 2*pad - kernel + stride - 1
	b := in + 2*pad - 1
	return min(a, b)/stride + 1
}

// PoolOutputSize computes the pooled spatial dimensions for an inH x inW
// input plane. Returns a ConfigError when the kernel exceeds the padded
// input on either axis.
func PoolOutputSize(cfg Config, inH, inW int) (int, int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, 0, err
	}
	outH := poolDim(inH, cfg.Kernel[0], cfg.Stride[0], cfg.Pad[0])
	outW := poolDim(inW, cfg.Kernel[1], cfg.Stride[1], cfg.Pad[1])
	if outH <= 0 || outW <= 0 {
		return 0, 0, errors.WithMessagef(configErr(cfg, ErrKernelExceedsIn),
			"input %dx%d", inH, inW)
	}
	return outH, outW, nil
}

// UnpoolOutputSize computes the target spatial dimensions for unpooling an
// inH x inW plane. A positive explicit target (unpoolH, unpoolW) wins;
// otherwise the size is derived as the inverse of the pooling formula:
//
//	out = (in - 1)*stride + kernel - 2*pad
func UnpoolOutputSize(cfg Config, inH, inW, unpoolH, unpoolW int) (int, int, error) {
	if err := cfg.ValidateUnpool(); err != nil {
		return 0, 0, err
	}
	outH, outW := unpoolH, unpoolW
	if unpoolH <= 0 || unpoolW <= 0 {
		outH = (inH-1)*cfg.Stride[0] + cfg.Kernel[0] - 2*cfg.Pad[0]
		outW = (inW-1)*cfg.Stride[1] + cfg.Kernel[1] - 2*cfg.Pad[1]
	}
	if outH <= 0 || outW <= 0 {
		return 0, 0, errors.WithMessagef(configErr(cfg, ErrKernelExceedsIn),
			"input %dx%d", inH, inW)
	}
	return outH, outW, nil
}
