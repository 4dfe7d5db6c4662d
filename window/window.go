// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package window re-exports the pooling window configuration and the
// shape-inference rules shared by the pooling and unpooling operators.
package window

import (
	internalwindow "github.com/born-ml/poolmask/internal/window"
)

// Config describes a 2D pooling window: kernel, stride, and padding.
type Config = internalwindow.Config

// Rect is the input rectangle a single output cell reduces over.
type Rect = internalwindow.Rect

// ConfigError reports an invalid window configuration.
type ConfigError = internalwindow.ConfigError

// Configuration error sentinels.
var (
	ErrNonPositiveKernel = internalwindow.ErrNonPositiveKernel
	ErrNonPositiveStride = internalwindow.ErrNonPositiveStride
	ErrNonUniformStride  = internalwindow.ErrNonUniformStride
	ErrNegativePad       = internalwindow.ErrNegativePad
	ErrUnpoolPadding     = internalwindow.ErrUnpoolPadding
	ErrKernelExceedsIn   = internalwindow.ErrKernelExceedsIn
)

// DefaultConfig returns a config with the given kernel, stride (1, 1) and
// pad (0, 0).
func DefaultConfig(kernelH, kernelW int) Config {
	return internalwindow.DefaultConfig(kernelH, kernelW)
}

// PoolOutputSize computes the pooled spatial dimensions for an input plane.
func PoolOutputSize(cfg Config, inH, inW int) (int, int, error) {
	return internalwindow.PoolOutputSize(cfg, inH, inW)
}

// UnpoolOutputSize computes the unpooling target dimensions: the explicit
// unpool size when positive, otherwise the inverse of the pooling formula.
func UnpoolOutputSize(cfg Config, inH, inW, unpoolH, unpoolW int) (int, int, error) {
	return internalwindow.UnpoolOutputSize(cfg, inH, inW, unpoolH, unpoolW)
}
