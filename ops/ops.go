// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops re-exports the pooling operator pair: the fixed-arity
// forward/backward call shapes a compute-graph framework consumes.
package ops

import (
	internalops "github.com/born-ml/poolmask/internal/ops"
	"github.com/born-ml/poolmask/window"
)

// Operation represents a differentiable operation in a computation graph.
type Operation = internalops.Operation

// MultiOutputOperation represents an operation producing multiple outputs.
type MultiOutputOperation = internalops.MultiOutputOperation

// PoolMaskOp is the mask-tracking max-pooling operator:
// [data] -> [pooled, mask].
type PoolMaskOp = internalops.PoolMaskOp

// UnpoolOp is the mask-driven max-unpooling operator:
// [data, mask] -> [out].
type UnpoolOp = internalops.UnpoolOp

// ShapeError reports incompatible tensor shapes handed to an operator.
type ShapeError = internalops.ShapeError

// Compile-time checks that the operators satisfy the graph interfaces.
var (
	_ MultiOutputOperation = (*PoolMaskOp)(nil)
	_ Operation            = (*UnpoolOp)(nil)
)

// NewPoolMaskOp creates a pooling-mask operator, validating the window
// configuration eagerly.
func NewPoolMaskOp(cfg window.Config) (*PoolMaskOp, error) {
	return internalops.NewPoolMaskOp(cfg)
}

// NewUnpoolOp creates an unpooling operator. unpoolSize of (0, 0) derives
// the target shape from the inverse pooling formula.
func NewUnpoolOp(cfg window.Config, unpoolSize [2]int) (*UnpoolOp, error) {
	return internalops.NewUnpoolOp(cfg, unpoolSize)
}
