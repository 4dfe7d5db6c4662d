// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for the mask-tracking
// pooling operators.
//
// # Overview
//
// This package implements the reference semantics of the four engines:
//
//   - MaxPoolMask: windowed max reduction that records, per output cell,
//     the in-window offset of the winning input position
//   - MaxPoolMaskBackward: scatter-add gradient routing through the mask
//   - MaxUnpool: mask-driven scatter back to a high-resolution grid
//   - MaxUnpoolBackward: the dual gather, with a zero mask gradient
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/poolmask/backend/cpu"
//	    "github.com/born-ml/poolmask/ops"
//	    "github.com/born-ml/poolmask/window"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    pool, _ := ops.NewPoolMaskOp(window.Config{
//	        Kernel: [2]int{2, 2},
//	        Stride: [2]int{2, 2},
//	    })
//	    pooled, mask, _ := pool.Forward(input, backend)
//	    _ = pooled
//	    _ = mask
//	}
//
// # Thread Safety
//
// Each call is a pure function over its inputs producing freshly allocated
// outputs. Kernels parallelize over (batch, channel) lanes; scatter targets
// never leave their own lane, so no synchronization is needed.
package cpu
