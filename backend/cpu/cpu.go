// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/poolmask/internal/backend/cpu"
	"github.com/born-ml/poolmask/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides the pure Go reference kernels for the
// mask-tracking pooling and unpooling operators.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/poolmask/backend/cpu"
//	    "github.com/born-ml/poolmask/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{1, 1, 4, 4}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}
