// Package cpu implements the CPU reference backend for the mask-tracking
// pooling and unpooling operators.
package cpu

import (
	"github.com/born-ml/poolmask/internal/parallel"
	"github.com/born-ml/poolmask/internal/tensor"
)

// CPUBackend implements the four pooling engines with pure Go kernels.
// Kernels iterate (batch, channel) lanes in parallel; within a lane all
// writes are serialized in row-major order.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend with default lane parallelism.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// NewWithParallel creates a CPU backend with an explicit parallel config.
// Useful for benchmarks and for forcing sequential execution in tests.
func NewWithParallel(par parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    par,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}
