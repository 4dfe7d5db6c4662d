// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor re-exports the tensor substrate used by the pooling
// operators: shapes, raw buffers, and the backend interface.
package tensor

import (
	internaltensor "github.com/born-ml/poolmask/internal/tensor"
)

// Shape represents the dimensions of a tensor.
type Shape = internaltensor.Shape

// DataType represents runtime type information for tensors.
type DataType = internaltensor.DataType

// Supported data types.
const (
	Float32 = internaltensor.Float32
	Float64 = internaltensor.Float64
	Int32   = internaltensor.Int32
)

// Device represents the compute device for tensor operations.
type Device = internaltensor.Device

// Supported compute devices.
const (
	CPU = internaltensor.CPU
)

// RawTensor is the low-level tensor representation.
type RawTensor = internaltensor.RawTensor

// Backend is the compute interface the pooling operators run on.
type Backend = internaltensor.Backend

// DType is the constraint for supported tensor element types.
type DType = internaltensor.DType

// Tensor is the typed high-level tensor wrapper.
type Tensor[T DType, B Backend] = internaltensor.Tensor[T, B]

// NewRaw creates a new zero-initialized RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return internaltensor.NewRaw(shape, dtype, device)
}

// New creates a Tensor from a RawTensor and backend.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return internaltensor.New[T, B](raw, b)
}

// FromSlice creates a tensor from a Go slice.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return internaltensor.FromSlice(data, shape, b)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return internaltensor.Zeros[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return internaltensor.Full[T, B](shape, value, b)
}
