package cpu

import (
	"fmt"

	"github.com/born-ml/poolmask/internal/tensor"
)

// Cast converts the tensor to a different data type.
//
// Its main role here is mask transport: graph infrastructures that require a
// uniform tensor dtype can carry the Int32 mask as Float32/Float64 and cast
// it back before unpooling. The round trip is lossless for any realistic
// kernel (window offsets are small integers).
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	// No-op if same dtype
	if x.DType() == dtype {
		return x
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		castFromFloat32(result, x, dtype)
	case tensor.Float64:
		castFromFloat64(result, x, dtype)
	case tensor.Int32:
		castFromInt32(result, x, dtype)
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %v", x.DType()))
	}

	return result
}

func castFromFloat32(result, x *tensor.RawTensor, toDtype tensor.DataType) {
	src := x.AsFloat32()

	switch toDtype {
	case tensor.Float64:
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = float64(v)
		}
	case tensor.Int32:
		dst := result.AsInt32()
		for i, v := range src {
			dst[i] = int32(v)
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %v", toDtype))
	}
}

func castFromFloat64(result, x *tensor.RawTensor, toDtype tensor.DataType) {
	src := x.AsFloat64()

	switch toDtype {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case tensor.Int32:
		dst := result.AsInt32()
		for i, v := range src {
			dst[i] = int32(v)
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %v", toDtype))
	}
}

func castFromInt32(result, x *tensor.RawTensor, toDtype tensor.DataType) {
	src := x.AsInt32()

	switch toDtype {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = float64(v)
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %v", toDtype))
	}
}
