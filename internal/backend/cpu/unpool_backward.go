package cpu

import (
	"fmt"

	"github.com/born-ml/poolmask/internal/parallel"
	"github.com/born-ml/poolmask/internal/tensor"
	"github.com/born-ml/poolmask/internal/window"
)

// MaxUnpoolBackward computes the gradients for MaxUnpool.
//
// The data gradient is the dual of the forward scatter: each window cell
// gathers the upstream gradient from the exact high-resolution position its
// mask entry names (zero when that position lies outside the upstream grid).
// The mask gradient is always the zero tensor: mask values are discrete
// evidence, not learnable parameters.
func (cpu *CPUBackend) MaxUnpoolBackward(gradOut, mask *tensor.RawTensor,
	cfg window.Config,
) (*tensor.RawTensor, *tensor.RawTensor) {
	if err := cfg.ValidateUnpool(); err != nil {
		panic(fmt.Sprintf("maxunpool backward: %v", err))
	}
	maskShape := mask.Shape()
	if err := maskShape.CheckRank4("maxunpool backward"); err != nil {
		panic(err.Error())
	}
	gradShape := gradOut.Shape()
	if len(gradShape) != 4 || gradShape[0] != maskShape[0] || gradShape[1] != maskShape[1] {
		panic(fmt.Sprintf("maxunpool backward: gradient shape %v incompatible with mask shape %v",
			gradShape, maskShape))
	}
	if mask.DType() != tensor.Int32 {
		panic(fmt.Sprintf("maxunpool backward: mask dtype is %v, not int32", mask.DType()))
	}

	N := maskShape[0]
	C := maskShape[1]
	inH := maskShape[2]
	inW := maskShape[3]
	outH := gradShape[2]
	outW := gradShape[3]

	gradData, err := tensor.NewRaw(maskShape, gradOut.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("maxunpool backward: failed to create data gradient: %v", err))
	}
	gradMask, err := tensor.NewRaw(maskShape, gradOut.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("maxunpool backward: failed to create mask gradient: %v", err))
	}
	// gradMask stays all-zero.

	switch gradOut.DType() {
	case tensor.Float32:
		unpoolBackwardLanes(gradData.AsFloat32(), gradOut.AsFloat32(), mask.AsInt32(),
			N, C, inH, inW, outH, outW, cfg, cpu.par)
	case tensor.Float64:
		unpoolBackwardLanes(gradData.AsFloat64(), gradOut.AsFloat64(), mask.AsInt32(),
			N, C, inH, inW, outH, outW, cfg, cpu.par)
	default:
		panic(fmt.Sprintf("maxunpool backward: unsupported dtype %v", gradOut.DType()))
	}

	return gradData, gradMask
}

// unpoolBackwardLanes performs the gather. Every destination cell is written
// exactly once, so this pass is trivially parallel.
func unpoolBackwardLanes[T Float](gradData, gradOut []T, mask []int32,
	N, C, inH, inW, outH, outW int, cfg window.Config, par parallel.Config,
) {
	parallel.ForLanes(N, C, func(n, c int) {
		lane := n*C + c
		gradPlane := gradData[lane*inH*inW : (lane+1)*inH*inW]
		upstreamPlane := gradOut[lane*outH*outW : (lane+1)*outH*outW]
		maskPlane := mask[lane*inH*inW : (lane+1)*inH*inW]

		for row := 0; row < inH; row++ {
			for col := 0; col < inW; col++ {
				inIdx := row*inW + col
				kh, kw := cfg.Unflatten(int(maskPlane[inIdx]))

				h := row*cfg.Stride[0] + kh
				w := col*cfg.Stride[1] + kw
				if h < 0 || h >= outH || w < 0 || w >= outW {
					continue
				}

				gradPlane[inIdx] = upstreamPlane[h*outW+w]
			}
		}
	}, par)
}
