package cpu

import (
	"fmt"

	"github.com/born-ml/poolmask/internal/parallel"
	"github.com/born-ml/poolmask/internal/tensor"
	"github.com/born-ml/poolmask/internal/window"
)

// MaxPoolMaskBackward computes the gradient w.r.t. the pooling input.
//
// Each pooled-output gradient cell is routed entirely to the single input
// position its mask entry names. Overlapping windows (stride < kernel) can
// select the same input position from several output cells; those gradients
// accumulate. Positions never selected by any window receive zero.
//
// The mask is the one produced by the forward pass; the argmax is never
// recomputed here. Offsets that land in virtual padding are cropped.
func (cpu *CPUBackend) MaxPoolMaskBackward(gradPooled, mask *tensor.RawTensor,
	dataShape tensor.Shape, cfg window.Config,
) *tensor.RawTensor {
	if err := dataShape.CheckRank4("maxpoolmask backward"); err != nil {
		panic(err.Error())
	}
	gradShape := gradPooled.Shape()
	if !gradShape.Equal(mask.Shape()) {
		panic(fmt.Sprintf("maxpoolmask backward: gradient shape %v != mask shape %v",
			gradShape, mask.Shape()))
	}
	if len(gradShape) != 4 || gradShape[0] != dataShape[0] || gradShape[1] != dataShape[1] {
		panic(fmt.Sprintf("maxpoolmask backward: gradient shape %v incompatible with input shape %v",
			gradShape, dataShape))
	}
	if mask.DType() != tensor.Int32 {
		panic(fmt.Sprintf("maxpoolmask backward: mask dtype is %v, not int32", mask.DType()))
	}

	N := dataShape[0]
	C := dataShape[1]
	H := dataShape[2]
	W := dataShape[3]
	outH := gradShape[2]
	outW := gradShape[3]

	gradData, err := tensor.NewRaw(dataShape, gradPooled.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("maxpoolmask backward: failed to create gradient tensor: %v", err))
	}

	switch gradPooled.DType() {
	case tensor.Float32:
		poolMaskBackwardLanes(gradData.AsFloat32(), gradPooled.AsFloat32(), mask.AsInt32(),
			N, C, H, W, outH, outW, cfg, cpu.par)
	case tensor.Float64:
		poolMaskBackwardLanes(gradData.AsFloat64(), gradPooled.AsFloat64(), mask.AsInt32(),
			N, C, H, W, outH, outW, cfg, cpu.par)
	default:
		panic(fmt.Sprintf("maxpoolmask backward: unsupported dtype %v", gradPooled.DType()))
	}

	return gradData
}

// poolMaskBackwardLanes performs the scatter-add. Destinations stay inside
// the lane's own channel plane, so lane parallelism cannot race; within a
// lane the accumulation order is fixed row-major.
func poolMaskBackwardLanes[T Float](gradData, gradPooled []T, mask []int32,
	N, C, H, W, outH, outW int, cfg window.Config, par parallel.Config,
) {
	parallel.ForLanes(N, C, func(n, c int) {
		lane := n*C + c
		gradPlane := gradData[lane*H*W : (lane+1)*H*W]
		upstreamPlane := gradPooled[lane*outH*outW : (lane+1)*outH*outW]
		maskPlane := mask[lane*outH*outW : (lane+1)*outH*outW]

		for outRow := 0; outRow < outH; outRow++ {
			for outCol := 0; outCol < outW; outCol++ {
				outIdx := outRow*outW + outCol
				kh, kw := cfg.Unflatten(int(maskPlane[outIdx]))

				h := outRow*cfg.Stride[0] - cfg.Pad[0] + kh
				w := outCol*cfg.Stride[1] - cfg.Pad[1] + kw
				if h < 0 || h >= H || w < 0 || w >= W {
					// Winner was a padding cell; its gradient is cropped.
					continue
				}

				gradPlane[h*W+w] += upstreamPlane[outIdx]
			}
		}
	}, par)
}
