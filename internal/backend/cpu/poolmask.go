package cpu

import (
	"fmt"

	"github.com/born-ml/poolmask/internal/parallel"
	"github.com/born-ml/poolmask/internal/tensor"
	"github.com/born-ml/poolmask/internal/window"
)

// MaxPoolMask performs 2D max pooling and records the winning position per
// output cell.
//
// Input shape:  [batch, channels, height, width]
// Output shapes: pooled and mask both [batch, channels, out_height, out_width]
//
// Each mask entry is the row-major flat offset of the first position
// attaining the window maximum, relative to the window's top-left corner in
// the padded input. Padding follows the zero-pad convention: cells outside
// the input contribute the value 0 to the reduction, so a window entirely
// inside padding pools to 0 with mask offset 0.
//
// Example (2x2 pool, stride=2):
//
//	Input: [[1,2,3,4],    pooled: [[6,8],     mask: [[3,3],
//	        [5,6,7,8],             [14,16]]          [3,3]]
//	        [9,10,11,12],
//	        [13,14,15,16]]
func (cpu *CPUBackend) MaxPoolMask(data *tensor.RawTensor, cfg window.Config) (*tensor.RawTensor, *tensor.RawTensor) {
	shape := data.Shape()
	if err := shape.CheckRank4("maxpoolmask"); err != nil {
		panic(err.Error())
	}

	N := shape[0]
	C := shape[1]
	H := shape[2]
	W := shape[3]

	outH, outW, err := window.PoolOutputSize(cfg, H, W)
	if err != nil {
		panic(fmt.Sprintf("maxpoolmask: %v", err))
	}

	outShape := tensor.Shape{N, C, outH, outW}
	pooled, err := tensor.NewRaw(outShape, data.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("maxpoolmask: failed to create pooled output: %v", err))
	}
	mask, err := tensor.NewRaw(outShape, tensor.Int32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("maxpoolmask: failed to create mask output: %v", err))
	}

	switch data.DType() {
	case tensor.Float32:
		poolMaskLanes(Max[float32]{}, pooled.AsFloat32(), mask.AsInt32(), data.AsFloat32(),
			N, C, H, W, outH, outW, cfg, cpu.par)
	case tensor.Float64:
		poolMaskLanes(Max[float64]{}, pooled.AsFloat64(), mask.AsInt32(), data.AsFloat64(),
			N, C, H, W, outH, outW, cfg, cpu.par)
	default:
		panic(fmt.Sprintf("maxpoolmask: unsupported dtype %v", data.DType()))
	}

	return pooled, mask
}

// poolMaskLanes scans every window of every (batch, channel) lane, writing
// the reduced value and the winning in-window offset together.
func poolMaskLanes[T Float, R Reducer[T]](red R, pooled []T, mask []int32, data []T,
	N, C, H, W, outH, outW int, cfg window.Config, par parallel.Config,
) {
	parallel.ForLanes(N, C, func(n, c int) {
		lane := n*C + c
		plane := data[lane*H*W : (lane+1)*H*W]
		pooledPlane := pooled[lane*outH*outW : (lane+1)*outH*outW]
		maskPlane := mask[lane*outH*outW : (lane+1)*outH*outW]

		for outRow := 0; outRow < outH; outRow++ {
			for outCol := 0; outCol < outW; outCol++ {
				r := cfg.WindowRect(outRow, outCol)

				var best T
				bestOff := 0
				off := 0
				for h := r.RowStart; h < r.RowEnd; h++ {
					for w := r.ColStart; w < r.ColEnd; w++ {
						var val T // virtual padding cells hold 0
						if h >= 0 && h < H && w >= 0 && w < W {
							val = plane[h*W+w]
						}
						if off == 0 || red.Improves(val, best) {
							best = val
							bestOff = off
						}
						off++
					}
				}

				outIdx := outRow*outW + outCol
				pooledPlane[outIdx] = best
				maskPlane[outIdx] = int32(bestOff)
			}
		}
	}, par)
}
