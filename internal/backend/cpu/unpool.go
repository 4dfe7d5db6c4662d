package cpu

import (
	"fmt"

	"github.com/born-ml/poolmask/internal/parallel"
	"github.com/born-ml/poolmask/internal/tensor"
	"github.com/born-ml/poolmask/internal/window"
)

// MaxUnpool scatters a low-resolution tensor back to a high-resolution grid
// using a mask produced by MaxPoolMask.
//
// data and mask share the shape [batch, channels, inH, inW]; the result has
// shape [batch, channels, outH, outW]. Each data value lands at the position
// its mask entry names; every position not named by any mask entry is zero.
// Requires zero padding.
//
// When windows overlap (stride < kernel), two mask entries can name the same
// high-resolution position. Source cells are scanned in row-major order
// within each serialized lane, so collisions resolve deterministically as
// last-write-wins. Mask entries pointing outside an explicitly smaller
// target grid are dropped.
func (cpu *CPUBackend) MaxUnpool(data, mask *tensor.RawTensor,
	cfg window.Config, outH, outW int,
) *tensor.RawTensor {
	if err := cfg.ValidateUnpool(); err != nil {
		panic(fmt.Sprintf("maxunpool: %v", err))
	}
	shape := data.Shape()
	if err := shape.CheckRank4("maxunpool"); err != nil {
		panic(err.Error())
	}
	if !shape.Equal(mask.Shape()) {
		panic(fmt.Sprintf("maxunpool: data shape %v != mask shape %v", shape, mask.Shape()))
	}
	if mask.DType() != tensor.Int32 {
		panic(fmt.Sprintf("maxunpool: mask dtype is %v, not int32", mask.DType()))
	}
	if outH <= 0 || outW <= 0 {
		panic(fmt.Sprintf("maxunpool: invalid target size %dx%d", outH, outW))
	}

	N := shape[0]
	C := shape[1]
	inH := shape[2]
	inW := shape[3]

	out, err := tensor.NewRaw(tensor.Shape{N, C, outH, outW}, data.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("maxunpool: failed to create output: %v", err))
	}

	switch data.DType() {
	case tensor.Float32:
		unpoolLanes(out.AsFloat32(), data.AsFloat32(), mask.AsInt32(),
			N, C, inH, inW, outH, outW, cfg, cpu.par)
	case tensor.Float64:
		unpoolLanes(out.AsFloat64(), data.AsFloat64(), mask.AsInt32(),
			N, C, inH, inW, outH, outW, cfg, cpu.par)
	default:
		panic(fmt.Sprintf("maxunpool: unsupported dtype %v", data.DType()))
	}

	return out
}

// unpoolLanes performs the scatter-write. The output buffer starts zeroed;
// only mask-named positions are touched.
func unpoolLanes[T Float](out, data []T, mask []int32,
	N, C, inH, inW, outH, outW int, cfg window.Config, par parallel.Config,
) {
	parallel.ForLanes(N, C, func(n, c int) {
		lane := n*C + c
		outPlane := out[lane*outH*outW : (lane+1)*outH*outW]
		dataPlane := data[lane*inH*inW : (lane+1)*inH*inW]
		maskPlane := mask[lane*inH*inW : (lane+1)*inH*inW]

		for row := 0; row < inH; row++ {
			for col := 0; col < inW; col++ {
				inIdx := row*inW + col
				kh, kw := cfg.Unflatten(int(maskPlane[inIdx]))

				h := row*cfg.Stride[0] + kh
				w := col*cfg.Stride[1] + kw
				if h < 0 || h >= outH || w < 0 || w >= outW {
					// Covers corrupted masks with negative offsets too.
					continue
				}

				outPlane[h*outW+w] = dataPlane[inIdx]
			}
		}
	}, par)
}
