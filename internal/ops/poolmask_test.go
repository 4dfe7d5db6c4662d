package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/poolmask/internal/backend/cpu"
	"github.com/born-ml/poolmask/internal/ops"
	"github.com/born-ml/poolmask/internal/tensor"
	"github.com/born-ml/poolmask/internal/window"
)

func pool2x2() window.Config {
	return window.Config{Kernel: [2]int{2, 2}, Stride: [2]int{2, 2}}
}

func sequential4x4(t *testing.T, backend tensor.Backend) *tensor.RawTensor {
	t.Helper()
	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i + 1)
	}
	in, err := tensor.FromSlice(data, tensor.Shape{1, 1, 4, 4}, backend)
	require.NoError(t, err)
	return in.Raw()
}

// TestNewPoolMaskOp_ConfigValidation rejects bad configs at construction.
func TestNewPoolMaskOp_ConfigValidation(t *testing.T) {
	_, err := ops.NewPoolMaskOp(window.Config{Kernel: [2]int{2, 2}, Stride: [2]int{2, 1}})
	assert.ErrorIs(t, err, window.ErrNonUniformStride)

	_, err = ops.NewPoolMaskOp(window.Config{Kernel: [2]int{0, 2}, Stride: [2]int{1, 1}})
	assert.ErrorIs(t, err, window.ErrNonPositiveKernel)

	_, err = ops.NewPoolMaskOp(pool2x2())
	assert.NoError(t, err)
}

// TestPoolMaskOp_InferShapes checks the queryable shape inference.
func TestPoolMaskOp_InferShapes(t *testing.T) {
	op, err := ops.NewPoolMaskOp(pool2x2())
	require.NoError(t, err)

	shapes, err := op.InferShapes([]tensor.Shape{{2, 3, 4, 4}})
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	assert.Equal(t, tensor.Shape{2, 3, 2, 2}, shapes[0])
	assert.Equal(t, tensor.Shape{2, 3, 2, 2}, shapes[1])

	// Rank mismatch is a shape error, reported before execution.
	_, err = op.InferShapes([]tensor.Shape{{4, 4}})
	var shapeErr *ops.ShapeError
	assert.ErrorAs(t, err, &shapeErr)

	// Kernel larger than the input is a configuration error.
	big, err := ops.NewPoolMaskOp(window.Config{Kernel: [2]int{9, 9}, Stride: [2]int{1, 1}})
	require.NoError(t, err)
	_, err = big.InferShapes([]tensor.Shape{{1, 1, 4, 4}})
	assert.ErrorIs(t, err, window.ErrKernelExceedsIn)
}

// TestPoolMaskOp_ForwardBackward runs the reference scenario end to end
// through the operator surface.
func TestPoolMaskOp_ForwardBackward(t *testing.T) {
	backend := cpu.New()
	op, err := ops.NewPoolMaskOp(pool2x2())
	require.NoError(t, err)

	data := sequential4x4(t, backend)
	pooled, mask, err := op.Forward(data, backend)
	require.NoError(t, err)

	assert.Equal(t, []float32{6, 8, 14, 16}, pooled.AsFloat32())
	assert.Equal(t, []int32{3, 3, 3, 3}, mask.AsInt32())

	assert.Equal(t, []*tensor.RawTensor{data}, op.Inputs())
	assert.Same(t, pooled, op.Output())
	assert.Equal(t, []*tensor.RawTensor{pooled, mask}, op.Outputs())

	// Unit upstream gradient at pooled (1,1) lands on input (3,3).
	gradPooled, _ := tensor.NewRaw(pooled.Shape(), tensor.Float32, tensor.CPU)
	gradPooled.AsFloat32()[3] = 1.0

	grads := op.Backward(gradPooled, backend)
	require.Len(t, grads, 1)

	gradData := grads[0].AsFloat32()
	for i, g := range gradData {
		if i == 15 {
			assert.Equal(t, float32(1.0), g)
		} else {
			assert.Zero(t, g, "position %d", i)
		}
	}
}

// TestPoolMaskOp_BackwardMulti ignores the mask gradient slot.
func TestPoolMaskOp_BackwardMulti(t *testing.T) {
	backend := cpu.New()
	op, err := ops.NewPoolMaskOp(pool2x2())
	require.NoError(t, err)

	data := sequential4x4(t, backend)
	pooled, _, err := op.Forward(data, backend)
	require.NoError(t, err)

	gradPooled, _ := tensor.NewRaw(pooled.Shape(), tensor.Float32, tensor.CPU)
	for i := range gradPooled.AsFloat32() {
		gradPooled.AsFloat32()[i] = 1.0
	}

	// nil mask gradient: masks are not differentiable.
	grads := op.BackwardMulti([]*tensor.RawTensor{gradPooled, nil}, backend)
	require.Len(t, grads, 1)

	var total float32
	for _, g := range grads[0].AsFloat32() {
		total += g
	}
	assert.Equal(t, float32(4.0), total)
}

// TestPoolMaskOp_ShapeLawInverse: derived unpool shapes invert the pooling
// shape formula for stride == kernel configs.
func TestPoolMaskOp_ShapeLawInverse(t *testing.T) {
	for k := 1; k <= 4; k++ {
		cfg := window.Config{Kernel: [2]int{k, k}, Stride: [2]int{k, k}}
		poolOp, err := ops.NewPoolMaskOp(cfg)
		require.NoError(t, err)
		unpoolOp, err := ops.NewUnpoolOp(cfg, [2]int{0, 0})
		require.NoError(t, err)

		for in := k; in <= 4*k; in += k {
			pooledShapes, err := poolOp.InferShapes([]tensor.Shape{{1, 1, in, in}})
			require.NoError(t, err)

			outShapes, err := unpoolOp.InferShapes([]tensor.Shape{pooledShapes[0], pooledShapes[1]})
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{1, 1, in, in}, outShapes[0],
				"kernel %d input %d", k, in)
		}
	}
}
