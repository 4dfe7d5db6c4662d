package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_Validate covers the pooling configuration invariants.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid 2x2/2", Config{Kernel: [2]int{2, 2}, Stride: [2]int{2, 2}}, nil},
		{"valid rectangular kernel", Config{Kernel: [2]int{3, 2}, Stride: [2]int{1, 1}, Pad: [2]int{1, 0}}, nil},
		{"zero kernel", Config{Kernel: [2]int{0, 2}, Stride: [2]int{1, 1}}, ErrNonPositiveKernel},
		{"zero stride", Config{Kernel: [2]int{2, 2}, Stride: [2]int{0, 0}}, ErrNonPositiveStride},
		{"non-uniform stride", Config{Kernel: [2]int{2, 2}, Stride: [2]int{2, 1}}, ErrNonUniformStride},
		{"negative pad", Config{Kernel: [2]int{2, 2}, Stride: [2]int{1, 1}, Pad: [2]int{-1, 0}}, ErrNegativePad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// TestConfig_ValidateUnpool rejects any non-zero padding.
func TestConfig_ValidateUnpool(t *testing.T) {
	cfg := Config{Kernel: [2]int{2, 2}, Stride: [2]int{2, 2}, Pad: [2]int{1, 0}}
	assert.ErrorIs(t, cfg.ValidateUnpool(), ErrUnpoolPadding)

	cfg.Pad = [2]int{0, 0}
	assert.NoError(t, cfg.ValidateUnpool())
}

// TestPoolOutputSize exercises the shared shape-inference formula.
func TestPoolOutputSize(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		inH, inW     int
		wantH, wantW int
	}{
		{"2x2 stride 2", Config{Kernel: [2]int{2, 2}, Stride: [2]int{2, 2}}, 4, 4, 2, 2},
		{"3x3 stride 1", Config{Kernel: [2]int{3, 3}, Stride: [2]int{1, 1}}, 5, 5, 3, 3},
		// Windows may start anywhere inside the input, so a 3x3 kernel at
		// stride 2 on 6x6 yields 3, not the floor-mode (6-3)/2+1 = 2.
		{"3x3 stride 2 on 6x6", Config{Kernel: [2]int{3, 3}, Stride: [2]int{2, 2}}, 6, 6, 3, 3},
		{"padded", Config{Kernel: [2]int{2, 2}, Stride: [2]int{2, 2}, Pad: [2]int{1, 1}}, 4, 4, 3, 3},
		{"kernel shorter than stride", Config{Kernel: [2]int{1, 1}, Stride: [2]int{2, 2}}, 5, 5, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, w, err := PoolOutputSize(tt.cfg, tt.inH, tt.inW)
			require.NoError(t, err)
			assert.Equal(t, tt.wantH, h)
			assert.Equal(t, tt.wantW, w)
		})
	}
}

// TestPoolOutputSize_KernelExceedsInput reports a configuration error before
// any data is touched.
func TestPoolOutputSize_KernelExceedsInput(t *testing.T) {
	cfg := Config{Kernel: [2]int{7, 7}, Stride: [2]int{1, 1}}
	_, _, err := PoolOutputSize(cfg, 4, 4)
	assert.ErrorIs(t, err, ErrKernelExceedsIn)
}

// TestUnpoolOutputSize_InverseOfPool verifies the derived unpool size is the
// algebraic inverse of the pooling formula when no explicit target is given.
func TestUnpoolOutputSize_InverseOfPool(t *testing.T) {
	configs := []Config{
		{Kernel: [2]int{2, 2}, Stride: [2]int{2, 2}},
		{Kernel: [2]int{3, 3}, Stride: [2]int{1, 1}},
		{Kernel: [2]int{3, 3}, Stride: [2]int{2, 2}},
	}

	for _, cfg := range configs {
		for in := cfg.Kernel[0]; in <= 12; in++ {
			pooledH, pooledW, err := PoolOutputSize(cfg, in, in)
			require.NoError(t, err)

			h, w, err := UnpoolOutputSize(cfg, pooledH, pooledW, 0, 0)
			require.NoError(t, err)
			assert.Equal(t, (pooledH-1)*cfg.Stride[0]+cfg.Kernel[0], h)
			assert.Equal(t, (pooledW-1)*cfg.Stride[1]+cfg.Kernel[1], w)
		}
	}
}

// TestUnpoolOutputSize_ExplicitTarget prefers a positive unpool_size.
func TestUnpoolOutputSize_ExplicitTarget(t *testing.T) {
	cfg := Config{Kernel: [2]int{2, 2}, Stride: [2]int{2, 2}}
	h, w, err := UnpoolOutputSize(cfg, 3, 3, 7, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, w)
}

// TestWindowRect covers padded and unpadded window bounds.
func TestWindowRect(t *testing.T) {
	cfg := Config{Kernel: [2]int{3, 3}, Stride: [2]int{2, 2}, Pad: [2]int{1, 1}}

	r := cfg.WindowRect(0, 0)
	assert.Equal(t, Rect{RowStart: -1, RowEnd: 2, ColStart: -1, ColEnd: 2}, r)

	r = cfg.WindowRect(1, 2)
	assert.Equal(t, Rect{RowStart: 1, RowEnd: 4, ColStart: 3, ColEnd: 6}, r)
}

// TestUnflatten converts in-window offsets back to (row, col).
func TestUnflatten(t *testing.T) {
	cfg := Config{Kernel: [2]int{2, 3}, Stride: [2]int{1, 1}}

	kh, kw := cfg.Unflatten(0)
	assert.Equal(t, [2]int{0, 0}, [2]int{kh, kw})

	kh, kw = cfg.Unflatten(5)
	assert.Equal(t, [2]int{1, 2}, [2]int{kh, kw})
}
