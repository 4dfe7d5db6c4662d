package tensor

import "testing"

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{4}, 4},
		{Shape{2, 3, 4, 5}, 120},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("NumElements(%v): expected %d, got %d", tt.shape, tt.want, got)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (Shape{1, 2, 3, 4}).Validate(); err != nil {
		t.Errorf("Valid shape rejected: %v", err)
	}
	if err := (Shape{1, 0, 3, 4}).Validate(); err == nil {
		t.Error("Zero dimension accepted")
	}
}

func TestShape_CheckRank4(t *testing.T) {
	if err := (Shape{1, 2, 3, 4}).CheckRank4("test"); err != nil {
		t.Errorf("4D shape rejected: %v", err)
	}
	if err := (Shape{3, 4}).CheckRank4("test"); err == nil {
		t.Error("2D shape accepted as rank 4")
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4, 5}.ComputeStrides()
	want := []int{60, 20, 5, 1}
	for i, s := range want {
		if strides[i] != s {
			t.Errorf("Stride[%d]: expected %d, got %d", i, s, strides[i])
		}
	}
}

func TestNewRaw_ZeroInitialized(t *testing.T) {
	raw, err := NewRaw(Shape{1, 1, 2, 2}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	for i, v := range raw.AsFloat32() {
		if v != 0 {
			t.Errorf("Element %d: expected 0, got %f", i, v)
		}
	}
}

func TestNewRaw_InvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{1, -1}, Float32, CPU); err == nil {
		t.Error("Negative dimension accepted")
	}
}

func TestRawTensor_DtypeViews(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Int32, CPU)
	data := raw.AsInt32()
	data[3] = 42
	if raw.AsInt32()[3] != 42 {
		t.Error("AsInt32 view is not aliased to the buffer")
	}

	defer func() {
		if recover() == nil {
			t.Error("AsFloat32 on an int32 tensor should panic")
		}
	}()
	raw.AsFloat32()
}

func TestRawTensor_Clone(t *testing.T) {
	raw, _ := NewRaw(Shape{4}, Float64, CPU)
	raw.AsFloat64()[0] = 1.5

	clone := raw.Clone()
	clone.AsFloat64()[0] = 2.5

	if raw.AsFloat64()[0] != 1.5 {
		t.Error("Clone shares memory with the original")
	}
}

// fakeBackend satisfies just enough of Backend for the creation helpers,
// which only consult Device().
type fakeBackend struct{ Backend }

func (fakeBackend) Device() Device { return CPU }

func TestFromSlice(t *testing.T) {
	b := fakeBackend{}

	tt, err := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, b)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if tt.At(1, 0) != 3 {
		t.Errorf("At(1,0): expected 3, got %f", tt.At(1, 0))
	}

	if _, err := FromSlice([]float32{1, 2}, Shape{2, 2}, b); err == nil {
		t.Error("Length mismatch accepted")
	}
}

func TestZerosAndFull(t *testing.T) {
	b := fakeBackend{}

	z := Zeros[int32](Shape{1, 1, 2, 2}, b)
	for i, v := range z.Data() {
		if v != 0 {
			t.Errorf("Zeros[%d]: expected 0, got %d", i, v)
		}
	}

	f := Full[float32](Shape{3}, 2.5, b)
	for i, v := range f.Data() {
		if v != 2.5 {
			t.Errorf("Full[%d]: expected 2.5, got %f", i, v)
		}
	}
}
