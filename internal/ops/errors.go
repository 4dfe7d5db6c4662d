package ops

import (
	"fmt"

	"github.com/born-ml/poolmask/internal/tensor"
)

// ShapeError reports incompatible tensor shapes handed to an operator.
// It is raised eagerly, before any kernel runs; no partial output exists
// when it is returned.
type ShapeError struct {
	Op     string       // operator name
	Want   tensor.Shape // expected shape (nil when only a rank was expected)
	Got    tensor.Shape // offending shape
	Detail string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Want != nil {
		return fmt.Sprintf("%s: %s: expected shape %v, got %v", e.Op, e.Detail, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %s: got shape %v", e.Op, e.Detail, e.Got)
}
