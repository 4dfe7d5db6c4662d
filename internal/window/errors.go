package window

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	ErrNonPositiveKernel = errors.New("kernel dimensions must be positive")
	ErrNonPositiveStride = errors.New("stride dimensions must be positive")
	ErrNonUniformStride  = errors.New("only uniform stride is supported")
	ErrNegativePad       = errors.New("pad dimensions must be non-negative")
	ErrUnpoolPadding     = errors.New("unpooling requires zero padding")
	ErrKernelExceedsIn   = errors.New("kernel size exceeds input")
)

// ConfigError reports an invalid window configuration together with the
// configuration that produced it.
type ConfigError struct {
	Config Config
	Err    error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("window config %s: %v", e.Config, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(cfg Config, err error) error {
	return &ConfigError{Config: cfg, Err: err}
}
