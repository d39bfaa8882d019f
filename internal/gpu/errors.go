//go:build !nogpu

package gpu

import "errors"

// Dispatcher errors.
var (
	// ErrNotInitialized is returned when dispatching before Init succeeds.
	ErrNotInitialized = errors.New("gpu: dispatcher is not initialized")

	// ErrNilTexture is returned when the output texture is nil.
	ErrNilTexture = errors.New("gpu: output texture is nil")

	// ErrEmptyDispatch is returned when a dispatch axis has zero tiles.
	ErrEmptyDispatch = errors.New("gpu: dispatch shape has zero tiles")

	// ErrShaderSourceEmpty is returned when the embedded WGSL source is
	// missing (build-time issue).
	ErrShaderSourceEmpty = errors.New("gpu: kernel shader source is empty")
)
