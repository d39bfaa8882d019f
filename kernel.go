package texgen

import "errors"

// ErrUnknownKernel is returned when rendering with an unregistered kernel ID.
var ErrUnknownKernel = errors.New("texgen: unknown kernel")

// KernelID identifies a built-in kernel. Accelerators use the ID to select
// the matching shader entry point.
type KernelID uint32

const (
	// KernelJulia is the built-in gradient kernel. See Julia for why the
	// name does not imply a fractal.
	KernelJulia KernelID = iota
)

// String returns the kernel's entry point name.
func (id KernelID) String() string {
	switch id {
	case KernelJulia:
		return "julia"
	default:
		return "unknown"
	}
}

// Julia computes the color for one invocation of the texture kernel.
//
// The name is kept from the shader entry point it mirrors; the kernel
// performs no escape-time iteration. The visible output is a two-axis
// linear gradient: red carries the horizontal normalized position, green
// the vertical, blue and alpha are fixed at full intensity.
//
// The location is converted to float before division so no truncation
// occurs; for an exactly-sized dispatch the normalized coordinate lies in
// [0, 1) on both axes.
func Julia(inv Invocation, shape DispatchShape) Color {
	width, height := shape.Resolution()
	x, y := inv.Location()
	u := float32(x) / float32(width)
	v := float32(y) / float32(height)
	return Color{R: u, G: v, B: 1, A: 1}
}

// kernels maps built-in kernel IDs to their CPU implementations.
var kernels = map[KernelID]Kernel{
	KernelJulia: Julia,
}

// KernelByID returns the CPU implementation of a built-in kernel.
func KernelByID(id KernelID) (Kernel, bool) {
	k, ok := kernels[id]
	return k, ok
}
