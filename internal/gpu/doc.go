// Package gpu dispatches texgen kernels as WGSL compute shaders via
// gogpu/wgpu.
//
// The package brings up a HAL device (Vulkan backend), compiles the
// embedded kernel shader, and executes one workgroup per 8x8 tile of the
// output texture. Pixels travel as packed rgba8 words in a storage buffer
// bound at group 0, binding 0 — the kernel's single resource slot — and
// are read back through a staging buffer after a fence wait.
package gpu
