//go:build !nogpu

package gpu

import "encoding/binary"

// unpackPixels expands packed rgba8 words read back from the GPU into the
// texture's byte layout. Each u32 holds r | g<<8 | b<<16 | a<<24.
func unpackPixels(src []byte, dst []uint8, pixelCount int) {
	for i := 0; i < pixelCount; i++ {
		v := binary.LittleEndian.Uint32(src[i*4:])
		dst[i*4+0] = uint8(v)
		dst[i*4+1] = uint8(v >> 8)
		dst[i*4+2] = uint8(v >> 16)
		dst[i*4+3] = uint8(v >> 24)
	}
}

// packPixels is the inverse of unpackPixels. The kernel is write-only, so
// this is only needed when seeding a buffer with existing texture contents.
func packPixels(src []uint8, pixelCount int) []byte {
	out := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		r := uint32(src[i*4+0])
		g := uint32(src[i*4+1])
		b := uint32(src[i*4+2])
		a := uint32(src[i*4+3])
		binary.LittleEndian.PutUint32(out[i*4:], r|g<<8|b<<16|a<<24)
	}
	return out
}
