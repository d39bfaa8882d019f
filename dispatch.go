package texgen

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/texgen/internal/parallel"
)

// TileSize is the invocation extent of one dispatch tile along X and Y.
// Tiles exist for scheduling granularity only: the kernel never communicates
// within a tile, so the constant affects performance, not output.
const TileSize = 8

// ErrNotTileAligned is returned when a requested resolution is not an exact
// multiple of TileSize in both axes.
var ErrNotTileAligned = errors.New("texgen: resolution is not a multiple of the tile size")

// DispatchShape is the number of tiles dispatched along each axis.
// The implied Z extent is always 1.
type DispatchShape struct {
	TilesX uint32
	TilesY uint32
}

// Resolution returns the total pixel extent covered by the dispatch:
// (TilesX*TileSize, TilesY*TileSize).
func (s DispatchShape) Resolution() (width, height int) {
	return int(s.TilesX) * TileSize, int(s.TilesY) * TileSize
}

// Invocations returns the total number of kernel invocations in the dispatch.
func (s DispatchShape) Invocations() int {
	w, h := s.Resolution()
	return w * h
}

// ShapeFor computes the dispatch shape that exactly covers a width x height
// texture. It is the caller-boundary validation point: the dispatch itself
// performs no bounds checks, so a mis-sized shape silently drops writes or
// leaves pixels unwritten.
func ShapeFor(width, height int) (DispatchShape, error) {
	if width <= 0 || height <= 0 {
		return DispatchShape{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width%TileSize != 0 || height%TileSize != 0 {
		return DispatchShape{}, fmt.Errorf("%w: %dx%d", ErrNotTileAligned, width, height)
	}
	return DispatchShape{
		TilesX: uint32(width / TileSize),
		TilesY: uint32(height / TileSize),
	}, nil
}

// Invocation identifies one unit of parallel execution by its position in
// the global dispatch grid. It exists only for the duration of the
// invocation it names.
type Invocation struct {
	X, Y, Z uint32
}

// Location returns the signed pixel coordinate this invocation writes.
func (inv Invocation) Location() (x, y int) {
	return int(int32(inv.X)), int(int32(inv.Y))
}

// Kernel computes the color for a single invocation. Kernels must be pure:
// no shared mutable state, no I/O, no dependence on invocation order. The
// dispatcher stores the returned color at the invocation's derived location.
type Kernel func(inv Invocation, shape DispatchShape) Color

// pool is the shared CPU worker pool for parallel dispatch, created on
// first use and sized to GOMAXPROCS.
var (
	poolOnce sync.Once
	pool     *parallel.Pool
)

func dispatchPool() *parallel.Pool {
	poolOnce.Do(func() {
		pool = parallel.NewPool(0)
	})
	return pool
}

// Dispatch evaluates the kernel once per invocation of the grid and writes
// each result into tex. Tiles are distributed over a worker pool; the
// disjoint-write invariant (one invocation, one pixel) is the only
// synchronization needed, so completion order never affects the result.
//
// Dispatch does not validate that the shape matches the texture: a dispatch
// larger than the texture wastes invocations (their writes are discarded),
// a smaller one leaves pixels untouched. Use ShapeFor to size correctly.
func Dispatch(shape DispatchShape, k Kernel, tex *Texture) {
	if k == nil || tex == nil || shape.TilesX == 0 || shape.TilesY == 0 {
		return
	}
	work := make([]func(), 0, int(shape.TilesX)*int(shape.TilesY))
	for ty := uint32(0); ty < shape.TilesY; ty++ {
		for tx := uint32(0); tx < shape.TilesX; tx++ {
			tx, ty := tx, ty
			work = append(work, func() {
				runTile(tx, ty, shape, k, tex)
			})
		}
	}
	dispatchPool().ExecuteAll(work)
}

// DispatchSerial evaluates the grid on the calling goroutine in row-major
// order. Output is identical to Dispatch; it exists as a reference path for
// tests and diffing.
func DispatchSerial(shape DispatchShape, k Kernel, tex *Texture) {
	if k == nil || tex == nil {
		return
	}
	for ty := uint32(0); ty < shape.TilesY; ty++ {
		for tx := uint32(0); tx < shape.TilesX; tx++ {
			runTile(tx, ty, shape, k, tex)
		}
	}
}

// runTile executes the TileSize x TileSize invocations of one tile.
func runTile(tileX, tileY uint32, shape DispatchShape, k Kernel, tex *Texture) {
	baseX := tileX * TileSize
	baseY := tileY * TileSize
	for ly := uint32(0); ly < TileSize; ly++ {
		for lx := uint32(0); lx < TileSize; lx++ {
			inv := Invocation{X: baseX + lx, Y: baseY + ly, Z: 0}
			c := k(inv, shape)
			x, y := inv.Location()
			tex.SetColor(x, y, c)
		}
	}
}
