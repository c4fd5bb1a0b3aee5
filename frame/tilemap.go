package frame

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vecrt/rt/scene"
)

// TileResolver computes the surface sublist a tile at (tileRow, tileCol)
// should test against — typically the subset of a scene's surfaces
// whose world-space bounds overlap that tile, culled by whatever
// broad-phase structure the caller maintains outside this package.
type TileResolver func(tileRow, tileCol int) scene.List

// TileMap fronts a TileResolver with an LRU cache keyed by tile
// position and a generation counter, so a frame driver that re-renders
// the same static scene across many frames doesn't re-run the
// resolver's culling work for tiles it has already seen this
// generation (spec.md §4.J "optional tile-map resolution").
//
// A nil *TileMap is a valid, no-op tile map: frame.Driver treats it as
// "render the whole list, no tiling" rather than requiring callers to
// special-case the untiled path.
type TileMap struct {
	TileCols        int // tile-grid row stride, in tiles
	PixelsPerTileX  int
	PixelsPerTileY  int
	Resolve         TileResolver
	generation      uint64
	cache           *lru.Cache[tileKey, scene.List]
}

type tileKey struct {
	generation         uint64
	tileRow, tileCol   int
}

// NewTileMap builds a TileMap whose cache holds up to cacheSize
// resolved sublists before evicting the least recently used.
func NewTileMap(tileCols, pixelsPerTileX, pixelsPerTileY int, resolve TileResolver, cacheSize int) (*TileMap, error) {
	cache, err := lru.New[tileKey, scene.List](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("frame: building tile cache: %w", err)
	}
	return &TileMap{
		TileCols:       tileCols,
		PixelsPerTileX: pixelsPerTileX,
		PixelsPerTileY: pixelsPerTileY,
		Resolve:        resolve,
		cache:          cache,
	}, nil
}

// Invalidate bumps the tile map's generation, making every previously
// cached entry unreachable the next time ListFor is called for that
// tile, and purges the cache so the stale entries are dropped at once.
// Callers bump this whenever the underlying scene list changes.
func (tm *TileMap) Invalidate(generation uint64) {
	tm.generation = generation
	tm.cache.Purge()
}

// ListFor resolves the surface sublist covering the pixel at
// (row, col), serving from cache when available.
func (tm *TileMap) ListFor(row, col int) scene.List {
	if tm == nil {
		return nil
	}
	key := tileKey{
		generation: tm.generation,
		tileRow:    row / tm.PixelsPerTileY,
		tileCol:    col / tm.PixelsPerTileX,
	}
	if list, ok := tm.cache.Get(key); ok {
		return list
	}
	list := tm.Resolve(key.tileRow, key.tileCol)
	tm.cache.Add(key, list)
	return list
}
