package parallel

import (
	"context"
)

// Dispatcher runs a per-tile function over an output grid in parallel.
//
// Thread safety: Dispatcher methods are safe for concurrent use; passes
// share the underlying WorkerPool.
type Dispatcher struct {
	pool *WorkerPool
}

// NewDispatcher creates a dispatcher backed by a new pool of the given
// number of workers. If workers <= 0, GOMAXPROCS is used.
func NewDispatcher(workers int) *Dispatcher {
	return &Dispatcher{pool: NewWorkerPool(workers)}
}

// Workers returns the number of pool workers.
func (d *Dispatcher) Workers() int {
	return d.pool.Workers()
}

// ForEachTile calls fn for every tile of a width x height grid, in
// parallel. fn must only write pixels inside the tile it receives.
//
// Cancellation is checked between tiles: a tile that has started runs to
// completion. Returns ctx.Err() if the pass was cancelled.
func (d *Dispatcher) ForEachTile(ctx context.Context, width, height int, fn func(t Tile)) error {
	if fn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	grid := NewTileGrid(width, height)
	tiles := grid.Tiles()
	if len(tiles) == 0 {
		return nil
	}

	// A single tile is not worth the hand-off.
	if len(tiles) == 1 {
		fn(tiles[0])
		return nil
	}

	work := make([]func(), len(tiles))
	for i, t := range tiles {
		work[i] = func() {
			fn(t)
		}
	}
	return d.pool.ExecuteAll(ctx, work)
}

// Close shuts down the worker pool.
func (d *Dispatcher) Close() {
	d.pool.Close()
}
