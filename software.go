package hqx

import (
	"context"

	"github.com/gogpu/hqx/internal/parallel"
)

// softwareBackend runs passes on the CPU as a parallel-for over output tiles.
type softwareBackend struct {
	dispatcher *parallel.Dispatcher
}

func newSoftwareBackend(workers int) *softwareBackend {
	return &softwareBackend{dispatcher: parallel.NewDispatcher(workers)}
}

// upscale shades every pixel of dst. Each tile writes a disjoint region of
// dst and reads only src and the LUT.
func (b *softwareBackend) upscale(ctx context.Context, k *Kernel, dst *Image, src Sampler) error {
	return b.dispatcher.ForEachTile(ctx, dst.Width(), dst.Height(), func(t parallel.Tile) {
		k.ShadeRect(dst, src, t.MinX, t.MinY, t.MaxX, t.MaxY)
	})
}

func (b *softwareBackend) workers() int {
	return b.dispatcher.Workers()
}

func (b *softwareBackend) close() {
	b.dispatcher.Close()
}
