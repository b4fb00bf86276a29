package render

import (
	"github.com/lixenwraith/spell-smash/game"
)

type layerEntry struct {
	layer    Layer
	priority RenderPriority
	index    int // registration order for stable sort
}

// RenderOrchestrator coordinates the render pipeline
type RenderOrchestrator struct {
	surface  Surface
	palette  Palette
	buffer   *RenderBuffer
	layers   []layerEntry
	regCount int
}

// NewRenderOrchestrator creates an orchestrator sized to the surface
func NewRenderOrchestrator(surface Surface, palette Palette) *RenderOrchestrator {
	w, h := surface.Size()
	return &RenderOrchestrator{
		surface: surface,
		palette: palette,
		buffer:  NewRenderBuffer(w, h, palette.Background),
		layers:  make([]layerEntry, 0, 8),
	}
}

// NewDefaultOrchestrator registers the standard layers
func NewDefaultOrchestrator(surface Surface, palette Palette) *RenderOrchestrator {
	o := NewRenderOrchestrator(surface, palette)
	o.Register(SceneLayer{}, PriorityScene)
	o.Register(ProjectileLayer{}, PriorityProjectile)
	o.Register(HUDLayer{}, PriorityUI)
	o.Register(OverlayLayer{}, PriorityOverlay)
	return o
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (o *RenderOrchestrator) Register(l Layer, priority RenderPriority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Buffer exposes the composited frame
func (o *RenderOrchestrator) Buffer() *RenderBuffer {
	return o.buffer
}

// RenderFrame executes the render pipeline: resize if needed, clear, render all, flush
func (o *RenderOrchestrator) RenderFrame(v game.View) {
	w, h := o.surface.Size()
	if bw, bh := o.buffer.Bounds(); bw != w || bh != h {
		o.buffer.Resize(w, h)
	}
	o.buffer.Clear()

	ctx := NewRenderContext(v, w, h, o.palette)
	for _, entry := range o.layers {
		entry.layer.Render(ctx, o.buffer)
	}
	o.buffer.Flush(o.surface)
}
