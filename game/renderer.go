package game

// Renderer paints a single tile. Engines call it synchronously and never read
// anything back, so implementations should return quickly.
type Renderer interface {
	Render(tileIndex int, image ImageID)
}

// RendererFunc adapts a plain function to a Renderer
type RendererFunc func(tileIndex int, image ImageID)

func (fn RendererFunc) Render(tileIndex int, image ImageID) {
	fn(tileIndex, image)
}

// MultiRenderer forwards every render to each of its renderers, in order
type MultiRenderer []Renderer

func (renderers MultiRenderer) Render(tileIndex int, image ImageID) {
	for _, renderer := range renderers {
		renderer.Render(tileIndex, image)
	}
}

type nopRenderer struct{}

func (nopRenderer) Render(int, ImageID) {}
