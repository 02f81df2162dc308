package webscrape

// Rendering-coupled heuristics are expressed as pure functions over node
// descriptors so they can be tested against synthetic values without a
// rendering engine. Live-page implementations fill the descriptors from
// computed styles and bounding boxes; static-HTML implementations
// approximate them from attributes.

// Viewport bands where sticky headers and footers live. Elements boxed
// inside these bands whose ancestry includes a header/nav or footer
// landmark are excluded even when class-name heuristics miss them.
const (
	HeaderZonePx = 140
	FooterZonePx = 180
)

// NodeStyle describes an element's computed rendering state.
type NodeStyle struct {
	Display    string
	Visibility string
	Opacity    float64
	Width      float64
	Height     float64
}

// Visible reports whether an element with this style is rendered: computed
// display/visibility/opacity are not hidden and the bounding box has
// positive width and height.
func (s NodeStyle) Visible() bool {
	if s.Display == "none" || s.Visibility == "hidden" || s.Opacity == 0 {
		return false
	}
	return s.Width > 0 && s.Height > 0
}

// NodeBox is an element's bounding box in viewport coordinates.
type NodeBox struct {
	Top    float64
	Bottom float64
}

// InChromeZone reports whether the box sits in the sticky-header band at
// the top of the viewport or the sticky-footer band at the bottom. Callers
// combine this with a landmark-ancestry check before excluding an element.
func InChromeZone(box NodeBox, viewportHeight float64) bool {
	if box.Bottom <= HeaderZonePx {
		return true
	}
	return viewportHeight > 0 && box.Top >= viewportHeight-FooterZonePx
}
