package geometry

// ZoomLimits bounds the zoom factor and sets the multiplicative step.
type ZoomLimits struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// DefaultZoomLimits are used when no configuration overrides them.
var DefaultZoomLimits = ZoomLimits{Min: 0.2, Max: 4, Step: 1.2}

func (l ZoomLimits) step() float64 {
	if l.Step <= 1 {
		return DefaultZoomLimits.Step
	}
	return l.Step
}

// Clamp limits zoom to [Min, Max].
func (l ZoomLimits) Clamp(zoom float64) float64 {
	return Clamp(zoom, l.Min, l.Max)
}

// IncrementZoom multiplies zoom by the step.
func IncrementZoom(zoom float64, limits ZoomLimits) float64 {
	return limits.Clamp(zoom * limits.step())
}

// DecrementZoom divides zoom by the step.
func DecrementZoom(zoom float64, limits ZoomLimits) float64 {
	return limits.Clamp(zoom / limits.step())
}

// ZoomAtPosition returns the scroll that keeps the point under mouse
// stationary when the zoom changes from zoom to newZoom.
func ZoomAtPosition(mouse Point, renderer Size, zoom, newZoom float64, scroll Scroll) Scroll {
	if zoom <= 0 || newZoom <= 0 {
		return scroll
	}
	local := mouse.Sub(renderer.Center())
	world := local.Sub(scroll.Position).Div(zoom)
	return Scroll{Position: local.Sub(world.Mul(newZoom))}
}

// IncrementZoomAtPosition zooms in one step around mouse.
func IncrementZoomAtPosition(mouse Point, renderer Size, zoom float64, scroll Scroll, limits ZoomLimits) (float64, Scroll) {
	newZoom := IncrementZoom(zoom, limits)
	return newZoom, ZoomAtPosition(mouse, renderer, zoom, newZoom, scroll)
}

// DecrementZoomAtPosition zooms out one step around mouse.
func DecrementZoomAtPosition(mouse Point, renderer Size, zoom float64, scroll Scroll, limits ZoomLimits) (float64, Scroll) {
	newZoom := DecrementZoom(zoom, limits)
	return newZoom, ZoomAtPosition(mouse, renderer, zoom, newZoom, scroll)
}
