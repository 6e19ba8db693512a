package st7789

import (
	"fmt"
	"image/color"

	"periph.io/x/devices/v3/st7789/rgb565"
	"tinygo.org/x/drivers"
)

// Displayer exposes a Dev as a TinyGo drivers.Displayer so that packages such
// as tinyfont and tinydraw can render on it.
//
// drivers.Displayer.SetPixel cannot report errors, so the first failure is
// kept and returned by the next call to Display.
type Displayer struct {
	d   *Dev
	err error
}

// NewDisplayer wraps d.
func NewDisplayer(d *Dev) *Displayer {
	return &Displayer{d: d}
}

// Size implements drivers.Displayer. Width and height are exchanged while the
// orientation swaps rows and columns.
func (t *Displayer) Size() (x, y int16) {
	w, h := t.size()
	return int16(w), int16(h)
}

func (t *Displayer) size() (w, h int) {
	if t.d.Orientation().swapsAxes() {
		return t.d.h, t.d.w
	}
	return t.d.w, t.d.h
}

// SetPixel implements drivers.Displayer. The pixel is written immediately;
// pixels outside the display are ignored.
func (t *Displayer) SetPixel(x, y int16, c color.RGBA) {
	w, h := t.size()
	if x < 0 || y < 0 || int(x) >= w || int(y) >= h {
		return
	}
	err := t.d.SetPixel(uint16(x), uint16(y), uint16(rgb565.Convert(c)))
	if err != nil && t.err == nil {
		t.err = err
	}
}

// Display implements drivers.Displayer. Pixels are never buffered, so it only
// reports the first error seen by SetPixel since the previous call.
func (t *Displayer) Display() error {
	err := t.err
	t.err = nil
	return err
}

// SetRotation maps a TinyGo rotation onto the controller orientation.
func (t *Displayer) SetRotation(r drivers.Rotation) error {
	var o Orientation
	switch r {
	case drivers.Rotation0:
		o = Portrait
	case drivers.Rotation90:
		o = Landscape
	case drivers.Rotation180:
		o = PortraitSwapped
	case drivers.Rotation270:
		o = LandscapeSwapped
	default:
		return fmt.Errorf("st7789: unsupported rotation %d", r)
	}
	return t.d.SetOrientation(o)
}

// Rotation returns the TinyGo rotation matching the current orientation.
func (t *Displayer) Rotation() drivers.Rotation {
	switch t.d.Orientation() {
	case Landscape:
		return drivers.Rotation90
	case PortraitSwapped:
		return drivers.Rotation180
	case LandscapeSwapped:
		return drivers.Rotation270
	}
	return drivers.Rotation0
}

var _ drivers.Displayer = &Displayer{}
