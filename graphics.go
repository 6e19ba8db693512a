package st7789

import (
	"image"
	"image/color"
	"iter"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/st7789/rgb565"
)

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer. Min is always {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.w, d.h)
}

// Draw implements display.Drawer.
//
// The part of dst inside the display is written straight to the controller,
// converting src pixels to RGB565 as they are sent. Nothing is kept in memory
// between calls.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	r := dst.Intersect(d.Bounds())
	if r.Empty() {
		return nil
	}
	// Shift the source point by what clipping removed.
	sp = sp.Add(r.Min.Sub(dst.Min))
	return d.SetPixels(uint16(r.Min.X), uint16(r.Min.Y), uint16(r.Max.X-1), uint16(r.Max.Y-1), pixelsOf(src, r, sp))
}

// pixelsOf yields the colors of src for the display rectangle r, src point sp
// being aligned with r.Min. Pixels outside src are black.
func pixelsOf(src image.Image, r image.Rectangle, sp image.Point) iter.Seq[uint16] {
	if img, ok := src.(*rgb565.Image); ok {
		return func(yield func(uint16) bool) {
			for y := 0; y < r.Dy(); y++ {
				for x := 0; x < r.Dx(); x++ {
					if !yield(uint16(img.RGB565At(sp.X+x, sp.Y+y))) {
						return
					}
				}
			}
		}
	}
	if u, ok := src.(*image.Uniform); ok {
		return repeat(uint16(rgb565.Convert(u.C)), r.Dx()*r.Dy())
	}
	return func(yield func(uint16) bool) {
		b := src.Bounds()
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				p := image.Point{X: sp.X + x, Y: sp.Y + y}
				var c rgb565.Color
				if p.In(b) {
					c = rgb565.Convert(src.At(p.X, p.Y))
				}
				if !yield(uint16(c)) {
					return
				}
			}
		}
	}
}

// Clear fills the whole display with c.
func (d *Dev) Clear(c uint16) error {
	return d.FillRect(d.Bounds(), c)
}

// FillRect fills r, clipped to the display, with c.
func (d *Dev) FillRect(r image.Rectangle, c uint16) error {
	r = r.Intersect(d.Bounds())
	if r.Empty() {
		return nil
	}
	return d.SetPixels(uint16(r.Min.X), uint16(r.Min.Y), uint16(r.Max.X-1), uint16(r.Max.Y-1), repeat(c, r.Dx()*r.Dy()))
}

// repeat yields c n times.
func repeat(c uint16, n int) iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		for range n {
			if !yield(c) {
				return
			}
		}
	}
}

var _ display.Drawer = &Dev{}
