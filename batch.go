package st7789

import (
	"iter"
	"slices"
)

// Pixel is a single colored point.
type Pixel struct {
	X, Y  uint16
	Color uint16
}

// DrawPixels draws individual pixels, merging horizontally adjacent pixels of
// the same row into one window so that a run costs a single RAMWR.
//
// Runs are capped at the display width. Pixels are written in the order
// given.
func (d *Dev) DrawPixels(pixels iter.Seq[Pixel]) error {
	maxRun := d.w
	if maxRun <= 0 {
		maxRun = 1
	}
	run := make([]uint16, 0, maxRun)
	var sx, y uint16

	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		ex := sx + uint16(len(run)-1)
		err := d.SetPixels(sx, y, ex, y, slices.Values(run))
		run = run[:0]
		return err
	}

	for p := range pixels {
		adjacent := len(run) > 0 && p.Y == y && int(p.X) == int(sx)+len(run)
		if !adjacent || len(run) == maxRun {
			if err := flush(); err != nil {
				return err
			}
			sx, y = p.X, p.Y
		}
		run = append(run, p.Color)
	}
	return flush()
}
