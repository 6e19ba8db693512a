package st7789

import (
	"encoding/binary"
	"fmt"
	"iter"
	"reflect"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Orientation is the MADCTL bit pattern selecting row/column order and
// mirroring of the frame memory.
type Orientation byte

// Possible orientations.
const (
	Portrait         Orientation = 0b0000_0000 // no inverting
	Landscape        Orientation = 0b0110_0000 // invert column and page/column order
	PortraitSwapped  Orientation = 0b1100_0000 // invert page and column order
	LandscapeSwapped Orientation = 0b1010_0000 // invert page and page/column order
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "Portrait"
	case Landscape:
		return "Landscape"
	case PortraitSwapped:
		return "PortraitSwapped"
	case LandscapeSwapped:
		return "LandscapeSwapped"
	}
	return fmt.Sprintf("Orientation(0x%02X)", byte(o))
}

// swapsAxes reports whether o exchanges rows and columns (MADCTL MV).
func (o Orientation) swapsAxes() bool {
	return o&0b0010_0000 != 0
}

// TearingEffect selects the tearing effect output of the controller.
type TearingEffect int

const (
	// TearingEffectOff disables the output.
	TearingEffectOff TearingEffect = iota
	// TearingEffectVertical outputs vertical blanking information.
	TearingEffectVertical
	// TearingEffectHorizontalAndVertical outputs horizontal and vertical
	// blanking information.
	TearingEffectHorizontalAndVertical
)

// Reset and settle timings.
const (
	resetPulse    = 10 * time.Microsecond
	swResetSettle = 150 * time.Millisecond
	displayOnWait = 10 * time.Millisecond
)

// streamChunk is the number of bytes buffered while streaming pixels.
const streamChunk = 4096

// Dev is an open handle to a ST7789 display controller.
//
// Dev is not safe for concurrent use; it owns its bus and reset pin until
// Release is called.
type Dev struct {
	bus Bus
	rst gpio.PinOut

	// Visible size
	w, h int

	orientation Orientation
	released    bool
}

// New returns a Dev talking over bus. rst is optional, pass nil when the
// reset line is not wired. A nil pointer or gpio.INVALID is treated as no pin.
//
// New does not touch the bus.
func New(bus Bus, rst gpio.PinOut, width, height int) *Dev {
	return &Dev{
		bus:         bus,
		rst:         pinOrNil(rst),
		w:           width,
		h:           height,
		orientation: Portrait,
	}
}

// Init resets the controller and sends the power-up sequence.
//
// On failure the controller is in an unknown state and Init must be run
// again from the start. A nil delay sleeps with time.Sleep.
//
// The power-up sequence writes MADCTL 0x70 while Orientation keeps reporting
// Portrait. Call SetOrientation after Init to put both in a known state.
func (d *Dev) Init(delay Delay) error {
	delay = orSleep(delay)
	if err := d.HardReset(delay); err != nil {
		return err
	}
	if err := d.writeCommand(SWRESET); err != nil {
		return err
	}
	delay.Sleep(swResetSettle)

	for _, c := range initSequence {
		if err := d.send(c.i, c.data...); err != nil {
			return err
		}
	}

	if err := d.writeCommand(SLPOUT); err != nil {
		return err
	}
	if err := d.writeCommand(DISPON); err != nil {
		return err
	}
	delay.Sleep(displayOnWait)
	return nil
}

type command struct {
	i    Instruction
	data []byte
}

// initSequence is sent in order between SWRESET and SLPOUT.
var initSequence = []command{
	{MADCTL, []byte{0x70}},
	{FRMCTR2, []byte{0x0C, 0x0C, 0x00, 0x33, 0x33}},
	{COLMOD, []byte{0x05}}, // 16 bits per pixel
	{GCTRL, []byte{0x14}},
	{VCOMS, []byte{0x37}},
	{LCMCTRL, []byte{0x2C}},
	{VDVVRHEN, []byte{0x01}},
	{VRHS, []byte{0x12}},
	{VDVS, []byte{0x20}},
	{PWCTRL1, []byte{0xA4, 0xA1}},
	{FRCTRL2, []byte{0x0F}}, // 60Hz
	{GMCTRP1, []byte{0xD0, 0x04, 0x0D, 0x11, 0x13, 0x2B, 0x3F, 0x54, 0x4C, 0x18, 0x0D, 0x0B, 0x1F, 0x23}},
	{GMCTRN1, []byte{0xD0, 0x04, 0x0C, 0x11, 0x13, 0x2C, 0x3F, 0x44, 0x51, 0x2F, 0x1F, 0x1F, 0x20, 0x23}},
}

// HardReset pulses the RST pin high, low, high. It is a no-op when no reset
// pin was provided.
func (d *Dev) HardReset(delay Delay) error {
	if d.released {
		return ErrReleased
	}
	if d.rst == nil {
		return nil
	}
	delay = orSleep(delay)
	for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := d.rst.Out(l); err != nil {
			return &PinError{Level: l, Err: err}
		}
		// Make sure the edge is registered.
		delay.Sleep(resetPulse)
	}
	return nil
}

// Orientation returns the orientation last written to the controller.
func (d *Dev) Orientation() Orientation {
	return d.orientation
}

// SetOrientation sets the memory access order.
func (d *Dev) SetOrientation(o Orientation) error {
	if err := d.send(MADCTL, byte(o)); err != nil {
		return err
	}
	d.orientation = o
	return nil
}

// SetPixel sets the RGB565 color of the pixel at (x, y).
//
// Coordinates are not checked against the panel size.
func (d *Dev) SetPixel(x, y uint16, color uint16) error {
	if err := d.setAddressWindow(x, y, x, y); err != nil {
		return err
	}
	if err := d.writeCommand(RAMWR); err != nil {
		return err
	}
	return d.writeData(RAMWR, binary.BigEndian.AppendUint16(nil, color))
}

// SetPixels fills the inclusive rectangle [sx,ex]x[sy,ey] with colors in row
// major order.
//
// colors is consumed lazily and sent as it is produced, so memory use does not
// depend on the size of the rectangle. The number of colors is not checked:
// the controller keeps auto-incrementing its write pointer within the window.
func (d *Dev) SetPixels(sx, sy, ex, ey uint16, colors iter.Seq[uint16]) error {
	if err := d.setAddressWindow(sx, sy, ex, ey); err != nil {
		return err
	}
	if err := d.writeCommand(RAMWR); err != nil {
		return err
	}
	return d.stream(colors)
}

func (d *Dev) stream(colors iter.Seq[uint16]) error {
	buf := make([]byte, 0, streamChunk)
	for c := range colors {
		buf = binary.BigEndian.AppendUint16(buf, c)
		if len(buf) == cap(buf) {
			if err := d.writeData(RAMWR, buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	if len(buf) == 0 {
		return nil
	}
	return d.writeData(RAMWR, buf)
}

// SetScrollOffset sets the first frame memory line shown at the top of the
// scroll area.
func (d *Dev) SetScrollOffset(offset uint16) error {
	return d.send(VSCAD, binary.BigEndian.AppendUint16(nil, offset)...)
}

// SetScrollArea defines the vertical scroll area as top fixed lines, visible
// scrolling lines and bottom fixed lines. They should add up to 320.
func (d *Dev) SetScrollArea(top, visible, bottom uint16) error {
	var b []byte
	b = binary.BigEndian.AppendUint16(b, top)
	b = binary.BigEndian.AppendUint16(b, visible)
	b = binary.BigEndian.AppendUint16(b, bottom)
	return d.send(VSCRDEF, b...)
}

// SetTearingEffect configures the tearing effect output line.
func (d *Dev) SetTearingEffect(te TearingEffect) error {
	switch te {
	case TearingEffectOff:
		return d.writeCommand(TEOFF)
	case TearingEffectVertical:
		return d.send(TEON, 0)
	case TearingEffectHorizontalAndVertical:
		return d.send(TEON, 1)
	}
	return fmt.Errorf("st7789: unknown tearing effect %d", te)
}

// Invert turns display color inversion on or off.
func (d *Dev) Invert(invert bool) error {
	if invert {
		return d.writeCommand(INVON)
	}
	return d.writeCommand(INVOFF)
}

// Halt turns the display off and puts the controller to sleep.
//
// It implements conn.Resource. Init wakes the display up again.
func (d *Dev) Halt() error {
	if err := d.writeCommand(DISPOFF); err != nil {
		return err
	}
	return d.writeCommand(SLPIN)
}

// Release hands the bus and the reset pin back to the caller. The Dev must
// not be used afterward; every operation returns ErrReleased.
func (d *Dev) Release() (Bus, gpio.PinOut) {
	bus, rst := d.bus, d.rst
	d.bus, d.rst = nil, nil
	d.released = true
	return bus, rst
}

// Size returns the panel size in pixels.
func (d *Dev) Size() (w, h int) {
	return d.w, d.h
}

func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%dx%d}", d.w, d.h)
}

// setAddressWindow selects the rectangle the next RAMWR fills. It must be
// sent before every RAMWR.
func (d *Dev) setAddressWindow(sx, sy, ex, ey uint16) error {
	if err := d.send(CASET, be(sx, ex)...); err != nil {
		return err
	}
	return d.send(RASET, be(sy, ey)...)
}

// send writes one command followed by its data, if any.
func (d *Dev) send(i Instruction, data ...byte) error {
	if err := d.writeCommand(i); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return d.writeData(i, data)
}

func (d *Dev) writeCommand(i Instruction) error {
	if d.released {
		return ErrReleased
	}
	if err := d.bus.WriteCommands([]byte{byte(i)}); err != nil {
		return transportError(i, err)
	}
	return nil
}

// writeData sends the payload of command i.
func (d *Dev) writeData(i Instruction, data []byte) error {
	if d.released {
		return ErrReleased
	}
	if err := d.bus.WriteData(data); err != nil {
		return transportError(i, err)
	}
	return nil
}

// pinOrNil returns nil for pins that cannot be driven.
func pinOrNil(p gpio.PinOut) gpio.PinOut {
	if p == nil {
		return nil
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	if v.Type().Comparable() && p == gpio.INVALID {
		return nil
	}
	return p
}

func orSleep(delay Delay) Delay {
	if delay == nil {
		return DelayFunc(time.Sleep)
	}
	return delay
}

func be(a, b uint16) []byte {
	return []byte{byte(a >> 8), byte(a), byte(b >> 8), byte(b)}
}
