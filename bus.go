package st7789

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Bus is a command/data distinguishing transport to the controller.
//
// Each call is one transaction; the transport is responsible for signaling
// whether the bytes are opcodes or payload (usually with a DC line).
type Bus interface {
	WriteCommands(cmds []byte) error
	WriteData(data []byte) error
}

// Delay blocks the caller for at least d.
//
// clock.Clock from github.com/benbjohnson/clock satisfies it.
type Delay interface {
	Sleep(d time.Duration)
}

// DelayFunc adapts a function such as time.Sleep to Delay.
type DelayFunc func(d time.Duration)

// Sleep calls f(d).
func (f DelayFunc) Sleep(d time.Duration) {
	f(d)
}

// SPIBus is a Bus over a 4-wire SPI connection with a separate DC pin.
type SPIBus struct {
	c  conn.Conn
	dc gpio.PinOut

	// maxTxSize is the largest single data transaction.
	maxTxSize int
}

// NewSPIBus returns a Bus sending over c. dc is driven low for commands and
// high for data.
func NewSPIBus(c conn.Conn, dc gpio.PinOut) *SPIBus {
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize <= 0 {
		maxTxSize = 4096
	}
	return &SPIBus{c: c, dc: dc, maxTxSize: maxTxSize}
}

// WriteCommands implements Bus.
func (b *SPIBus) WriteCommands(cmds []byte) error {
	if err := b.dc.Out(gpio.Low); err != nil {
		return err
	}
	return b.c.Tx(cmds, nil)
}

// WriteData implements Bus. Data larger than the connection limit is split
// into several transactions.
func (b *SPIBus) WriteData(data []byte) error {
	if err := b.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(data) != 0 {
		chunk := data
		if len(chunk) > b.maxTxSize {
			chunk = data[:b.maxTxSize]
		}
		if err := b.c.Tx(chunk, nil); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (b *SPIBus) String() string {
	return fmt.Sprintf("st7789.SPIBus{%s, DC:%s}", b.c, b.dc)
}

// Opts is the configuration for NewSPI.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 320, at most 320)
	H int // Height (default: 240, at most 320)

	// Optional hardware reset pin
	RST gpio.PinOut

	// SPI clock (default: 60MHz)
	Hz physic.Frequency
}

// DefaultOpts matches the Pimoroni Display HAT Mini.
var DefaultOpts = Opts{
	W:  320,
	H:  240,
	Hz: 60 * physic.MegaHertz,
}

// NewSPI connects to a ST7789 over SPI and returns a Dev owning the connection.
//
// The SPI port is configured for Mode0, 8-bit transfers. The display is not
// initialized; call Init before drawing.
//
// opts can be nil to use DefaultOpts.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if pinOrNil(dc) == nil {
		return nil, fmt.Errorf("st7789: a DC pin is required")
	}
	if opts.W <= 0 || opts.W > 320 {
		return nil, fmt.Errorf("st7789: width must be between 1 and 320, got %d", opts.W)
	}
	if opts.H <= 0 || opts.H > 320 {
		return nil, fmt.Errorf("st7789: height must be between 1 and 320, got %d", opts.H)
	}
	hz := opts.Hz
	if hz == 0 {
		hz = DefaultOpts.Hz
	}

	c, err := p.Connect(hz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("st7789: failed to connect SPI: %w", err)
	}
	return New(NewSPIBus(c, dc), opts.RST, opts.W, opts.H), nil
}
