// Package st7789 controls a ST7789 TFT LCD controller via SPI.
//
// The ST7789 drives panels of up to 240×320 pixels in 16-bit RGB565 color.
// This driver implements the display.Drawer interface from periph.io and
// writes every request straight to the controller: there is no frame buffer.
//
// # Hardware Connection
//
// Connect the display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select
//	RES         → Optional: GPIO for hardware reset
//	BL          → Optional: GPIO for the backlight (not handled by the driver)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"time"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/st7789"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		p, _ := spireg.Open("SPI0.1")
//		defer p.Close()
//
//		dev, _ := st7789.NewSPI(p, gpioreg.ByName("GPIO9"), &st7789.DefaultOpts)
//		dev.Init(st7789.DelayFunc(time.Sleep))
//		dev.SetOrientation(st7789.PortraitSwapped)
//
//		// Fill the screen with red.
//		dev.Clear(0xF800)
//	}
//
// # Other Buses
//
// Dev talks to the controller through the Bus interface: one call per command
// or data transaction. SPIBus implements it over any periph.io conn.Conn and
// a DC pin; other transports (parallel 8080, bit banged, remote) only need to
// provide WriteCommands and WriteData.
//
// # Hardware Reset Pin (Optional)
//
// When a reset pin is given, Init starts by pulsing it high, low, high with
// 10µs between edges. Without it the controller is only reset in software
// (SWRESET).
//
// # Drawing
//
// SetPixel and SetPixels are the primitives. SetPixels takes an iter.Seq so
// pixel data can be produced while it is sent:
//
//	dev.SetPixels(0, 0, 319, 239, func(yield func(uint16) bool) {
//		for i := range 320 * 240 {
//			if !yield(uint16(i)) {
//				return
//			}
//		}
//	})
//
// The number of colors is not checked against the window: the controller keeps
// writing at its internal address pointer, wrapping inside the window.
//
// Draw, Clear and FillRect build on SetPixels. DrawPixels merges horizontally
// adjacent single pixels into runs, which suits shape rasterizers emitting one
// point at a time. Displayer adapts a Dev to TinyGo's drivers.Displayer.
//
// # Orientation
//
// The four orientations select the MADCTL row/column exchange and mirroring
// bits. Orientation reports the value last written successfully.
//
// # Concurrency
//
// A Dev owns its bus and reset pin until Release. It is not safe for
// concurrent use; serialize calls externally when sharing it.
//
// # Datasheet
//
// http://www.newhavendisplay.com/appnotes/datasheets/LCDs/ST7789V.pdf
package st7789
