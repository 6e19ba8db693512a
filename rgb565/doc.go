// Package rgb565 provides the 16-bit RGB565 color format native to the ST7789
// display controller.
//
// Each pixel packs 5 bits of red, 6 bits of green and 5 bits of blue:
//
//	bit: 15 14 13 12 11 10 9 8 7 6 5 4 3 2 1 0
//	     R  R  R  R  R  G  G G G G G B B B B B
//
// Image stores pixels big-endian, which is the order the controller expects on
// the wire, so a row of an Image can be sent to the display as is.
//
// Example usage:
//
//	img := rgb565.NewImage(image.Rect(0, 0, 320, 240))
//	img.SetRGB565(10, 20, rgb565.FromRGB(0xFF, 0x80, 0x00))
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package rgb565
