package st7789

import "fmt"

// Instruction is a one byte ST7789 command opcode.
type Instruction byte

// ST7789 instructions.
const (
	SWRESET  Instruction = 0x01 // Software reset
	SLPIN    Instruction = 0x10 // Sleep in
	SLPOUT   Instruction = 0x11 // Sleep out
	INVOFF   Instruction = 0x20 // Display inversion off
	INVON    Instruction = 0x21 // Display inversion on
	DISPOFF  Instruction = 0x28 // Display off
	DISPON   Instruction = 0x29 // Display on
	CASET    Instruction = 0x2A // Column address set
	RASET    Instruction = 0x2B // Row address set
	RAMWR    Instruction = 0x2C // Memory write
	VSCRDEF  Instruction = 0x33 // Vertical scrolling definition
	TEOFF    Instruction = 0x34 // Tearing effect line off
	TEON     Instruction = 0x35 // Tearing effect line on
	MADCTL   Instruction = 0x36 // Memory data access control
	VSCAD    Instruction = 0x37 // Vertical scroll start address
	COLMOD   Instruction = 0x3A // Interface pixel format
	FRMCTR2  Instruction = 0xB2 // Porch setting
	GCTRL    Instruction = 0xB7 // Gate control
	VCOMS    Instruction = 0xBB // VCOM setting
	LCMCTRL  Instruction = 0xC0 // LCM control
	VDVVRHEN Instruction = 0xC2 // VDV and VRH command enable
	VRHS     Instruction = 0xC3 // VRH set
	VDVS     Instruction = 0xC4 // VDV set
	FRCTRL2  Instruction = 0xC6 // Frame rate control in normal mode
	PWCTRL1  Instruction = 0xD0 // Power control 1
	GMCTRP1  Instruction = 0xE0 // Positive voltage gamma control
	GMCTRN1  Instruction = 0xE1 // Negative voltage gamma control
)

var instructionNames = map[Instruction]string{
	SWRESET:  "SWRESET",
	SLPIN:    "SLPIN",
	SLPOUT:   "SLPOUT",
	INVOFF:   "INVOFF",
	INVON:    "INVON",
	DISPOFF:  "DISPOFF",
	DISPON:   "DISPON",
	CASET:    "CASET",
	RASET:    "RASET",
	RAMWR:    "RAMWR",
	VSCRDEF:  "VSCRDEF",
	TEOFF:    "TEOFF",
	TEON:     "TEON",
	MADCTL:   "MADCTL",
	VSCAD:    "VSCAD",
	COLMOD:   "COLMOD",
	FRMCTR2:  "FRMCTR2",
	GCTRL:    "GCTRL",
	VCOMS:    "VCOMS",
	LCMCTRL:  "LCMCTRL",
	VDVVRHEN: "VDVVRHEN",
	VRHS:     "VRHS",
	VDVS:     "VDVS",
	FRCTRL2:  "FRCTRL2",
	PWCTRL1:  "PWCTRL1",
	GMCTRP1:  "GMCTRP1",
	GMCTRN1:  "GMCTRN1",
}

func (i Instruction) String() string {
	if s, ok := instructionNames[i]; ok {
		return s
	}
	return fmt.Sprintf("Instruction(0x%02X)", byte(i))
}
