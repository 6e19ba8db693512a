package st7789

import "testing"

func TestInstructionOpcodes(t *testing.T) {
	tests := []struct {
		i    Instruction
		want byte
	}{
		{SWRESET, 0x01},
		{SLPOUT, 0x11},
		{INVON, 0x21},
		{DISPON, 0x29},
		{CASET, 0x2A},
		{RASET, 0x2B},
		{RAMWR, 0x2C},
		{MADCTL, 0x36},
		{COLMOD, 0x3A},
		{FRMCTR2, 0xB2},
		{GCTRL, 0xB7},
		{VCOMS, 0xBB},
		{LCMCTRL, 0xC0},
		{VDVVRHEN, 0xC2},
		{VRHS, 0xC3},
		{VDVS, 0xC4},
		{FRCTRL2, 0xC6},
		{PWCTRL1, 0xD0},
		{GMCTRP1, 0xE0},
		{GMCTRN1, 0xE1},
		{TEOFF, 0x34},
		{TEON, 0x35},
		{VSCAD, 0x37},
	}

	for _, tt := range tests {
		t.Run(tt.i.String(), func(t *testing.T) {
			if byte(tt.i) != tt.want {
				t.Errorf("%s = %#02x, want %#02x", tt.i, byte(tt.i), tt.want)
			}
		})
	}
}

func TestInstructionString(t *testing.T) {
	if got := RAMWR.String(); got != "RAMWR" {
		t.Errorf("RAMWR.String() = %q", got)
	}
	if got := Instruction(0xFF).String(); got != "Instruction(0xFF)" {
		t.Errorf("String() = %q", got)
	}
}
