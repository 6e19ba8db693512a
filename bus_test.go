package st7789

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/st7789/bustest"
)

// fakePort is a spi.Port recording every transaction.
type fakePort struct {
	rec  conntest.Record
	err  error
	hz   physic.Frequency
	mode spi.Mode
	bits int
}

func (p *fakePort) String() string { return "fake" }

func (p *fakePort) LimitSpeed(f physic.Frequency) error { return nil }

func (p *fakePort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.hz, p.mode, p.bits = f, mode, bits
	return &fakeConn{&p.rec}, nil
}

type fakeConn struct {
	*conntest.Record
}

func (c *fakeConn) TxPackets(p []spi.Packet) error {
	return errors.New("not supported")
}

// limitedConn reports a maximum transaction size.
type limitedConn struct {
	*conntest.Record
	max int
}

func (c *limitedConn) MaxTxSize() int { return c.max }

func TestSPIBusDC(t *testing.T) {
	rec := &conntest.Record{}
	dc := &gpiotest.Pin{N: "DC"}
	b := NewSPIBus(rec, dc)

	if err := b.WriteCommands([]byte{0x2C}); err != nil {
		t.Fatal(err)
	}
	if dc.L != gpio.Low {
		t.Errorf("DC = %s after a command, want Low", dc.L)
	}
	if err := b.WriteData([]byte{0x12, 0x34}); err != nil {
		t.Fatal(err)
	}
	if dc.L != gpio.High {
		t.Errorf("DC = %s after data, want High", dc.L)
	}

	want := [][]byte{{0x2C}, {0x12, 0x34}}
	if len(rec.Ops) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(rec.Ops), len(want))
	}
	for i := range want {
		if !bytes.Equal(rec.Ops[i].W, want[i]) {
			t.Errorf("transaction %d = % X, want % X", i, rec.Ops[i].W, want[i])
		}
	}
}

func TestSPIBusChunking(t *testing.T) {
	tests := []struct {
		name   string
		max    int
		size   int
		chunks []int
	}{
		{"fits", 16, 10, []int{10}},
		{"exact", 4, 8, []int{4, 4}},
		{"remainder", 4, 10, []int{4, 4, 2}},
		{"default limit", 0, 5000, []int{4096, 904}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &conntest.Record{}
			b := NewSPIBus(&limitedConn{Record: rec, max: tt.max}, &gpiotest.Pin{N: "DC"})

			data := make([]byte, tt.size)
			for i := range data {
				data[i] = byte(i)
			}
			if err := b.WriteData(data); err != nil {
				t.Fatal(err)
			}

			if len(rec.Ops) != len(tt.chunks) {
				t.Fatalf("got %d transactions, want %d", len(rec.Ops), len(tt.chunks))
			}
			var got []byte
			for i, op := range rec.Ops {
				if len(op.W) != tt.chunks[i] {
					t.Errorf("chunk %d is %d bytes, want %d", i, len(op.W), tt.chunks[i])
				}
				got = append(got, op.W...)
			}
			if !bytes.Equal(got, data) {
				t.Error("chunks do not reassemble the data")
			}
		})
	}
}

func TestSPIBusDCError(t *testing.T) {
	boom := errors.New("boom")
	dc := (&bustest.Record{}).Pin("DC")
	dc.Err = boom
	rec := &conntest.Record{}
	b := NewSPIBus(rec, dc)

	if err := b.WriteCommands([]byte{0x01}); !errors.Is(err, boom) {
		t.Errorf("WriteCommands() = %v, want %v", err, boom)
	}
	if err := b.WriteData([]byte{0x01}); !errors.Is(err, boom) {
		t.Errorf("WriteData() = %v, want %v", err, boom)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("bytes sent with a broken DC pin: %+v", rec.Ops)
	}

	// Through the driver both kinds of bus failure are transport errors.
	dev := New(b, nil, 320, 240)
	if err := dev.SetPixel(0, 0, 0); !errors.Is(err, ErrTransport) || !errors.Is(err, boom) {
		t.Errorf("SetPixel() = %v, want ErrTransport wrapping %v", err, boom)
	}
}

func TestNewSPI(t *testing.T) {
	p := &fakePort{}
	dc := &gpiotest.Pin{N: "DC"}
	dev, err := NewSPI(p, dc, nil)
	if err != nil {
		t.Fatalf("NewSPI() = %v", err)
	}
	if p.hz != 60*physic.MegaHertz || p.mode != spi.Mode0 || p.bits != 8 {
		t.Errorf("Connect(%s, %v, %d), want (60MHz, Mode0, 8)", p.hz, p.mode, p.bits)
	}
	if w, h := dev.Size(); w != 320 || h != 240 {
		t.Errorf("Size() = %dx%d, want 320x240", w, h)
	}
	if len(p.rec.Ops) != 0 {
		t.Errorf("NewSPI sent %d transactions, want none", len(p.rec.Ops))
	}

	if err := dev.Init(DelayFunc(func(time.Duration) {})); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	// SWRESET + 13 commands with data + SLPOUT + DISPON.
	if len(p.rec.Ops) != initTransactions {
		t.Errorf("Init sent %d transactions, want %d", len(p.rec.Ops), initTransactions)
	}
	if got := p.rec.Ops[0].W; !bytes.Equal(got, []byte{0x01}) {
		t.Errorf("first transaction = % X, want 01", got)
	}
}

func TestNewSPIOpts(t *testing.T) {
	dc := &gpiotest.Pin{N: "DC"}
	tests := []struct {
		name    string
		opts    *Opts
		wantErr bool
	}{
		{"nil options (uses defaults)", nil, false},
		{"240x240", &Opts{W: 240, H: 240}, false},
		{"240x320", &Opts{W: 240, H: 320}, false},
		{"custom clock", &Opts{W: 320, H: 240, Hz: 10 * physic.MegaHertz}, false},
		{"width zero", &Opts{W: 0, H: 240}, true},
		{"width too large", &Opts{W: 321, H: 240}, true},
		{"height zero", &Opts{W: 320, H: 0}, true},
		{"height too large", &Opts{W: 240, H: 400}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSPI(&fakePort{}, dc, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSPI() = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestNewSPIErrors(t *testing.T) {
	if _, err := NewSPI(&fakePort{}, nil, nil); err == nil {
		t.Error("NewSPI accepted a nil DC pin")
	}
	if _, err := NewSPI(&fakePort{}, gpio.INVALID, nil); err == nil {
		t.Error("NewSPI accepted gpio.INVALID as DC pin")
	}
	if _, err := NewSPI(&fakePort{}, (*gpiotest.Pin)(nil), nil); err == nil {
		t.Error("NewSPI accepted a nil pointer as DC pin")
	}
	boom := errors.New("boom")
	if _, err := NewSPI(&fakePort{err: boom}, &gpiotest.Pin{N: "DC"}, nil); !errors.Is(err, boom) {
		t.Errorf("NewSPI() = %v, want %v", err, boom)
	}
}

func TestNewSPIResetPin(t *testing.T) {
	rec := &bustest.Record{}
	rst := rec.Pin("RST")
	p := &fakePort{}
	dev, err := NewSPI(p, &gpiotest.Pin{N: "DC"}, &Opts{W: 320, H: 240, RST: rst})
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.HardReset(rec); err != nil {
		t.Fatal(err)
	}
	if got := rec.Levels(); len(got) != 3 {
		t.Errorf("reset levels = %v, want a 3 step pulse", got)
	}
	_, pin := dev.Release()
	if pin != gpio.PinOut(rst) {
		t.Error("Release did not return the reset pin")
	}
}
