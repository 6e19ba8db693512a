// Package bustest is meant to be used to test drivers over a command/data bus.
//
// Record keeps a single timeline of bus transactions, reset pin transitions
// and delays so tests can assert on their relative order.
package bustest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// ErrInjected is returned by the transaction selected with Record.FailAt.
var ErrInjected = errors.New("bustest: injected failure")

// Kind is the kind of an Op.
type Kind int

// Op kinds.
const (
	Command Kind = iota
	Data
	Pin
	Sleep
)

func (k Kind) String() string {
	switch k {
	case Command:
		return "Command"
	case Data:
		return "Data"
	case Pin:
		return "Pin"
	case Sleep:
		return "Sleep"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Op is one recorded event.
type Op struct {
	Kind  Kind
	B     []byte        // Command and Data
	Level gpio.Level    // Pin
	D     time.Duration // Sleep
}

// Step is a command with all the data sent until the next command.
type Step struct {
	Cmd  byte
	Data []byte
}

// Record records bus transactions, pin levels and sleeps.
//
// It implements the WriteCommands/WriteData bus and the Sleep delay
// interfaces.
type Record struct {
	sync.Mutex
	Ops []Op

	// FailAt makes the FailAt-th bus transaction (1-based, commands and data
	// both count) fail with ErrInjected. The failed transaction is not
	// recorded; later ones are. 0 disables it.
	FailAt int

	tx int
}

// WriteCommands records cmds.
func (r *Record) WriteCommands(cmds []byte) error {
	return r.write(Command, cmds)
}

// WriteData records data.
func (r *Record) WriteData(data []byte) error {
	return r.write(Data, data)
}

func (r *Record) write(k Kind, b []byte) error {
	r.Lock()
	defer r.Unlock()
	r.tx++
	if r.FailAt != 0 && r.tx == r.FailAt {
		return ErrInjected
	}
	r.Ops = append(r.Ops, Op{Kind: k, B: append([]byte(nil), b...)})
	return nil
}

// Sleep records d without sleeping.
func (r *Record) Sleep(d time.Duration) {
	r.Lock()
	defer r.Unlock()
	r.Ops = append(r.Ops, Op{Kind: Sleep, D: d})
}

// Pin returns a gpio.PinOut recording its transitions in r.
func (r *Record) Pin(name string) *RecordPin {
	return &RecordPin{Pin: gpiotest.Pin{N: name, Num: -1}, r: r}
}

// Commands returns every command byte in order.
func (r *Record) Commands() []byte {
	r.Lock()
	defer r.Unlock()
	var out []byte
	for _, op := range r.Ops {
		if op.Kind == Command {
			out = append(out, op.B...)
		}
	}
	return out
}

// Steps groups the bus transactions by command. Data sent before the first
// command is reported with Cmd 0.
func (r *Record) Steps() []Step {
	r.Lock()
	defer r.Unlock()
	var out []Step
	for _, op := range r.Ops {
		switch op.Kind {
		case Command:
			for _, c := range op.B {
				out = append(out, Step{Cmd: c})
			}
		case Data:
			if len(out) == 0 {
				out = append(out, Step{})
			}
			last := &out[len(out)-1]
			last.Data = append(last.Data, op.B...)
		}
	}
	return out
}

// Levels returns the recorded pin levels in order.
func (r *Record) Levels() []gpio.Level {
	r.Lock()
	defer r.Unlock()
	var out []gpio.Level
	for _, op := range r.Ops {
		if op.Kind == Pin {
			out = append(out, op.Level)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Record) Reset() {
	r.Lock()
	defer r.Unlock()
	r.Ops = nil
	r.tx = 0
}

// RecordPin is a gpiotest.Pin that appends its output levels to a Record.
type RecordPin struct {
	gpiotest.Pin
	r *Record

	// Err, when set, is returned by Out and the level is not recorded.
	Err error
}

// Out implements gpio.PinOut.
func (p *RecordPin) Out(l gpio.Level) error {
	if p.Err != nil {
		return p.Err
	}
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	p.r.Lock()
	defer p.r.Unlock()
	p.r.Ops = append(p.r.Ops, Op{Kind: Pin, Level: l})
	return nil
}

var _ gpio.PinOut = &RecordPin{}
