package bustest

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
)

func TestRecordTimeline(t *testing.T) {
	r := &Record{}
	pin := r.Pin("RST")

	if err := pin.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	r.Sleep(time.Millisecond)
	if err := r.WriteCommands([]byte{0x2A}); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteData([]byte{0x00, 0x01}); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteData([]byte{0x02}); err != nil {
		t.Fatal(err)
	}

	kinds := []Kind{Pin, Sleep, Command, Data, Data}
	if len(r.Ops) != len(kinds) {
		t.Fatalf("got %d ops, want %d", len(r.Ops), len(kinds))
	}
	for i, k := range kinds {
		if r.Ops[i].Kind != k {
			t.Errorf("op %d is %s, want %s", i, r.Ops[i].Kind, k)
		}
	}

	steps := r.Steps()
	if len(steps) != 1 || steps[0].Cmd != 0x2A || !bytes.Equal(steps[0].Data, []byte{0, 1, 2}) {
		t.Errorf("Steps() = %+v", steps)
	}
	if got := r.Levels(); len(got) != 1 || got[0] != gpio.Low {
		t.Errorf("Levels() = %v", got)
	}
	if pin.L != gpio.Low {
		t.Errorf("pin level = %s, want Low", pin.L)
	}
}

func TestRecordCopiesBuffers(t *testing.T) {
	r := &Record{}
	buf := []byte{1, 2}
	if err := r.WriteData(buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 9
	if r.Ops[0].B[0] != 1 {
		t.Error("recorded data aliases the caller's buffer")
	}
}

func TestRecordFailAt(t *testing.T) {
	r := &Record{FailAt: 2}
	if err := r.WriteCommands([]byte{1}); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteData([]byte{2}); !errors.Is(err, ErrInjected) {
		t.Fatalf("second transaction = %v, want ErrInjected", err)
	}
	if err := r.WriteCommands([]byte{3}); err != nil {
		t.Fatal(err)
	}
	if got := r.Commands(); !bytes.Equal(got, []byte{1, 3}) {
		t.Errorf("Commands() = %v, want [1 3]", got)
	}

	r.Reset()
	if len(r.Ops) != 0 {
		t.Error("Reset kept ops")
	}
	if err := r.WriteCommands([]byte{4}); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteCommands([]byte{5}); !errors.Is(err, ErrInjected) {
		t.Errorf("FailAt not rearmed by Reset: %v", err)
	}
}

func TestRecordPinError(t *testing.T) {
	r := &Record{}
	pin := r.Pin("RST")
	pin.Err = errors.New("boom")
	if err := pin.Out(gpio.High); err == nil {
		t.Fatal("Out() succeeded with Err set")
	}
	if len(r.Ops) != 0 {
		t.Errorf("failed transition recorded: %+v", r.Ops)
	}
}

func TestStepsDataBeforeCommand(t *testing.T) {
	r := &Record{}
	if err := r.WriteData([]byte{7}); err != nil {
		t.Fatal(err)
	}
	steps := r.Steps()
	if len(steps) != 1 || steps[0].Cmd != 0 || !bytes.Equal(steps[0].Data, []byte{7}) {
		t.Errorf("Steps() = %+v", steps)
	}
}
