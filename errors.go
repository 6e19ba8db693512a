package st7789

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

var (
	// ErrTransport is matched (errors.Is) by every error caused by a failed
	// command or data transmission on the bus.
	ErrTransport = errors.New("display transport error")

	// ErrReleased is returned by every operation on a Dev after Release.
	ErrReleased = errors.New("st7789: released")
)

// PinError reports a failure to drive the reset pin.
type PinError struct {
	Level gpio.Level // level the pin was being driven to
	Err   error
}

func (e *PinError) Error() string {
	return fmt.Sprintf("st7789: failed to drive RST %s: %v", e.Level, e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}

// transportError tags a bus failure with the instruction being issued.
func transportError(i Instruction, err error) error {
	return fmt.Errorf("st7789: %s: %w: %w", i, ErrTransport, err)
}
