package mt9v032

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrIndexOutOfRange indicates an enumeration index beyond the list length.
var ErrIndexOutOfRange = errors.New("enumeration index out of range")

// ErrUnknownEncoding indicates a pixel encoding the sensor variant does not
// support.
var ErrUnknownEncoding = errors.New("unsupported pixel encoding")

// TransportError indicates a register read or write failed on the bus. The
// driver never retries on its own; callers decide whether to retry, abort, or
// surface the failure.
type TransportError struct {
	Op       string // "read" or "write"
	Register byte
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("i2c %s of register 0x%02X failed: %v", e.Op, e.Register, e.Err)
}

// Unwrap returns the underlying bus error.
func (e *TransportError) Unwrap() error { return e.Err }

// DetectionError indicates the chip identity was unreadable or not one of the
// known version codes. It aborts a power-on transition and leaves the sensor
// in its prior state.
type DetectionError struct {
	Version uint16
	Err     error
}

func (e *DetectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chip version unreadable: %v", e.Err)
	}
	return fmt.Sprintf("chip version mismatch (0x%04X)", e.Version)
}

// Unwrap returns the underlying read error, if any.
func (e *DetectionError) Unwrap() error { return e.Err }

// RangeError indicates a control set with a value outside the control's
// declared bounds. No hardware write is issued.
type RangeError struct {
	Control  ControlID
	Value    int32
	Min, Max int32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("value %d for control %q out of range [%d, %d]", e.Value, e.Control, e.Min, e.Max)
}

// UnknownControlError indicates a control identifier not in the catalog.
type UnknownControlError struct {
	Control ControlID
}

func (e *UnknownControlError) Error() string {
	return fmt.Sprintf("unknown control %q", e.Control)
}

// PowerSequenceError indicates a power-state transition failed to sequence:
// a platform clock or power callback failed, or the quiesce wait before
// cutting the clock was interrupted. After a failed power callback the pixel
// clock is forced off before this is surfaced.
type PowerSequenceError struct {
	State PowerState
	Err   error
}

func (e *PowerSequenceError) Error() string {
	return fmt.Sprintf("unable to sequence power state %v: %v", e.State, e.Err)
}

// Unwrap returns the underlying platform error.
func (e *PowerSequenceError) Unwrap() error { return e.Err }
