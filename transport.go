package mt9v032

import (
	"context"
	"encoding/binary"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	opRead  = "read"
	opWrite = "write"
)

// Registers are 16-bit words transmitted big-endian on the wire, so block
// transfers are used instead of the bus's little-endian word verbs.

func (s *Sensor) readRegister(ctx context.Context, register byte) (uint16, error) {
	handle, err := s.bus.OpenHandle(s.addr)
	if err != nil {
		return 0, &TransportError{Op: opRead, Register: register, Err: err}
	}
	buf, err := handle.ReadBlockData(ctx, register, 2)
	if err != nil {
		return 0, &TransportError{Op: opRead, Register: register, Err: multierr.Combine(err, handle.Close())}
	}
	if err := handle.Close(); err != nil {
		return 0, &TransportError{Op: opRead, Register: register, Err: err}
	}
	if len(buf) != 2 {
		return 0, &TransportError{Op: opRead, Register: register, Err: errors.Errorf("expected 2 bytes, got %d", len(buf))}
	}
	return binary.BigEndian.Uint16(buf), nil
}

func (s *Sensor) writeRegister(ctx context.Context, register byte, value uint16) error {
	handle, err := s.bus.OpenHandle(s.addr)
	if err != nil {
		return &TransportError{Op: opWrite, Register: register, Err: err}
	}
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], value)
	if err := handle.WriteBlockData(ctx, register, buf[:]); err != nil {
		return &TransportError{Op: opWrite, Register: register, Err: multierr.Combine(err, handle.Close())}
	}
	if err := handle.Close(); err != nil {
		return &TransportError{Op: opWrite, Register: register, Err: err}
	}
	return nil
}
