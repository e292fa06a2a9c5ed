//go:build linux

package buses

import (
	"context"

	i2clib "github.com/d2r2/go-i2c"
	"github.com/pkg/errors"
)

type i2cBus struct {
	number int
}

// NewI2cBus returns an I2C backed by /dev/i2c-<number>.
func NewI2cBus(number int) I2C {
	return &i2cBus{number: number}
}

func (bus *i2cBus) OpenHandle(addr byte) (I2CHandle, error) {
	handle, err := i2clib.NewI2C(addr, bus.number)
	if err != nil {
		return nil, err
	}
	return &linuxI2cHandle{internal: handle}, nil
}

// We want to use the i2c.I2C struct, but we also want it to conform to the
// I2CHandle interface, and we cannot define new functions on non-local types.
// So, we create a local struct that contains the non-local one, upon which we
// can define the extra functions.
type linuxI2cHandle struct {
	internal *i2clib.I2C
}

func (h *linuxI2cHandle) Write(ctx context.Context, tx []byte) error {
	bytesWritten, err := h.internal.WriteBytes(tx)
	if err != nil {
		return err
	}
	if bytesWritten != len(tx) {
		return errors.Errorf("not all bytes were written to I2C address %d on bus %d: had %d, wrote %d",
			h.internal.GetAddr(), h.internal.GetBus(), len(tx), bytesWritten)
	}
	return nil
}

func (h *linuxI2cHandle) Read(ctx context.Context, count int) ([]byte, error) {
	buffer := make([]byte, count)
	bytesRead, err := h.internal.ReadBytes(buffer)
	if err != nil {
		return nil, err
	}
	if bytesRead != count {
		return nil, errors.Errorf("not enough bytes were read from I2C address %d on bus %d: needed %d, got %d",
			h.internal.GetAddr(), h.internal.GetBus(), count, bytesRead)
	}
	return buffer, nil
}

func (h *linuxI2cHandle) ReadByteData(ctx context.Context, register byte) (byte, error) {
	return h.internal.ReadRegU8(register)
}

func (h *linuxI2cHandle) WriteByteData(ctx context.Context, register, data byte) error {
	return h.internal.WriteRegU8(register, data)
}

func (h *linuxI2cHandle) ReadWordData(ctx context.Context, register byte) (uint16, error) {
	return h.internal.ReadRegU16BE(register)
}

func (h *linuxI2cHandle) WriteWordData(ctx context.Context, register byte, data uint16) error {
	return h.internal.WriteRegU16BE(register, data)
}

func (h *linuxI2cHandle) ReadBlockData(ctx context.Context, register byte, numBytes uint8) ([]byte, error) {
	data, _, err := h.internal.ReadRegBytes(register, int(numBytes))
	return data, err
}

func (h *linuxI2cHandle) WriteBlockData(ctx context.Context, register byte, data []byte) error {
	return h.Write(ctx, append([]byte{register}, data...))
}

func (h *linuxI2cHandle) Close() error {
	return h.internal.Close()
}
