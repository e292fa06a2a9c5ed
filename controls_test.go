package mt9v032

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestQueryControl(t *testing.T) {
	sensor, _, _ := newTestSensor(t, DefaultConfig())

	desc, err := sensor.QueryControl(ControlExposure)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, desc.Kind, test.ShouldEqual, ControlInteger)
	test.That(t, desc.Minimum, test.ShouldEqual, 2)
	test.That(t, desc.Maximum, test.ShouldEqual, 480)
	test.That(t, desc.Default, test.ShouldEqual, 480)

	desc, err = sensor.QueryControl(ControlGain)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, desc.Minimum, test.ShouldEqual, 16)
	test.That(t, desc.Maximum, test.ShouldEqual, 64)
	test.That(t, desc.Default, test.ShouldEqual, 16)

	for _, id := range []ControlID{ControlVFlip, ControlHFlip, ControlAutoExposure, ControlAutoGain} {
		desc, err = sensor.QueryControl(id)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, desc.Kind, test.ShouldEqual, ControlBoolean)
	}

	_, err = sensor.QueryControl(ControlID("sharpness"))
	var unknownErr *UnknownControlError
	test.That(t, errors.As(err, &unknownErr), test.ShouldBeTrue)
	test.That(t, unknownErr.Control, test.ShouldEqual, ControlID("sharpness"))
}

func TestSetControlFlips(t *testing.T) {
	sensor, chip, _ := poweredTestSensor(t, DefaultConfig())
	ctx := context.Background()

	for _, tc := range []struct {
		id  ControlID
		bit uint16
	}{
		{ControlVFlip, bitVerticalFlip},
		{ControlHFlip, bitHorizontalFlip},
	} {
		t.Run(string(tc.id), func(t *testing.T) {
			test.That(t, sensor.SetControl(ctx, tc.id, 1), test.ShouldBeNil)
			test.That(t, chip.registers[regReadMode]&tc.bit, test.ShouldNotEqual, 0)
			value, err := sensor.Control(tc.id)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, value, test.ShouldEqual, 1)

			test.That(t, sensor.SetControl(ctx, tc.id, 0), test.ShouldBeNil)
			test.That(t, chip.registers[regReadMode]&tc.bit, test.ShouldEqual, 0)
			value, err = sensor.Control(tc.id)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, value, test.ShouldEqual, 0)
		})
	}
}

func TestSetControlExposure(t *testing.T) {
	sensor, chip, _ := poweredTestSensor(t, DefaultConfig())
	ctx := context.Background()

	// AEC is on after configure; a manual exposure set turns it off first
	test.That(t, sensor.aecAgc&bitAutoExposure, test.ShouldNotEqual, 0)
	test.That(t, sensor.SetControl(ctx, ControlExposure, 240), test.ShouldBeNil)
	test.That(t, sensor.aecAgc&bitAutoExposure, test.ShouldEqual, 0)
	test.That(t, chip.registers[regAECAGCEnable]&bitAutoExposure, test.ShouldEqual, 0)
	// auto gain is untouched
	test.That(t, sensor.aecAgc&bitAutoGain, test.ShouldNotEqual, 0)

	test.That(t, chip.registers[regTotalShutterWidth], test.ShouldEqual, uint16(240))
	value, err := sensor.Control(ControlExposure)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, value, test.ShouldEqual, 240)

	t.Run("out of range", func(t *testing.T) {
		before := len(chip.writes)
		for _, bad := range []int32{1, 481, -5} {
			err := sensor.SetControl(ctx, ControlExposure, bad)
			var rangeErr *RangeError
			test.That(t, errors.As(err, &rangeErr), test.ShouldBeTrue)
			test.That(t, rangeErr.Value, test.ShouldEqual, bad)
			test.That(t, rangeErr.Min, test.ShouldEqual, 2)
			test.That(t, rangeErr.Max, test.ShouldEqual, 480)
		}
		// no hardware traffic and the committed value is intact
		test.That(t, chip.writes, test.ShouldHaveLength, before)
		value, err := sensor.Control(ControlExposure)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, value, test.ShouldEqual, 240)
	})
}

func TestSetControlGain(t *testing.T) {
	sensor, chip, _ := poweredTestSensor(t, DefaultConfig())
	ctx := context.Background()

	test.That(t, sensor.SetControl(ctx, ControlGain, 20), test.ShouldBeNil)
	// the manual set disabled AGC but left AEC alone
	test.That(t, sensor.aecAgc&bitAutoGain, test.ShouldEqual, 0)
	test.That(t, sensor.aecAgc&bitAutoExposure, test.ShouldNotEqual, 0)
	test.That(t, chip.registers[regAnalogGain], test.ShouldEqual, uint16(20))

	t.Run("odd codes quantize from 32 up", func(t *testing.T) {
		test.That(t, sensor.SetControl(ctx, ControlGain, 31), test.ShouldBeNil)
		test.That(t, chip.registers[regAnalogGain], test.ShouldEqual, uint16(31))

		test.That(t, sensor.SetControl(ctx, ControlGain, 33), test.ShouldBeNil)
		test.That(t, chip.registers[regAnalogGain], test.ShouldEqual, uint16(32))
		value, err := sensor.Control(ControlGain)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, value, test.ShouldEqual, 32)

		test.That(t, sensor.SetControl(ctx, ControlGain, 64), test.ShouldBeNil)
		test.That(t, chip.registers[regAnalogGain], test.ShouldEqual, uint16(64))
	})

	t.Run("out of range", func(t *testing.T) {
		before := len(chip.writes)
		err := sensor.SetControl(ctx, ControlGain, 65)
		var rangeErr *RangeError
		test.That(t, errors.As(err, &rangeErr), test.ShouldBeTrue)
		test.That(t, chip.writes, test.ShouldHaveLength, before)
		value, err := sensor.Control(ControlGain)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, value, test.ShouldEqual, 64)
	})
}

func TestSetControlAutoToggles(t *testing.T) {
	sensor, chip, _ := poweredTestSensor(t, DefaultConfig())
	ctx := context.Background()

	test.That(t, sensor.SetControl(ctx, ControlAutoExposure, 0), test.ShouldBeNil)
	test.That(t, chip.registers[regAECAGCEnable]&bitAutoExposure, test.ShouldEqual, 0)
	test.That(t, chip.registers[regAECAGCEnable]&bitAutoGain, test.ShouldNotEqual, 0)

	// toggling the loop never rewrites the shutter or gain registers
	shutterWrites := chip.writesTo(regTotalShutterWidth)
	gainWrites := chip.writesTo(regAnalogGain)
	test.That(t, sensor.SetControl(ctx, ControlAutoExposure, 1), test.ShouldBeNil)
	test.That(t, sensor.SetControl(ctx, ControlAutoGain, 0), test.ShouldBeNil)
	test.That(t, sensor.SetControl(ctx, ControlAutoGain, 1), test.ShouldBeNil)
	test.That(t, chip.writesTo(regTotalShutterWidth), test.ShouldEqual, shutterWrites)
	test.That(t, chip.writesTo(regAnalogGain), test.ShouldEqual, gainWrites)

	value, err := sensor.Control(ControlAutoExposure)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, value, test.ShouldEqual, 1)
	value, err = sensor.Control(ControlAutoGain)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, value, test.ShouldEqual, 1)
}

func TestSetControlUnknown(t *testing.T) {
	sensor, chip, _ := poweredTestSensor(t, DefaultConfig())
	before := len(chip.writes)

	err := sensor.SetControl(context.Background(), ControlID("brightness"), 1)
	var unknownErr *UnknownControlError
	test.That(t, errors.As(err, &unknownErr), test.ShouldBeTrue)
	test.That(t, chip.writes, test.ShouldHaveLength, before)

	_, err = sensor.Control(ControlID("brightness"))
	test.That(t, errors.As(err, &unknownErr), test.ShouldBeTrue)
}

func TestControlsPersistAcrossPowerCycle(t *testing.T) {
	sensor, chip, _ := poweredTestSensor(t, DefaultConfig())
	ctx := context.Background()

	test.That(t, sensor.SetControl(ctx, ControlVFlip, 1), test.ShouldBeNil)
	test.That(t, sensor.SetControl(ctx, ControlAutoGain, 0), test.ShouldBeNil)

	test.That(t, sensor.SetPowerState(ctx, PowerStandby), test.ShouldBeNil)
	test.That(t, sensor.SetPowerState(ctx, PowerOn), test.ShouldBeNil)

	// the reconfiguration re-applied the user's last selections
	test.That(t, chip.registers[regReadMode]&bitVerticalFlip, test.ShouldNotEqual, 0)
	test.That(t, chip.registers[regAECAGCEnable]&bitAutoGain, test.ShouldEqual, 0)
	value, err := sensor.Control(ControlVFlip)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, value, test.ShouldEqual, 1)
	value, err = sensor.Control(ControlAutoGain)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, value, test.ShouldEqual, 0)
}

func TestSetControlTransportFailure(t *testing.T) {
	sensor, chip, _ := poweredTestSensor(t, DefaultConfig())
	ctx := context.Background()

	chip.writeErr = errors.New("bus stuck")
	err := sensor.SetControl(ctx, ControlVFlip, 1)
	var transportErr *TransportError
	test.That(t, errors.As(err, &transportErr), test.ShouldBeTrue)

	// the mirror still reflects the hardware, so the control reads back off
	chip.writeErr = nil
	value, err := sensor.Control(ControlVFlip)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, value, test.ShouldEqual, 0)
}
