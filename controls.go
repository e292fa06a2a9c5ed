package mt9v032

import (
	"context"
)

// ControlID names a user-adjustable control.
type ControlID string

// The controls the sensor exposes.
const (
	ControlVFlip        ControlID = "vertical_flip"
	ControlHFlip        ControlID = "horizontal_flip"
	ControlExposure     ControlID = "exposure"
	ControlGain         ControlID = "gain"
	ControlAutoExposure ControlID = "auto_exposure"
	ControlAutoGain     ControlID = "auto_gain"
)

// ControlKind distinguishes boolean switches from bounded integers.
type ControlKind int

// The control kinds.
const (
	ControlBoolean ControlKind = iota
	ControlInteger
)

// ControlDescriptor is a fixed catalog entry for one control.
type ControlDescriptor struct {
	ID      ControlID
	Kind    ControlKind
	Name    string
	Minimum int32
	Maximum int32
	Step    int32
	Default int32
}

var controlDescriptors = []ControlDescriptor{
	{
		ID:      ControlVFlip,
		Kind:    ControlBoolean,
		Name:    "Flip Vertically",
		Minimum: 0,
		Maximum: 1,
		Step:    1,
		Default: 0,
	},
	{
		ID:      ControlHFlip,
		Kind:    ControlBoolean,
		Name:    "Flip Horizontally",
		Minimum: 0,
		Maximum: 1,
		Step:    1,
		Default: 0,
	},
	{
		ID:      ControlExposure,
		Kind:    ControlInteger,
		Name:    "Exposure",
		Minimum: 2,
		Maximum: 480,
		Step:    1,
		Default: 480,
	},
	{
		ID:      ControlGain,
		Kind:    ControlInteger,
		Name:    "Analog Gain",
		Minimum: 16,
		Maximum: 64,
		Step:    1,
		Default: 16,
	},
	{
		ID:      ControlAutoExposure,
		Kind:    ControlBoolean,
		Name:    "Automatic Exposure",
		Minimum: 0,
		Maximum: 1,
		Step:    1,
		Default: 1,
	},
	{
		ID:      ControlAutoGain,
		Kind:    ControlBoolean,
		Name:    "Automatic Gain",
		Minimum: 0,
		Maximum: 1,
		Step:    1,
		Default: 1,
	},
}

func lookupControl(id ControlID) (ControlDescriptor, bool) {
	for _, desc := range controlDescriptors {
		if desc.ID == id {
			return desc, true
		}
	}
	return ControlDescriptor{}, false
}

// QueryControl returns the catalog entry for a control.
func (s *Sensor) QueryControl(id ControlID) (ControlDescriptor, error) {
	desc, ok := lookupControl(id)
	if !ok {
		return ControlDescriptor{}, &UnknownControlError{Control: id}
	}
	return desc, nil
}

// Control returns a control's current value, decoded from the register
// mirrors without touching the hardware.
func (s *Sensor) Control(id ControlID) (int32, error) {
	switch id {
	case ControlVFlip:
		return boolValue(s.readMode&bitVerticalFlip != 0), nil
	case ControlHFlip:
		return boolValue(s.readMode&bitHorizontalFlip != 0), nil
	case ControlExposure:
		return int32(s.shutter), nil
	case ControlGain:
		return int32(s.gain), nil
	case ControlAutoExposure:
		return boolValue(s.aecAgc&bitAutoExposure != 0), nil
	case ControlAutoGain:
		return boolValue(s.aecAgc&bitAutoGain != 0), nil
	}
	return 0, &UnknownControlError{Control: id}
}

// SetControl applies a new control value to the hardware immediately. A
// manual exposure or gain set while the matching automatic mode is enabled
// disables that mode first; the manual value always wins. The sensor's
// tunables are updated alongside so a later reconfiguration re-applies the
// last user selection.
func (s *Sensor) SetControl(ctx context.Context, id ControlID, value int32) error {
	switch id {
	case ControlVFlip:
		readMode := s.readMode &^ bitVerticalFlip
		if value != 0 {
			readMode |= bitVerticalFlip
		}
		if err := s.writeRegister(ctx, regReadMode, readMode); err != nil {
			return err
		}
		s.readMode = readMode
		s.cfg.VFlip = value != 0
		s.logger.Debugf("setting vertical flip %d (read_mode=0x%04X)", value, s.readMode)

	case ControlHFlip:
		readMode := s.readMode &^ bitHorizontalFlip
		if value != 0 {
			readMode |= bitHorizontalFlip
		}
		if err := s.writeRegister(ctx, regReadMode, readMode); err != nil {
			return err
		}
		s.readMode = readMode
		s.cfg.HFlip = value != 0
		s.logger.Debugf("setting horizontal flip %d (read_mode=0x%04X)", value, s.readMode)

	case ControlExposure:
		desc, _ := lookupControl(ControlExposure)
		if value < desc.Minimum || value > desc.Maximum {
			return &RangeError{Control: id, Value: value, Min: desc.Minimum, Max: desc.Maximum}
		}
		if err := s.disableAuto(ctx, bitAutoExposure); err != nil {
			return err
		}
		s.cfg.AutoExposure = false
		if err := s.writeRegister(ctx, regTotalShutterWidth, uint16(value)); err != nil {
			return err
		}
		s.shutter = uint16(value)
		s.logger.Debugf("setting exposure %d", s.shutter)

	case ControlGain:
		desc, _ := lookupControl(ControlGain)
		if value < desc.Minimum || value > desc.Maximum {
			return &RangeError{Control: id, Value: value, Min: desc.Minimum, Max: desc.Maximum}
		}
		if err := s.disableAuto(ctx, bitAutoGain); err != nil {
			return err
		}
		s.cfg.AutoGain = false
		gain := uint16(value)
		// the chip only accepts even gain codes from 32 up
		if gain >= 32 {
			gain &^= 1
		}
		if err := s.writeRegister(ctx, regAnalogGain, gain); err != nil {
			return err
		}
		s.gain = gain
		s.logger.Debugf("setting gain %d", s.gain)

	case ControlAutoExposure:
		aecAgc := s.aecAgc &^ bitAutoExposure
		if value != 0 {
			aecAgc |= bitAutoExposure
		}
		if err := s.writeRegister(ctx, regAECAGCEnable, aecAgc); err != nil {
			return err
		}
		s.aecAgc = aecAgc
		s.cfg.AutoExposure = value != 0
		s.logger.Debugf("setting automatic exposure %d", value)

	case ControlAutoGain:
		aecAgc := s.aecAgc &^ bitAutoGain
		if value != 0 {
			aecAgc |= bitAutoGain
		}
		if err := s.writeRegister(ctx, regAECAGCEnable, aecAgc); err != nil {
			return err
		}
		s.aecAgc = aecAgc
		s.cfg.AutoGain = value != 0
		s.logger.Debugf("setting automatic gain %d", value)

	default:
		return &UnknownControlError{Control: id}
	}
	return nil
}

// disableAuto clears one AEC/AGC enable bit if it is currently set. The
// suspended shutter or gain value stays wherever the loop left it.
func (s *Sensor) disableAuto(ctx context.Context, bit uint16) error {
	if s.aecAgc&bit == 0 {
		return nil
	}
	aecAgc := s.aecAgc &^ bit
	if err := s.writeRegister(ctx, regAECAGCEnable, aecAgc); err != nil {
		return err
	}
	s.aecAgc = aecAgc
	return nil
}

func boolValue(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
