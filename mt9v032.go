package mt9v032

import (
	"context"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/viam-labs/mt9v032/buses"
)

// Sensor geometry and timing.
const (
	MaxWidth  = 752
	MaxHeight = 480

	pixelClockHz    = 27000000
	framesPerSecond = 60

	// blanking for 60 fps with a 27 MHz pixel clock, from the datasheet
	// timing equations
	horizontalBlanking = 43
	verticalBlanking   = 88

	// the soft reset needs >= 15 pixel clock cycles to settle
	resetSettle = time.Millisecond
	// lets the sensor shut down cleanly leaving LED_OUT disabled before the
	// pixel clock stops
	powerDownQuiesce = 50 * time.Millisecond
)

// The chip version codes detection accepts.
const (
	chipVersionA uint16 = 0x1311
	chipVersionB uint16 = 0x1313
)

// Driver is the capability set the sensor exposes to its host framework:
// controls, format negotiation, power and lifecycle.
type Driver interface {
	QueryControl(id ControlID) (ControlDescriptor, error)
	Control(id ControlID) (int32, error)
	SetControl(ctx context.Context, id ControlID, value int32) error

	EnumerateFormats(index int) (FormatDescription, error)
	TryFormat(req PixelFormat) PixelFormat
	SetFormat(req PixelFormat) PixelFormat
	Format() PixelFormat
	EnumerateFrameSizes(encoding PixelEncoding, index int) (FrameSize, error)
	EnumerateFrameIntervals(encoding PixelEncoding, index int) (Fraction, error)
	StreamParams() Fraction
	SetStreamParams(req Fraction) Fraction

	SetPowerState(ctx context.Context, state PowerState) error
	StartCapture(ctx context.Context) error
	StopCapture(ctx context.Context) error
	Close(ctx context.Context) error
}

// Sensor is one attached MT9V032. It is not safe for concurrent use; the
// caller serializes operations.
type Sensor struct {
	logger   golog.Logger
	bus      buses.I2C
	addr     byte
	platform Platform
	cfg      Config // live tunables, mutated by control sets

	detected bool
	version  uint16
	power    PowerState

	formats      []FormatDescription
	pix          PixelFormat
	timePerFrame Fraction

	// register mirrors; each always holds the last value successfully
	// written to the corresponding hardware register
	chipControl uint16
	readMode    uint16
	aecAgc      uint16
	horizBlank  uint16
	shutter     uint16
	gain        uint16
	pixelMode   uint16
	adcMode     uint16
}

var _ Driver = (*Sensor)(nil)

// NewSensor wires a driver to a sensor at cfg.I2CAddr on the given bus. The
// chip is not touched until the first power-on transition.
func NewSensor(bus buses.I2C, cfg Config, platform Platform, logger golog.Logger) (*Sensor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if platform.SetPower == nil || platform.SetClock == nil {
		return nil, errors.New("platform must provide SetPower and SetClock")
	}
	if cfg.I2CAddr == 0 {
		cfg.I2CAddr = DefaultI2CAddr
		logger.Warnf("using default i2c address 0x%02X", DefaultI2CAddr)
	}
	if cfg.SensorType == "" {
		cfg.SensorType = SensorTypeColor
	}

	s := &Sensor{
		logger:       logger,
		bus:          bus,
		addr:         byte(cfg.I2CAddr),
		platform:     platform,
		cfg:          cfg,
		power:        PowerOff,
		timePerFrame: Fraction{Numerator: 1, Denominator: framesPerSecond},
		// coherent with the exposure and gain control defaults
		shutter: 480,
		gain:    16,
	}
	if cfg.SensorType == SensorTypeMono {
		s.formats = monoFormats
	} else {
		s.formats = colorFormats
	}
	s.pix = s.TryFormat(PixelFormat{Encoding: s.formats[0].Encoding})

	logger.Infof("%s sensor", cfg.SensorType)
	logger.Infof("hflip=%t vflip=%t auto_gain=%t auto_exp=%t hdr=%t low_light=%t",
		cfg.HFlip, cfg.VFlip, cfg.AutoGain, cfg.AutoExposure, cfg.HDR, cfg.LowLight)
	return s, nil
}

// Detected reports whether the chip has been identified on the bus.
func (s *Sensor) Detected() bool { return s.detected }

// Version returns the chip version code, 0 until detection succeeds.
func (s *Sensor) Version() uint16 { return s.version }

// PowerState returns the last power state successfully entered.
func (s *Sensor) PowerState() PowerState { return s.power }

// SetPrivateData hands p to the platform layer.
func (s *Sensor) SetPrivateData(p interface{}) error {
	if s.platform.SetPrivateData == nil {
		return errors.New("platform does not provide SetPrivateData")
	}
	return s.platform.SetPrivateData(p)
}

func (s *Sensor) detect(ctx context.Context) (uint16, error) {
	version, err := s.readRegister(ctx, regChipVersion)
	if err != nil {
		return 0, &DetectionError{Err: err}
	}
	if version != chipVersionA && version != chipVersionB {
		s.logger.Warnf("chip version mismatch (0x%04X)", version)
		return 0, &DetectionError{Version: version}
	}
	s.logger.Infof("chip version 0x%04X", version)
	return version, nil
}

// configure brings the sensor from an arbitrary register state into the
// driver's known configuration. Transport failures abort; read-back
// mismatches are diagnostic only, since some registers legitimately
// self-adjust after the shadow-register latch.
func (s *Sensor) configure(ctx context.Context) error {
	// soft reset, then give the digital logic time to settle
	if err := s.writeRegister(ctx, regReset, resetSoft); err != nil {
		return err
	}
	if !utils.SelectContextOrWait(ctx, resetSettle) {
		return errors.Wrap(ctx.Err(), "interrupted waiting for reset to settle")
	}

	for _, reg := range defaultRegisters {
		if err := s.writeRegister(ctx, reg.addr, reg.value); err != nil {
			return err
		}
	}

	// commit shadowed registers so verification doesn't erroneously report
	// failed writes
	if err := s.writeRegister(ctx, regReset, resetLatch); err != nil {
		return err
	}
	if !utils.SelectContextOrWait(ctx, resetSettle) {
		return errors.Wrap(ctx.Err(), "interrupted waiting for reset to settle")
	}

	for _, reg := range defaultRegisters {
		got, err := s.readRegister(ctx, reg.addr)
		if err != nil {
			s.logger.Warnw("register readback failed", "register", reg.name, "error", err)
			continue
		}
		if got != reg.value {
			s.logger.Warnw("register readback mismatch",
				"register", reg.name, "wanted", reg.value, "got", got)
		}
	}

	if err := s.writeRegister(ctx, regHorizontalBlanking, horizontalBlanking); err != nil {
		return err
	}
	s.horizBlank = horizontalBlanking
	if err := s.writeRegister(ctx, regVerticalBlanking, verticalBlanking); err != nil {
		return err
	}

	// snapshot mode is the safe post-configure default; StartCapture clears it
	chipControl, err := s.readRegister(ctx, regChipControl)
	if err != nil {
		return err
	}
	chipControl |= bitSnapshotMode
	if err := s.writeRegister(ctx, regChipControl, chipControl); err != nil {
		return err
	}
	s.chipControl = chipControl

	// the max shutter width is the default exposure once AEC is disabled
	windowHeight, err := s.readRegister(ctx, regWindowHeight)
	if err != nil {
		return err
	}
	shutter := windowHeight + verticalBlanking - 2
	if err := s.writeRegister(ctx, regTotalShutterWidth, shutter); err != nil {
		return err
	}
	s.shutter = shutter

	pixelMode, err := s.readRegister(ctx, regPixelOperationMode)
	if err != nil {
		return err
	}
	variant := SensorTypeMono
	if pixelMode&bitColorSensor != 0 {
		variant = SensorTypeColor
	}
	if variant != s.cfg.SensorType {
		s.logger.Warnf("chip reports a %s sensor, configured as %s", variant, s.cfg.SensorType)
	}
	if s.cfg.HDR {
		pixelMode |= bitHighDynamicRange
	} else {
		pixelMode &^= bitHighDynamicRange
	}
	if err := s.writeRegister(ctx, regPixelOperationMode, pixelMode); err != nil {
		return err
	}
	s.pixelMode = pixelMode

	readMode, err := s.readRegister(ctx, regReadMode)
	if err != nil {
		return err
	}
	if s.cfg.VFlip {
		readMode |= bitVerticalFlip
	} else {
		readMode &^= bitVerticalFlip
	}
	if s.cfg.HFlip {
		readMode |= bitHorizontalFlip
	} else {
		readMode &^= bitHorizontalFlip
	}
	if err := s.writeRegister(ctx, regReadMode, readMode); err != nil {
		return err
	}
	s.readMode = readMode

	aecAgc, err := s.readRegister(ctx, regAECAGCEnable)
	if err != nil {
		return err
	}
	if s.cfg.AutoExposure {
		aecAgc |= bitAutoExposure
	} else {
		aecAgc &^= bitAutoExposure
	}
	if s.cfg.AutoGain {
		aecAgc |= bitAutoGain
	} else {
		aecAgc &^= bitAutoGain
	}
	if err := s.writeRegister(ctx, regAECAGCEnable, aecAgc); err != nil {
		return err
	}
	s.aecAgc = aecAgc

	adcMode := adcModeLinear
	if s.cfg.LowLight {
		adcMode = adcModeCompanding
	}
	if err := s.writeRegister(ctx, regADCModeControl, adcMode); err != nil {
		return err
	}
	s.adcMode = adcMode

	// adopt the chip's gain ceiling as the current manual gain
	gain, err := s.readRegister(ctx, regMaximumAnalogGain)
	if err != nil {
		return err
	}
	if err := s.writeRegister(ctx, regAnalogGain, gain); err != nil {
		return err
	}
	s.gain = gain

	// a longer maximum total shutter width improves low light performance
	return s.writeRegister(ctx, regMaxShutterWidth, 4*shutter)
}

// StartCapture clears snapshot mode, putting the sensor in streaming capture.
func (s *Sensor) StartCapture(ctx context.Context) error {
	chipControl := s.chipControl &^ bitSnapshotMode
	if err := s.writeRegister(ctx, regChipControl, chipControl); err != nil {
		return err
	}
	s.chipControl = chipControl
	return nil
}

// StopCapture sets snapshot mode, holding the sensor between frames.
func (s *Sensor) StopCapture(ctx context.Context) error {
	chipControl := s.chipControl | bitSnapshotMode
	if err := s.writeRegister(ctx, regChipControl, chipControl); err != nil {
		return err
	}
	s.chipControl = chipControl
	return nil
}

// SetPowerState sequences the pixel clock, the platform power rails and the
// sensor's register state into the target power state. Every transition to
// PowerOn re-runs the full configuration and ends streaming; there is no
// incremental resume. A detection or power failure leaves the sensor in the
// state it was attempting to leave, to be retried by the caller.
func (s *Sensor) SetPowerState(ctx context.Context, state PowerState) error {
	// don't cut power mid-frame
	if state != PowerOn && s.detected {
		if err := s.StopCapture(ctx); err != nil {
			s.logger.Warnw("unable to stop capture before power down", "error", err)
		}
	}

	if state == PowerOn {
		if _, err := s.platform.SetClock(ctx, pixelClockHz); err != nil {
			return &PowerSequenceError{State: state, Err: err}
		}
	} else {
		if !utils.SelectContextOrWait(ctx, powerDownQuiesce) {
			return &PowerSequenceError{State: state, Err: ctx.Err()}
		}
		if _, err := s.platform.SetClock(ctx, 0); err != nil {
			return &PowerSequenceError{State: state, Err: err}
		}
	}

	if err := s.platform.SetPower(ctx, state); err != nil {
		s.logger.Errorf("unable to set the power state: mt9v032 sensor")
		if _, clockErr := s.platform.SetClock(ctx, 0); clockErr != nil {
			s.logger.Warnw("unable to disable pixel clock", "error", clockErr)
		}
		return &PowerSequenceError{State: state, Err: err}
	}

	if state == PowerOn {
		if !s.detected {
			version, err := s.detect(ctx)
			if err != nil {
				s.logger.Errorw("unable to detect mt9v032 sensor", "error", err)
				return err
			}
			s.detected = true
			s.version = version
		}
		if err := s.configure(ctx); err != nil {
			return err
		}
		if err := s.StartCapture(ctx); err != nil {
			return err
		}
	}

	s.power = state
	return nil
}

// Close powers the sensor down and detaches it: the detected flag and chip
// version are cleared, so a reattached sensor is re-identified from scratch.
func (s *Sensor) Close(ctx context.Context) error {
	err := s.SetPowerState(ctx, PowerOff)
	s.detected = false
	s.version = 0
	return err
}

// RegisterValue is one register read during a diagnostic dump.
type RegisterValue struct {
	Address byte
	Name    string
	Value   uint16
}

// DumpRegisters reads back every register of the power-on programming table
// for diagnostics.
func (s *Sensor) DumpRegisters(ctx context.Context) ([]RegisterValue, error) {
	out := make([]RegisterValue, 0, len(defaultRegisters))
	for _, reg := range defaultRegisters {
		value, err := s.readRegister(ctx, reg.addr)
		if err != nil {
			return nil, err
		}
		out = append(out, RegisterValue{Address: reg.addr, Name: reg.name, Value: value})
	}
	return out, nil
}
