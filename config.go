package mt9v032

import (
	"context"

	"github.com/pkg/errors"
)

// Sensor color variants.
const (
	SensorTypeColor = "color"
	SensorTypeMono  = "mono"
)

// DefaultI2CAddr is the sensor's default bus address. The chip straps to
// 0x48, 0x4c, 0x58 or 0x5c.
const DefaultI2CAddr = 0x48

var validI2CAddrs = []int{0x48, 0x4c, 0x58, 0x5c}

// Config holds the load-time tunables for one sensor. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	SensorType   string `json:"sensor_type,omitempty"` // "color" or "mono"
	I2CAddr      int    `json:"i2c_addr,omitempty"`
	AutoExposure bool   `json:"auto_exp"`
	AutoGain     bool   `json:"auto_gain"`
	HDR          bool   `json:"hdr"`
	LowLight     bool   `json:"low_light"` // companding ADC
	HFlip        bool   `json:"hflip"`
	VFlip        bool   `json:"vflip"`
}

// DefaultConfig returns the driver's stock tunables: a color sensor with
// AEC, AGC and high dynamic range enabled.
func DefaultConfig() Config {
	return Config{
		SensorType:   SensorTypeColor,
		I2CAddr:      DefaultI2CAddr,
		AutoExposure: true,
		AutoGain:     true,
		HDR:          true,
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate() error {
	switch cfg.SensorType {
	case "", SensorTypeColor, SensorTypeMono:
	default:
		return errors.Errorf("sensor_type must be %q or %q, got %q", SensorTypeColor, SensorTypeMono, cfg.SensorType)
	}
	if cfg.I2CAddr != 0 {
		valid := false
		for _, addr := range validI2CAddrs {
			if cfg.I2CAddr == addr {
				valid = true
				break
			}
		}
		if !valid {
			return errors.Errorf("i2c_addr 0x%02X is not a valid mt9v032 address", cfg.I2CAddr)
		}
	}
	return nil
}

// PowerState is a target state for the power/lifecycle machine.
type PowerState int

// The power states the sensor can be asked to enter.
const (
	PowerOff PowerState = iota
	PowerStandby
	PowerOn
)

func (s PowerState) String() string {
	switch s {
	case PowerOff:
		return "off"
	case PowerStandby:
		return "standby"
	case PowerOn:
		return "on"
	}
	return "unknown"
}

// Platform is the callback set the surrounding board support code supplies.
// SetPower and SetClock are required; SetPrivateData is optional.
type Platform struct {
	// SetPower changes the sensor's power rails. It should sleep as needed
	// for power to settle before returning.
	SetPower func(ctx context.Context, state PowerState) error

	// SetClock sets the pixel clock frequency in Hz and reports the frequency
	// actually achieved. 0 disables the clock.
	SetClock func(ctx context.Context, freqHz uint32) (uint32, error)

	// SetPrivateData hands the host framework's private data pointer to the
	// platform layer.
	SetPrivateData func(p interface{}) error
}
