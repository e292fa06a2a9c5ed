//go:build linux

// Package main is a bring-up tool for an MT9V032 sensor on a local I2C bus.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	mt9v032 "github.com/viam-labs/mt9v032"
	"github.com/viam-labs/mt9v032/buses"
)

func main() {
	var logger golog.Logger

	app := &cli.App{
		Name:  "mt9v032ctl",
		Usage: "bring up and poke an mt9v032 image sensor",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "i2c-bus",
				Value: 1,
				Usage: "i2c bus number (/dev/i2c-N)",
			},
			&cli.IntFlag{
				Name:  "i2c-addr",
				Value: mt9v032.DefaultI2CAddr,
				Usage: "sensor i2c address",
			},
			&cli.StringFlag{
				Name:  "sensor-type",
				Value: mt9v032.SensorTypeColor,
				Usage: "sensor variant, \"color\" or \"mono\"",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logger = golog.NewDebugLogger("mt9v032ctl")
			} else {
				logger = zap.NewNop().Sugar()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "power",
				Usage:     "power the sensor on, to standby, or off; \"on\" detects, configures and starts streaming",
				ArgsUsage: "<on|standby|off>",
				Action: func(c *cli.Context) error {
					state, err := parsePowerState(c.Args().First())
					if err != nil {
						return err
					}
					sensor, err := newSensor(c, logger)
					if err != nil {
						return err
					}
					if err := sensor.SetPowerState(c.Context, state); err != nil {
						return err
					}
					if state == mt9v032.PowerOn {
						fmt.Fprintf(c.App.Writer, "chip version 0x%04X\n", sensor.Version())
					}
					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "power the sensor on and read one control",
				ArgsUsage: "<control>",
				Action: func(c *cli.Context) error {
					return withPoweredSensor(c, logger, func(ctx context.Context, sensor *mt9v032.Sensor) error {
						id := mt9v032.ControlID(c.Args().First())
						value, err := sensor.Control(id)
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "%s = %d\n", id, value)
						return nil
					})
				},
			},
			{
				Name:      "set",
				Usage:     "power the sensor on and set one control",
				ArgsUsage: "<control> <value>",
				Action: func(c *cli.Context) error {
					return withPoweredSensor(c, logger, func(ctx context.Context, sensor *mt9v032.Sensor) error {
						id := mt9v032.ControlID(c.Args().Get(0))
						value, err := strconv.ParseInt(c.Args().Get(1), 10, 32)
						if err != nil {
							return errors.Wrap(err, "control value must be an integer")
						}
						if err := sensor.SetControl(ctx, id, int32(value)); err != nil {
							return err
						}
						committed, err := sensor.Control(id)
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "%s = %d\n", id, committed)
						return nil
					})
				},
			},
			{
				Name:  "formats",
				Usage: "list supported formats, sizes and intervals",
				Action: func(c *cli.Context) error {
					sensor, err := newSensor(c, logger)
					if err != nil {
						return err
					}
					for index := 0; ; index++ {
						desc, err := sensor.EnumerateFormats(index)
						if err != nil {
							break
						}
						pix := sensor.TryFormat(mt9v032.PixelFormat{Encoding: desc.Encoding})
						interval, err := sensor.EnumerateFrameIntervals(desc.Encoding, 0)
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "%s (%s): %dx%d stride=%d size=%d @ %d/%d s\n",
							desc.Encoding, desc.Description,
							pix.Width, pix.Height, pix.BytesPerLine, pix.SizeImage,
							interval.Numerator, interval.Denominator)
					}
					return nil
				},
			},
			{
				Name:  "dump",
				Usage: "read back the power-on programming table from an already powered sensor",
				Action: func(c *cli.Context) error {
					sensor, err := newSensor(c, logger)
					if err != nil {
						return err
					}
					dump, err := sensor.DumpRegisters(c.Context)
					if err != nil {
						return err
					}
					for _, reg := range dump {
						fmt.Fprintf(c.App.Writer, "0x%02X  %-32s 0x%04X\n", reg.Address, reg.Name, reg.Value)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parsePowerState(arg string) (mt9v032.PowerState, error) {
	switch arg {
	case "on":
		return mt9v032.PowerOn, nil
	case "standby":
		return mt9v032.PowerStandby, nil
	case "off":
		return mt9v032.PowerOff, nil
	}
	return 0, errors.Errorf("power state must be on, standby or off, got %q", arg)
}

func newSensor(c *cli.Context, logger golog.Logger) (*mt9v032.Sensor, error) {
	cfg := mt9v032.DefaultConfig()
	cfg.SensorType = c.String("sensor-type")
	cfg.I2CAddr = c.Int("i2c-addr")
	bus := buses.NewI2cBus(c.Int("i2c-bus"))
	return mt9v032.NewSensor(bus, cfg, standalonePlatform(logger), logger)
}

// standalonePlatform is for benches where the clock and power rails are wired
// permanently on; the real platform layer owns them in production.
func standalonePlatform(logger golog.Logger) mt9v032.Platform {
	return mt9v032.Platform{
		SetPower: func(ctx context.Context, state mt9v032.PowerState) error {
			logger.Debugf("platform power -> %v", state)
			return nil
		},
		SetClock: func(ctx context.Context, freqHz uint32) (uint32, error) {
			logger.Debugf("pixel clock -> %d Hz", freqHz)
			return freqHz, nil
		},
	}
}

func withPoweredSensor(
	c *cli.Context,
	logger golog.Logger,
	action func(ctx context.Context, sensor *mt9v032.Sensor) error,
) (err error) {
	sensor, err := newSensor(c, logger)
	if err != nil {
		return err
	}
	if err := sensor.SetPowerState(c.Context, mt9v032.PowerOn); err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, sensor.Close(c.Context))
	}()
	return action(c.Context, sensor)
}
