// Package mt9v032 implements a userspace driver for the Aptina MT9V032
// wide-VGA CMOS image sensor, controlled over a two-wire register bus.
//
// The driver detects the chip, brings it into a known configuration through
// an ordered register load with read-back verification, exposes the sensor's
// user-adjustable controls (exposure, gain, flips, AEC/AGC), negotiates the
// capture format, and sequences power-state transitions together with the
// platform's clock and power rails.
//
// All operations are synchronous and the driver performs no locking of its
// own: the register bus is a shared resource and the caller is expected to
// serialize overlapping operations on a Sensor, the way a capture framework
// invoking the driver one verb at a time would.
package mt9v032
