package mt9v032

import (
	"testing"

	"go.viam.com/test"
)

func TestTryFormat(t *testing.T) {
	sensor, _, _ := newTestSensor(t, DefaultConfig())

	t.Run("geometry is fixed", func(t *testing.T) {
		for _, req := range []PixelFormat{
			{},
			{Width: 320, Height: 240, Encoding: EncodingSBGGR10},
			{Width: 4096, Height: 4096, Encoding: EncodingSBGGR10},
		} {
			got := sensor.TryFormat(req)
			test.That(t, got.Width, test.ShouldEqual, MaxWidth)
			test.That(t, got.Height, test.ShouldEqual, MaxHeight)
			test.That(t, got.BytesPerLine, test.ShouldEqual, MaxWidth*2)
			test.That(t, got.SizeImage, test.ShouldEqual, MaxWidth*2*MaxHeight)
			test.That(t, got.Colorspace, test.ShouldEqual, ColorspaceSRGB)
		}
	})

	t.Run("unsupported encoding is substituted", func(t *testing.T) {
		got := sensor.TryFormat(PixelFormat{Encoding: PixelEncoding("yuyv")})
		test.That(t, got.Encoding, test.ShouldEqual, EncodingSBGGR10)
		got = sensor.TryFormat(PixelFormat{Encoding: EncodingSGRBG10})
		test.That(t, got.Encoding, test.ShouldEqual, EncodingSBGGR10)
	})

	t.Run("does not commit", func(t *testing.T) {
		before := sensor.Format()
		sensor.TryFormat(PixelFormat{Encoding: EncodingSGRBG10})
		test.That(t, sensor.Format(), test.ShouldResemble, before)
	})
}

func TestSetFormat(t *testing.T) {
	sensor, _, _ := newTestSensor(t, DefaultConfig())

	got := sensor.SetFormat(PixelFormat{Width: 100, Height: 100, Encoding: EncodingSBGGR10})
	test.That(t, got.Width, test.ShouldEqual, MaxWidth)
	test.That(t, sensor.Format(), test.ShouldResemble, got)
}

func TestMonoVariantFormats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SensorType = SensorTypeMono
	sensor, _, _ := newTestSensor(t, cfg)

	desc, err := sensor.EnumerateFormats(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, desc.Encoding, test.ShouldEqual, EncodingSGRBG10)

	_, err = sensor.EnumerateFormats(1)
	test.That(t, err, test.ShouldEqual, ErrIndexOutOfRange)

	// the mono variant substitutes its own encoding
	got := sensor.TryFormat(PixelFormat{Encoding: EncodingSBGGR10})
	test.That(t, got.Encoding, test.ShouldEqual, EncodingSGRBG10)
	test.That(t, sensor.Format().Encoding, test.ShouldEqual, EncodingSGRBG10)
}

func TestEnumerateFormats(t *testing.T) {
	sensor, _, _ := newTestSensor(t, DefaultConfig())

	desc, err := sensor.EnumerateFormats(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, desc.Encoding, test.ShouldEqual, EncodingSBGGR10)
	test.That(t, desc.Description, test.ShouldEqual, "Bayer10 (GrR/BGb)")

	_, err = sensor.EnumerateFormats(1)
	test.That(t, err, test.ShouldEqual, ErrIndexOutOfRange)
	_, err = sensor.EnumerateFormats(-1)
	test.That(t, err, test.ShouldEqual, ErrIndexOutOfRange)
}

func TestEnumerateFrameSizes(t *testing.T) {
	sensor, _, _ := newTestSensor(t, DefaultConfig())

	size, err := sensor.EnumerateFrameSizes(EncodingSBGGR10, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, size, test.ShouldResemble, FrameSize{Width: MaxWidth, Height: MaxHeight})

	_, err = sensor.EnumerateFrameSizes(EncodingSBGGR10, 1)
	test.That(t, err, test.ShouldEqual, ErrIndexOutOfRange)

	_, err = sensor.EnumerateFrameSizes(EncodingSGRBG10, 0)
	test.That(t, err, test.ShouldEqual, ErrUnknownEncoding)
}

func TestEnumerateFrameIntervals(t *testing.T) {
	sensor, _, _ := newTestSensor(t, DefaultConfig())

	interval, err := sensor.EnumerateFrameIntervals(EncodingSBGGR10, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, interval, test.ShouldResemble, Fraction{Numerator: 1, Denominator: 60})

	_, err = sensor.EnumerateFrameIntervals(EncodingSBGGR10, 1)
	test.That(t, err, test.ShouldEqual, ErrIndexOutOfRange)

	_, err = sensor.EnumerateFrameIntervals(PixelEncoding("yuyv"), 0)
	test.That(t, err, test.ShouldEqual, ErrUnknownEncoding)
}

func TestStreamParams(t *testing.T) {
	sensor, _, _ := newTestSensor(t, DefaultConfig())

	test.That(t, sensor.StreamParams(), test.ShouldResemble, Fraction{Numerator: 1, Denominator: 60})

	// requests are coerced to the sensor's fixed timing
	got := sensor.SetStreamParams(Fraction{Numerator: 1, Denominator: 30})
	test.That(t, got, test.ShouldResemble, Fraction{Numerator: 1, Denominator: 60})
	test.That(t, sensor.StreamParams(), test.ShouldResemble, got)
}
