package mt9v032

// PixelEncoding identifies how pixel samples are laid out on the wire.
type PixelEncoding string

// The 10-bit Bayer encodings the two sensor variants produce.
const (
	EncodingSBGGR10 PixelEncoding = "sbggr10"
	EncodingSGRBG10 PixelEncoding = "sgrbg10"
)

// Colorspace identifies the colorspace of captured frames.
type Colorspace string

// ColorspaceSRGB is the only colorspace the sensor reports.
const ColorspaceSRGB Colorspace = "srgb"

// FormatDescription is one entry in the supported-format enumeration.
type FormatDescription struct {
	Encoding    PixelEncoding
	Description string
}

var colorFormats = []FormatDescription{
	{Encoding: EncodingSBGGR10, Description: "Bayer10 (GrR/BGb)"},
}

var monoFormats = []FormatDescription{
	{Encoding: EncodingSGRBG10, Description: "Bayer10 (GrR/BGb)"},
}

// PixelFormat describes a capture format: geometry, encoding and the derived
// buffer layout.
type PixelFormat struct {
	Width        int
	Height       int
	Encoding     PixelEncoding
	BytesPerLine int
	SizeImage    int
	Colorspace   Colorspace
}

// Fraction is a time-per-frame expressed as numerator/denominator seconds.
type Fraction struct {
	Numerator   int
	Denominator int
}

// FrameSize is one discrete capture size.
type FrameSize struct {
	Width  int
	Height int
}

// EnumerateFormats returns the index-th supported format for the configured
// sensor variant.
func (s *Sensor) EnumerateFormats(index int) (FormatDescription, error) {
	if index < 0 || index >= len(s.formats) {
		return FormatDescription{}, ErrIndexOutOfRange
	}
	return s.formats[index], nil
}

func (s *Sensor) supportsEncoding(encoding PixelEncoding) bool {
	for _, format := range s.formats {
		if format.Encoding == encoding {
			return true
		}
	}
	return false
}

// TryFormat negotiates a capture format without committing it. The sensor
// captures exactly one geometry, so the result is always the full window; an
// unsupported encoding is substituted with the variant's first one. 10-bit
// pixels are packed one per 16-bit word.
func (s *Sensor) TryFormat(req PixelFormat) PixelFormat {
	accepted := PixelFormat{
		Width:    MaxWidth,
		Height:   MaxHeight,
		Encoding: req.Encoding,
	}
	if !s.supportsEncoding(accepted.Encoding) {
		accepted.Encoding = s.formats[0].Encoding
	}
	accepted.BytesPerLine = accepted.Width * 2
	accepted.SizeImage = accepted.BytesPerLine * accepted.Height
	accepted.Colorspace = ColorspaceSRGB
	return accepted
}

// SetFormat negotiates like TryFormat and commits the result as the current
// capture format.
func (s *Sensor) SetFormat(req PixelFormat) PixelFormat {
	s.pix = s.TryFormat(req)
	return s.pix
}

// Format returns the last committed capture format.
func (s *Sensor) Format() PixelFormat {
	return s.pix
}

// EnumerateFrameSizes returns the index-th discrete frame size for the given
// encoding. The sensor has a single fixed size.
func (s *Sensor) EnumerateFrameSizes(encoding PixelEncoding, index int) (FrameSize, error) {
	if !s.supportsEncoding(encoding) {
		return FrameSize{}, ErrUnknownEncoding
	}
	if index != 0 {
		return FrameSize{}, ErrIndexOutOfRange
	}
	return FrameSize{Width: MaxWidth, Height: MaxHeight}, nil
}

var frameIntervals = []Fraction{
	{Numerator: 1, Denominator: framesPerSecond},
}

// EnumerateFrameIntervals returns the index-th discrete frame interval for
// the given encoding.
func (s *Sensor) EnumerateFrameIntervals(encoding PixelEncoding, index int) (Fraction, error) {
	if !s.supportsEncoding(encoding) {
		return Fraction{}, ErrUnknownEncoding
	}
	if index < 0 || index >= len(frameIntervals) {
		return Fraction{}, ErrIndexOutOfRange
	}
	return frameIntervals[index], nil
}

// StreamParams returns the current time-per-frame.
func (s *Sensor) StreamParams() Fraction {
	return s.timePerFrame
}

// SetStreamParams accepts a requested time-per-frame. The sensor's timing is
// fixed at 60 fps, so the request is coerced and the committed value
// returned.
func (s *Sensor) SetStreamParams(req Fraction) Fraction {
	s.timePerFrame = Fraction{Numerator: 1, Denominator: framesPerSecond}
	return s.timePerFrame
}
