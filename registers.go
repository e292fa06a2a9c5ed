package mt9v032

// Register addresses. Each register holds a 16-bit word.
const (
	regChipVersion        byte = 0x00
	regColumnStart        byte = 0x01
	regRowStart           byte = 0x02
	regWindowHeight       byte = 0x03
	regWindowWidth        byte = 0x04
	regHorizontalBlanking byte = 0x05
	regVerticalBlanking   byte = 0x06
	regChipControl        byte = 0x07
	regShutterWidth1      byte = 0x08
	regShutterWidth2      byte = 0x09
	regShutterWidthCtrl   byte = 0x0a
	regTotalShutterWidth  byte = 0x0b
	regReset              byte = 0x0c
	regReadMode           byte = 0x0d
	regMonitorMode        byte = 0x0e
	regPixelOperationMode byte = 0x0f
	regLEDOutControl      byte = 0x1b
	regADCModeControl     byte = 0x1c
	regVrefADCCtrl        byte = 0x2c
	regV1                 byte = 0x31
	regV2                 byte = 0x32
	regV3                 byte = 0x33
	regV4                 byte = 0x34
	regAnalogGain         byte = 0x35
	regMaximumAnalogGain  byte = 0x36
	regDarkAvgThresholds  byte = 0x46
	regBLCalibCtrl        byte = 0x47
	regBLCalibStep        byte = 0x4c
	regRNCorrCtrl1        byte = 0x70
	regRNConstant         byte = 0x72
	regRNCorrCtrl2        byte = 0x73
	regPixclkFvLv         byte = 0x74
	regDigitalTestPattern byte = 0x7f
	regAECAGCBin          byte = 0xa5
	regAECUpdateFrequency byte = 0xa6
	regAECLPF             byte = 0xa8
	regAGCUpdateFrequency byte = 0xa9
	regAGCLPF             byte = 0xab
	regAECAGCEnable       byte = 0xaf
	regAECAGCPixCount     byte = 0xb0
	regMaxShutterWidth    byte = 0xbd
	regBinDiffThreshold   byte = 0xbe
)

// Configuration bits.
const (
	bitAutoExposure     uint16 = 0x0001 // AEC/AGC enable register
	bitAutoGain         uint16 = 0x0002 // AEC/AGC enable register
	bitSnapshotMode     uint16 = 0x0010 // chip control register
	bitVerticalFlip     uint16 = 0x0010 // read mode register
	bitHorizontalFlip   uint16 = 0x0020 // read mode register
	bitColorSensor      uint16 = 0x0004 // pixel operation mode register
	bitHighDynamicRange uint16 = 0x0040 // pixel operation mode register

	adcModeLinear     uint16 = 0x0002
	adcModeCompanding uint16 = 0x0003

	resetSoft  uint16 = 0x0003 // soft reset the digital logic
	resetLatch uint16 = 0x0001 // commit shadowed registers
)

type registerDefault struct {
	addr  byte
	value uint16
	name  string
}

// defaultRegisters is the sensor's known-good power-on programming. Order
// matters: later entries depend on register state latched by earlier ones, so
// the table is always written front to back.
var defaultRegisters = []registerDefault{
	{regColumnStart, 0x0001, "Column Start"},
	{regRowStart, 0x0004, "Row Start"},
	{regWindowHeight, 0x01e0, "Window Height"},
	{regWindowWidth, 0x02f0, "Window Width"},
	{regHorizontalBlanking, 0x005e, "Horizontal Blanking"},
	{regVerticalBlanking, 0x002d, "Vertical Blanking"},
	{regChipControl, 0x0388, "Chip Control"},
	{regShutterWidth1, 0x01bb, "Shutter Width 1"},
	{regShutterWidth2, 0x01d9, "Shutter Width 2"},
	{regShutterWidthCtrl, 0x0164, "Shutter Width Ctrl"},
	{regTotalShutterWidth, 0x01e0, "Total Shutter Width"},
	{regReset, 0x0000, "Reset"},
	{regReadMode, 0x0300, "Read Mode"},
	{regMonitorMode, 0x0000, "Monitor Mode"},
	{regPixelOperationMode, 0x0011, "Pixel Operation Mode"},
	{regLEDOutControl, 0x0000, "LED_OUT Ctrl"},
	{regADCModeControl, 0x0002, "ADC Mode Control"},
	{regVrefADCCtrl, 0x0004, "VREF_ADC Control"},
	{regV1, 0x001d, "V1"},
	{regV2, 0x0018, "V2"},
	{regV3, 0x0015, "V3"},
	{regV4, 0x0004, "V4"},
	{regAnalogGain, 0x0010, "Analog Gain (16-64)"},
	{regMaximumAnalogGain, 0x0040, "Max Analog Gain"},
	{regDarkAvgThresholds, 0x231d, "Dark Avg Thresholds"},
	{regBLCalibCtrl, 0x8080, "Black Level Calib Control"},
	{regBLCalibStep, 0x0002, "BL Calib Step Size"},
	{regRNCorrCtrl1, 0x0034, "Row Noise Corr Ctrl 1"},
	{regRNConstant, 0x002a, "Row Noise Constant"},
	{regRNCorrCtrl2, 0x02f7, "Row Noise Corr Ctrl 2"},
	{regPixclkFvLv, 0x0000, "Pixclk, FV, LV"},
	{regDigitalTestPattern, 0x0000, "Digital Test Pattern"},
	{regAECAGCBin, 0x003a, "AEC/AGC Desired Bin"},
	{regAECUpdateFrequency, 0x0002, "AEC Update Frequency"},
	{regAECLPF, 0x0000, "AEC LPF"},
	{regAGCUpdateFrequency, 0x0002, "AGC Update Frequency"},
	{regAGCLPF, 0x0002, "AGC LPF"},
	{regAECAGCEnable, 0x0003, "AEC/AGC Enable"},
	{regAECAGCPixCount, 0xabe0, "AEC/AGC Pix Count"},
	{regMaxShutterWidth, 0x01e0, "Maximum Shutter Width"},
	{regBinDiffThreshold, 0x0014, "AGC/AEC Bin Difference Threshold"},
}
