package domain

// IndicatorCommand selects the state of the status light on the device.
type IndicatorCommand string

const (
	IndicatorRed   IndicatorCommand = "LED_RED"
	IndicatorBlue  IndicatorCommand = "LED_BLUE"
	IndicatorGreen IndicatorCommand = "LED_GREEN"
	IndicatorOff   IndicatorCommand = "LED_OFF"
)

func (c IndicatorCommand) String() string {
	return string(c)
}
