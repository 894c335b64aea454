package display

import "github.com/d2r2/go-hd44780"

type ScreenConfig struct {
	Enabled bool
	LcdType hd44780.LcdType
	Bus     int
	Address uint8
}
