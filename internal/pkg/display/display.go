package display

import (
	"fmt"

	device "github.com/d2r2/go-hd44780"
	"github.com/d2r2/go-i2c"
	d2rLogger "github.com/d2r2/go-logger"
	"github.com/gethiox/ITG3200/internal/pkg/gyro"
	"github.com/gethiox/ITG3200/internal/pkg/logger"
)

var log = logger.GetLogger()

func getDisplay(addr uint8, bus int, lcdType device.LcdType) (*device.Lcd, *i2c.I2C, error) {
	d2rLogger.ChangePackageLogLevel("i2c", d2rLogger.InfoLevel)
	d2rLogger.ChangePackageLogLevel("hd44780", d2rLogger.InfoLevel)

	lcdRaw, err := i2c.NewI2C(addr, bus)
	if err != nil {
		return nil, nil, err
	}

	lcd, err := device.NewLcd(lcdRaw, lcdType)
	if err != nil {
		return nil, lcdRaw, err
	}

	return lcd, lcdRaw, nil
}

func width(lcdType device.LcdType) int {
	if lcdType == device.LCD_20x4 {
		return 20
	}
	return 16
}

func pad(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	return fmt.Sprintf("%-*s", w, s)
}

// FormatLines lays sample out for given screen, every line is padded to the screen width
// so previous content gets overwritten.
func FormatLines(s gyro.Sample, lcdType device.LcdType) []string {
	w := width(lcdType)

	var lines []string
	switch lcdType {
	case device.LCD_20x4:
		x, y, z := s.Rate()
		lines = []string{
			fmt.Sprintf("X:%6d %8.2f", s.X, x),
			fmt.Sprintf("Y:%6d %8.2f", s.Y, y),
			fmt.Sprintf("Z:%6d %8.2f", s.Z, z),
			fmt.Sprintf("ITG-3200 0x%02X deg/s", gyro.Address),
		}
	default:
		lines = []string{
			fmt.Sprintf("X%6d  Y%6d", s.X, s.Y),
			fmt.Sprintf("Z%6d", s.Z),
		}
	}

	for i := range lines {
		lines[i] = pad(lines[i], w)
	}
	return lines
}

// ShowSample writes sample onto HD44780 screen attached over I2C.
func ShowSample(cfg ScreenConfig, s gyro.Sample) error {
	lcd, bus, err := getDisplay(cfg.Address, cfg.Bus, cfg.LcdType)
	if bus != nil {
		defer bus.Close()
	}
	if err != nil {
		return fmt.Errorf("cannot initialize display: %w", err)
	}

	err = lcd.BacklightOn()
	if err != nil {
		return fmt.Errorf("cannot turn backlight on: %w", err)
	}
	err = lcd.Clear()
	if err != nil {
		return fmt.Errorf("cannot clear display: %w", err)
	}

	for i, line := range FormatLines(s, cfg.LcdType) {
		err = lcd.SetPosition(i, 0)
		if err != nil {
			return fmt.Errorf("cannot set position on line %d: %w", i, err)
		}
		_, err = lcd.Write([]byte(line))
		if err != nil {
			return fmt.Errorf("cannot write line %d: %w", i, err)
		}
	}

	log.Info(fmt.Sprintf("[Display] sample shown on 0x%02X screen", cfg.Address), logger.Debug)
	return nil
}
