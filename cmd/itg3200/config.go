package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/d2r2/go-hd44780"
	"github.com/gethiox/ITG3200/internal/pkg/display"
	"github.com/go-ini/ini"
)

type Gyro struct {
	SettleTime time.Duration
}

type Config struct {
	Gyro   Gyro
	Screen display.ScreenConfig
}

//go:embed itg3200-config/itg3200.config
var defaultConfig []byte

// LoadConfig reads ini configuration from path, embedded defaults are used for empty path.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return ParseConfig(defaultConfig)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read \"%s\" config: %w", path, err)
	}

	c, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid \"%s\" config: %w", path, err)
	}
	return c, nil
}

func ParseConfig(data []byte) (Config, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return Config{}, err
	}

	var c Config

	// [ITG3200]
	gyro, err := cfg.GetSection("ITG3200")
	if err != nil {
		return Config{}, err
	}
	settleTime, err := gyro.GetKey("settle_time")
	if err != nil {
		return Config{}, err
	}
	i, err := settleTime.Int()
	if err != nil {
		return Config{}, fmt.Errorf("settle_time: %w", err)
	}
	if i < 0 {
		return Config{}, errors.New("settle_time: negative value")
	}
	c.Gyro.SettleTime = time.Millisecond * time.Duration(i)

	// [screen]
	screen, err := cfg.GetSection("screen")
	if err != nil {
		return Config{}, err
	}
	screenSupport, err := screen.GetKey("enabled")
	if err != nil {
		return Config{}, err
	}
	screenType, err := screen.GetKey("type")
	if err != nil {
		return Config{}, err
	}
	screenBus, err := screen.GetKey("bus")
	if err != nil {
		return Config{}, err
	}
	screenAddress, err := screen.GetKey("address")
	if err != nil {
		return Config{}, err
	}

	b, err := screenSupport.Bool()
	if err != nil {
		return Config{}, fmt.Errorf("enabled: %w", err)
	}
	c.Screen.Enabled = b

	switch t := screenType.Value(); t {
	case "16x2":
		c.Screen.LcdType = hd44780.LCD_16x2
	case "20x4":
		c.Screen.LcdType = hd44780.LCD_20x4
	default:
		return Config{}, fmt.Errorf("type: unsupported screen type \"%s\"", t)
	}

	i, err = screenBus.Int()
	if err != nil {
		return Config{}, fmt.Errorf("bus: %w", err)
	}
	c.Screen.Bus = i

	addr, err := strconv.ParseUint(screenAddress.String(), 0, 7)
	if err != nil {
		return Config{}, fmt.Errorf("address: %w", err)
	}
	c.Screen.Address = uint8(addr)

	return c, nil
}
