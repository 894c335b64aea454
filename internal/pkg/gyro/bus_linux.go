//go:build linux

package gyro

import (
	"fmt"

	"github.com/d2r2/go-i2c"
	d2rLogger "github.com/d2r2/go-logger"
)

// Open opens /dev/i2c-1 and binds it to the ITG-3200 address.
func Open() (Session, error) {
	d2rLogger.ChangePackageLogLevel("i2c", d2rLogger.InfoLevel)

	dev, err := i2c.NewI2C(Address, BusNumber)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", DevicePath, err)
	}
	return dev, nil
}
