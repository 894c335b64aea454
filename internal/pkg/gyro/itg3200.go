package gyro

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gethiox/ITG3200/internal/pkg/logger"
	"go.uber.org/zap"
)

const (
	BusNumber = 1
	Address   = 0x68
)

// DevicePath is the character device opened for BusNumber.
var DevicePath = fmt.Sprintf("/dev/i2c-%d", BusNumber)

// ITG-3200 registers and values
const (
	RegDLPFFullScale = 0x16
	RegGyroXOutH     = 0x1D
	RegPowerMgmt     = 0x3E

	PowerPLLXRef  = 0x01 // power on, PLL with X gyro reference
	FullScale2000 = 0x18 // +/-2000 deg/s, 256Hz low pass filter

	SampleSize = 6
)

const DefaultSettleTime = time.Second

var (
	ErrShortRead   = errors.New("input/output error")
	ErrUnsupported = errors.New("hardware not supported")
)

// Bus is a minimal I2C transaction interface bound to a single device address.
// *i2c.I2C from github.com/d2r2/go-i2c satisfies it.
type Bus interface {
	WriteBytes(buf []byte) (int, error)
	ReadBytes(buf []byte) (int, error)
}

type Session interface {
	Bus
	Close() error
}

type Sensor struct {
	bus Bus
	log *zap.Logger
}

func NewSensor(bus Bus, log *zap.Logger) *Sensor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sensor{bus: bus, log: log}
}

func (s *Sensor) writeRegister(reg, value byte) error {
	n, err := s.bus.WriteBytes([]byte{reg, value})
	if err != nil {
		return fmt.Errorf("cannot write 0x%02X into 0x%02X register: %w", value, reg, err)
	}
	if n != 2 {
		return fmt.Errorf("cannot write 0x%02X into 0x%02X register: %d of 2 bytes written", value, reg, n)
	}
	return nil
}

// Configure powers the device up and sets its full scale range.
// Registers are not read back.
func (s *Sensor) Configure() error {
	err := s.writeRegister(RegPowerMgmt, PowerPLLXRef)
	if err != nil {
		return fmt.Errorf("failed to power up device: %w", err)
	}
	s.log.Info("[Gyro] device powered up, clock source: PLL with X gyro reference", logger.Debug)

	err = s.writeRegister(RegDLPFFullScale, FullScale2000)
	if err != nil {
		return fmt.Errorf("failed to set full scale range: %w", err)
	}
	s.log.Info("[Gyro] full scale range set to +/-2000 deg/s", logger.Debug)
	return nil
}

// Settle blocks for d, giving the sensor time to stabilize after configuration.
func (s *Sensor) Settle(ctx context.Context, d time.Duration) error {
	s.log.Info(fmt.Sprintf("[Gyro] waiting %s for sensor to settle", d), logger.Debug)
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Read selects the X axis high byte register and reads all three axes in one burst.
func (s *Sensor) Read() (Sample, error) {
	_, err := s.bus.WriteBytes([]byte{RegGyroXOutH})
	if err != nil {
		return Sample{}, fmt.Errorf("failed to select data register: %w", err)
	}

	var data [SampleSize]byte
	n, err := s.bus.ReadBytes(data[:])
	if err != nil {
		return Sample{}, fmt.Errorf("failed to read sample: %w", err)
	}
	if n != SampleSize {
		return Sample{}, fmt.Errorf("%w: %d of %d bytes read", ErrShortRead, n, SampleSize)
	}

	sample := Decode(data)
	s.log.Info(fmt.Sprintf("[Gyro] raw sample: % X", data), logger.Debug)
	return sample, nil
}
