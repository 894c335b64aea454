package gyro

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type op struct {
	write bool
	data  []byte
}

// fakeBus records every transaction and serves reads from a prepared frame.
type fakeBus struct {
	ops      []op
	frame    []byte
	readErr  error
	writeErr map[byte]error
}

func (b *fakeBus) WriteBytes(buf []byte) (int, error) {
	b.ops = append(b.ops, op{write: true, data: append([]byte(nil), buf...)})
	if err, ok := b.writeErr[buf[0]]; ok {
		return 0, err
	}
	return len(buf), nil
}

func (b *fakeBus) ReadBytes(buf []byte) (int, error) {
	b.ops = append(b.ops, op{data: make([]byte, len(buf))})
	if b.readErr != nil {
		return 0, b.readErr
	}
	return copy(buf, b.frame), nil
}

func (b *fakeBus) writes() [][]byte {
	var w [][]byte
	for _, o := range b.ops {
		if o.write {
			w = append(w, o.data)
		}
	}
	return w
}

func TestSensorSequence(t *testing.T) {
	bus := &fakeBus{frame: []byte{0x00, 0x0A, 0x00, 0x14, 0xFF, 0xF6}}
	s := NewSensor(bus, zaptest.NewLogger(t))

	require.NoError(t, s.Configure())
	require.NoError(t, s.Settle(context.Background(), time.Millisecond))
	sample, err := s.Read()
	require.NoError(t, err)

	assert.Equal(t, 10, sample.X)
	assert.Equal(t, 20, sample.Y)
	assert.Equal(t, -10, sample.Z)

	require.Len(t, bus.ops, 4)
	assert.Equal(t, op{write: true, data: []byte{0x3E, 0x01}}, bus.ops[0])
	assert.Equal(t, op{write: true, data: []byte{0x16, 0x18}}, bus.ops[1])
	assert.Equal(t, op{write: true, data: []byte{0x1D}}, bus.ops[2])
	assert.False(t, bus.ops[3].write)
	assert.Len(t, bus.ops[3].data, SampleSize)
}

func TestReadShortFrame(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		bus := &fakeBus{frame: []byte{0x7F, 0xFF, 0x7F, 0xFF, 0x7F, 0xFF}[:n]}
		s := NewSensor(bus, nil)

		sample, err := s.Read()
		assert.ErrorIs(t, err, ErrShortRead)
		assert.Equal(t, Sample{}, sample)
	}
}

func TestReadError(t *testing.T) {
	busErr := errors.New("remote I/O error")
	bus := &fakeBus{readErr: busErr}
	s := NewSensor(bus, zaptest.NewLogger(t))

	_, err := s.Read()
	assert.ErrorIs(t, err, busErr)
	assert.Equal(t, [][]byte{{0x1D}}, bus.writes())
}

func TestReadPointerWriteFailure(t *testing.T) {
	busErr := errors.New("nack")
	bus := &fakeBus{frame: make([]byte, SampleSize), writeErr: map[byte]error{RegGyroXOutH: busErr}}
	s := NewSensor(bus, zaptest.NewLogger(t))

	sample, err := s.Read()
	assert.ErrorIs(t, err, busErr)
	assert.Equal(t, Sample{}, sample)
	assert.Equal(t, []op{{write: true, data: []byte{0x1D}}}, bus.ops, "no read after failed register select")
}

func TestDevicePath(t *testing.T) {
	assert.Equal(t, "/dev/i2c-1", DevicePath)
}

func TestConfigureWriteFailure(t *testing.T) {
	busErr := errors.New("no such device")
	bus := &fakeBus{writeErr: map[byte]error{RegPowerMgmt: busErr}}
	s := NewSensor(bus, zaptest.NewLogger(t))

	err := s.Configure()
	assert.ErrorIs(t, err, busErr)
	assert.Len(t, bus.ops, 1, "nothing should follow failed power up")
}

func TestSettleCancelled(t *testing.T) {
	s := NewSensor(&fakeBus{}, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Settle(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigureWrites(t *testing.T) {
	bus := &fakeBus{}
	s := NewSensor(bus, zaptest.NewLogger(t))

	require.NoError(t, s.Configure())
	assert.Equal(t, [][]byte{{0x3E, 0x01}, {0x16, 0x18}}, bus.writes())
}

func TestSettleWaits(t *testing.T) {
	s := NewSensor(&fakeBus{}, nil)

	start := time.Now()
	err := s.Settle(context.Background(), 20*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, time.Since(start) >= 20*time.Millisecond)
}
