//go:build !linux

package gyro

func Open() (Session, error) {
	return nil, ErrUnsupported
}
