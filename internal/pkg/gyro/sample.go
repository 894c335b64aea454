package gyro

import "fmt"

// Sensitivity in LSB per deg/s for +/-2000 deg/s full scale range.
const Sensitivity = 14.375

// Sample holds a single angular rate reading, raw frame is kept as received:
// X msb, X lsb, Y msb, Y lsb, Z msb, Z lsb.
type Sample struct {
	Raw     [SampleSize]byte
	X, Y, Z int
}

// Fold combines big-endian register pair into signed value.
func Fold(hi, lo byte) int {
	v := int(hi)*256 + int(lo)
	if v > 32767 {
		v -= 65536
	}
	return v
}

func Decode(raw [SampleSize]byte) Sample {
	return Sample{
		Raw: raw,
		X:   Fold(raw[0], raw[1]),
		Y:   Fold(raw[2], raw[3]),
		Z:   Fold(raw[4], raw[5]),
	}
}

// Rate returns angular rate in deg/s.
func (s Sample) Rate() (x, y, z float64) {
	return float64(s.X) / Sensitivity, float64(s.Y) / Sensitivity, float64(s.Z) / Sensitivity
}

func (s Sample) Lines() [3]string {
	return [3]string{
		fmt.Sprintf("X-Axis of Rotation : %d", s.X),
		fmt.Sprintf("Y-Axis of Rotation : %d", s.Y),
		fmt.Sprintf("Z-Axis of Rotation : %d", s.Z),
	}
}

func (s Sample) String() string {
	x, y, z := s.Rate()
	return fmt.Sprintf("x: %6.2f, y: %6.2f, z: %6.2f", x, y, z)
}
