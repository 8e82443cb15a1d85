package sensor

import (
	"strings"
	"unicode/utf8"
)

// Header is the column row the Arduino sketch prints on boot,
// and the first row of every capture file.
const Header = "aX,aY,aZ,gX,gY,gZ"

// NumValues is the number of comma separated tokens in one sample:
// 3-axis acceleration followed by 3-axis rotation rate.
const NumValues = 6

// Sample holds the six tokens of one IMU reading, verbatim as received.
// The values are never converted to numbers; the capture file carries
// them exactly as the device printed them.
type Sample struct {
	Values [NumValues]string
}

// Fields returns the tokens in column order for the CSV writer.
func (s Sample) Fields() []string {
	return s.Values[:]
}

type Kind int

const (
	LineEmpty Kind = iota
	LineHeader
	LineSample
	LineMalformed
	LineBinary
)

type Source interface {
	Open() error
	Close() error
	// ReadLine returns the next text line from the device without its
	// terminator. A read timeout yields ("", nil).
	ReadLine() (string, error)
	ID() string
}

// ParseLine classifies one line from the device. The returned count is
// the number of comma separated tokens found, zero unless the line was
// split at all.
func ParseLine(line string) (Sample, int, Kind) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Sample{}, 0, LineEmpty
	}
	if !utf8.ValidString(line) {
		return Sample{}, 0, LineBinary
	}
	// the device echoes its own header on boot, swallow it
	if strings.HasPrefix(line, Header) {
		return Sample{}, 0, LineHeader
	}
	tokens := strings.Split(line, ",")
	if len(tokens) != NumValues {
		return Sample{}, len(tokens), LineMalformed
	}
	var s Sample
	copy(s.Values[:], tokens)
	return s, NumValues, LineSample
}
