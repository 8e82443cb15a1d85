// Package nano33 reads the text stream printed by the Arduino Nano 33
// BLE Sense sketch that drives data collection: one comma separated
// IMU sample per line, preceded by a header row on boot.
package nano33

import (
	"bytes"
	"errors"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tarm/serial"

	"github.com/wld-code/TinyML-for-motor/internal/config"
	sensor2 "github.com/wld-code/TinyML-for-motor/internal/sensor"
)

const DefaultBaudRate = 9600

// MaxLineLen bounds the carry-over buffer. A sample line is well under
// 100 bytes; anything longer is noise and gets dropped.
const MaxLineLen = 512

const readChunk = 256

// source cannot be accessed by two goroutines at the same time
type source struct {
	id      string
	opt     config.SerialOpt
	port    *serial.Port
	rd      io.Reader
	pending []byte
	buf     [readChunk]byte
}

func (s *source) ID() string {
	return s.id
}

// Open opens the serial port
func (s *source) Open() error {
	if s.port != nil {
		return nil
	}
	c := &serial.Config{
		Name:        s.opt.Name,
		Baud:        s.opt.Baud,
		ReadTimeout: time.Duration(s.opt.Timeout) * time.Second,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return err
	}
	s.port = port
	s.rd = port
	s.pending = s.pending[:0]
	return s.port.Flush()
}

// Close closes the serial port
func (s *source) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	if err != nil {
		return err
	}
	s.port = nil
	s.rd = nil
	return nil
}

// ReadLine returns the next newline terminated line from the port,
// without the terminator. A read that times out before a full line
// arrives yields an empty line and a nil error; the partial line stays
// buffered for the next call.
func (s *source) ReadLine() (string, error) {
	if s.rd == nil {
		return "", errors.New("port not open")
	}
	for {
		if i := bytes.IndexByte(s.pending, '\n'); i >= 0 {
			line := string(s.pending[:i])
			s.pending = append(s.pending[:0], s.pending[i+1:]...)
			return line, nil
		}
		if len(s.pending) > MaxLineLen {
			log.Debugf("dropping %d unterminated bytes", len(s.pending))
			s.pending = s.pending[:0]
		}
		n, err := s.rd.Read(s.buf[:])
		if n > 0 {
			s.pending = append(s.pending, s.buf[:n]...)
			continue
		}
		if err != nil {
			return "", err
		}
		// timeout, nothing arrived
		return "", nil
	}
}

func NewSource(opt config.SerialOpt) sensor2.Source {
	if opt.Baud == 0 {
		opt.Baud = DefaultBaudRate
	}
	return &source{
		id:  opt.Name,
		opt: opt,
	}
}
