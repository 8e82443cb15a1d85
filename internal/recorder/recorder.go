// Package recorder runs the capture loop: it pulls text lines from a
// sensor source, appends valid samples to a CSV sink and counts them
// into fixed size gestures for training data.
package recorder

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	sensor2 "github.com/wld-code/TinyML-for-motor/internal/sensor"
)

type Recorder struct {
	src  sensor2.Source
	path string
	file *os.File
	out  *csv.Writer

	samplesPerGesture int
	samplesCollected  int
	gestureCount      int
}

func New(src sensor2.Source, samplesPerGesture int, path string) *Recorder {
	return &Recorder{
		src:               src,
		path:              path,
		samplesPerGesture: samplesPerGesture,
	}
}

// Open creates (or truncates) the sink and writes the header row.
func (r *Recorder) Open() error {
	if r.file != nil {
		return nil
	}
	f, err := os.Create(r.path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	// CRLF row endings keep the file identical on Windows consumers
	w.UseCRLF = true
	if err := w.Write(strings.Split(sensor2.Header, ",")); err != nil {
		_ = f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	r.file = f
	r.out = w
	return nil
}

// Close flushes and releases the sink. Safe to call more than once.
func (r *Recorder) Close() error {
	if r.file == nil {
		return nil
	}
	r.out.Flush()
	err := r.out.Error()
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	r.file = nil
	r.out = nil
	return err
}

// Run reads lines from the source until ctx is cancelled. Malformed
// lines are warned about and skipped; only sink failures and a dead
// source end the loop early.
func (r *Recorder) Run(ctx context.Context) error {
	if r.out == nil {
		return errors.New("recorder not open")
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.src.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return err
			}
			log.Warnf("serial read failed: %v", err)
			continue
		}

		sample, tokens, kind := sensor2.ParseLine(line)
		switch kind {
		case sensor2.LineSample:
			if err := r.write(sample); err != nil {
				return err
			}
			r.advance()
		case sensor2.LineMalformed:
			log.Warnf("unexpected line format (expected %d values, got %d): %s",
				sensor2.NumValues, tokens, strings.TrimSpace(line))
		case sensor2.LineBinary:
			log.Warnf("dropped undecodable line (%d bytes)", len(line))
		case sensor2.LineEmpty, sensor2.LineHeader:
			// timeout or header echo, nothing to do
		}
	}
}

func (r *Recorder) write(s sensor2.Sample) error {
	if err := r.out.Write(s.Fields()); err != nil {
		return err
	}
	// flush per row so an interrupt never loses captured samples
	r.out.Flush()
	return r.out.Error()
}

func (r *Recorder) advance() {
	r.samplesCollected++
	if r.samplesCollected == r.samplesPerGesture {
		r.samplesCollected = 0
		r.gestureCount++
		log.Infof("%d samples have been saved, data collection complete for one gesture", r.samplesPerGesture)
		log.Infof("total gestures captured: %d", r.gestureCount)
		log.Infoln("ready for next gesture")
	}
}

func (r *Recorder) GestureCount() int {
	return r.gestureCount
}

func (r *Recorder) SamplesCollected() int {
	return r.samplesCollected
}

// TotalSamples counts every row written so far, including the
// partially collected trailing gesture.
func (r *Recorder) TotalSamples() int {
	return r.gestureCount*r.samplesPerGesture + r.samplesCollected
}

// Summary reports the session totals after the loop has stopped.
func (r *Recorder) Summary() {
	log.Infoln("data collection stopped by user")
	log.Infof("total gestures captured: %d", r.gestureCount)
	log.Infof("total samples saved: %d", r.TotalSamples())
	log.Infof("the data has been saved to %s", r.path)
	log.Infof("rename %s to match the captured gesture (e.g. punch.csv, flex.csv) before training", r.path)
}
