package nano33

import (
	"errors"
	"io"
	"testing"
)

// fakePort replays scripted Read results, mimicking a serial port with
// a read timeout: a (0, nil) result means the timeout expired.
type fakePort struct {
	chunks []string
	errs   []error
	idx    int
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.idx >= len(f.chunks) {
		return 0, io.EOF
	}
	n := copy(p, f.chunks[f.idx])
	var err error
	if f.idx < len(f.errs) {
		err = f.errs[f.idx]
	}
	f.idx++
	return n, err
}

func newTestSource(chunks ...string) *source {
	return &source{id: "test", rd: &fakePort{chunks: chunks}}
}

func TestReadLineSingle(t *testing.T) {
	s := newTestSource("1,2,3,4,5,6\n")
	line, err := s.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if line != "1,2,3,4,5,6" {
		t.Errorf("line = %q", line)
	}
}

func TestReadLineSplitAcrossReads(t *testing.T) {
	s := newTestSource("1,2,3", ",4,5,6\r\n")
	line, err := s.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if line != "1,2,3,4,5,6\r" {
		t.Errorf("line = %q", line)
	}
}

func TestReadLineMultiplePerRead(t *testing.T) {
	s := newTestSource("1,2,3,4,5,6\n7,8,9,10,11,12\n")
	first, err := s.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if first != "1,2,3,4,5,6" || second != "7,8,9,10,11,12" {
		t.Errorf("lines = %q, %q", first, second)
	}
}

func TestReadLineTimeoutYieldsEmpty(t *testing.T) {
	s := newTestSource("", "1,2,3,4,5,6\n")
	line, err := s.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if line != "" {
		t.Errorf("timeout line = %q, want empty", line)
	}
	line, err = s.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if line != "1,2,3,4,5,6" {
		t.Errorf("line = %q", line)
	}
}

func TestReadLinePartialSurvivesTimeout(t *testing.T) {
	s := newTestSource("1,2,3", "", ",4,5,6\n")
	line, err := s.ReadLine()
	if err != nil || line != "" {
		t.Fatalf("timeout read = %q, %v", line, err)
	}
	line, err = s.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if line != "1,2,3,4,5,6" {
		t.Errorf("line = %q", line)
	}
}

func TestReadLineEOF(t *testing.T) {
	s := newTestSource()
	_, err := s.ReadLine()
	if !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestReadLineClosed(t *testing.T) {
	s := &source{id: "test"}
	if _, err := s.ReadLine(); err == nil {
		t.Error("expected error on closed source")
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close on never-opened source: %v", err)
	}
}
