package sensor

import (
	"testing"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		kind   Kind
		tokens int
	}{
		{"empty", "", LineEmpty, 0},
		{"whitespace only", " \r\n", LineEmpty, 0},
		{"header", "aX,aY,aZ,gX,gY,gZ", LineHeader, 0},
		{"header with trailing noise", "aX,aY,aZ,gX,gY,gZ\r", LineHeader, 0},
		{"valid sample", "1.0,2.0,3.0,4.0,5.0,6.0", LineSample, 6},
		{"valid sample with crlf", "0.1,0.2,0.3,0.4,0.5,0.6\r", LineSample, 6},
		{"too few tokens", "1,2,3", LineMalformed, 3},
		{"too many tokens", "1,2,3,4,5,6,7", LineMalformed, 7},
		{"single token", "garbage", LineMalformed, 1},
		{"binary junk", "\xff\xfe\x01,2,3,4,5,6", LineBinary, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, tokens, kind := ParseLine(c.line)
			if kind != c.kind {
				t.Errorf("kind = %v, want %v", kind, c.kind)
			}
			if tokens != c.tokens {
				t.Errorf("tokens = %d, want %d", tokens, c.tokens)
			}
		})
	}
}

func TestParseLineKeepsTokensVerbatim(t *testing.T) {
	s, _, kind := ParseLine("-0.50, 1.25,0.00,12.3,-45.6,7.89\r\n")
	if kind != LineSample {
		t.Fatalf("kind = %v, want LineSample", kind)
	}
	want := [NumValues]string{"-0.50", " 1.25", "0.00", "12.3", "-45.6", "7.89"}
	if s.Values != want {
		t.Errorf("values = %q, want %q", s.Values, want)
	}
}
