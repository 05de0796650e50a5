package track

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	foreignBOM = [][]byte{
		{0x00, 0x00, 0xFE, 0xFF}, // UTF-32BE
		{0xFF, 0xFE, 0x00, 0x00}, // UTF-32LE
		{0xFE, 0xFF},             // UTF-16BE
		{0xFF, 0xFE},             // UTF-16LE
	}
)

// DetectFormat guesses the container format of a raw track buffer.
func DetectFormat(data []byte) Format {
	if len(data) >= 12 && string(data[8:12]) == ".FIT" {
		return FormatFIT
	}
	return FormatGPX
}

// Parse decodes a GPX or FIT buffer into a Track using the default sample size.
func Parse(data []byte) (*Track, error) {
	return ParseSampled(data, SampleSize)
}

// ParseSampled is Parse with an explicit has-elevation/has-timestamps sample
// window.
func ParseSampled(data []byte, sample int) (*Track, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Kind: ErrMalformed, Err: errors.New("empty input")}
	}
	switch DetectFormat(data) {
	case FormatFIT:
		return ParseFIT(data, sample)
	default:
		return ParseGPX(data, sample)
	}
}

func checkEncoding(data []byte) ([]byte, error) {
	for _, bom := range foreignBOM {
		if bytes.HasPrefix(data, bom) {
			return nil, &ParseError{Kind: ErrUnsupportedEncoding, Err: errors.New("UTF-16/UTF-32 input")}
		}
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}

func classifyDecodeError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "charset") || strings.Contains(msg, "encoding") {
		return &ParseError{Kind: ErrUnsupportedEncoding, Err: err}
	}
	return &ParseError{Kind: ErrMalformed, Err: err}
}

func validateCoordinates(points []TrackPoint) error {
	for i, p := range points {
		if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
			return &ParseError{Kind: ErrMalformed, Err: fmt.Errorf("point %d: coordinates out of range (%f, %f)", i, p.Lat, p.Lon)}
		}
	}
	return nil
}
