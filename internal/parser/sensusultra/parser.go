// Package sensusultra decodes memory dumps recorded by the ReefNet Sensus
// Ultra dive logger.
//
// Dive record layout (all values little-endian):
//
//	offset 0   4 bytes   header marker (0x00000000) / reserved
//	offset 4   4 bytes   device timestamp, seconds on the device clock
//	offset 8   2 bytes   sample interval in seconds
//	offset 10  2 bytes   depth threshold, raw pressure units
//	offset 12  4 bytes   reserved
//	offset 16  4×N bytes sample records: uint16 temperature (0.01 K),
//	                     uint16 absolute pressure (millibar)
//	footer     4 bytes   0xFFFFFFFF, or implicit end of buffer
//
// Samples whose pressure reading stays below the configured threshold are
// surface noise and excluded from the dive duration and maximum depth.
package sensusultra

import (
	"bytes"
	"fmt"
	"time"

	"github.com/HonzaMatousek/libdivecomputer/internal/parser"
)

// Family is the registry name of this backend.
const Family parser.Family = "reefnet_sensusultra"

// Record offsets and sizes.
const (
	timestampOffset = 4
	intervalOffset  = 8
	thresholdOffset = 10
	headerLen       = 16
	sampleLen       = 4

	minDateTimeLen = timestampOffset + 4
	minSummaryLen  = headerLen + sampleLen
)

var (
	frameHeader = []byte{0x00, 0x00, 0x00, 0x00}
	frameFooter = []byte{0xFF, 0xFF, 0xFF, 0xFF}
)

func init() {
	parser.Register(Family, func(opts parser.Options) parser.Parser {
		return New(opts.DevTime, opts.SysTime)
	})
}

// Parser decodes a single Sensus Ultra dive record. Not safe for concurrent
// use; the summary cache is written in place on first access.
type Parser struct {
	// Depth calibration.
	atmospheric float64
	hydrostatic float64
	// Clock synchronisation pair captured at download time.
	devtime uint32
	systime time.Time
	// Bound dump and memoized summary.
	data     []byte
	cached   bool
	divetime uint32
	maxdepth uint16
}

var _ parser.Calibrator = (*Parser)(nil)

// New creates a parser calibrated for seawater at standard atmospheric
// pressure. devtime and systime are the device tick count and the matching
// wall-clock instant observed when the dump was downloaded.
func New(devtime uint32, systime time.Time) *Parser {
	return &Parser{
		atmospheric: parser.Atm,
		hydrostatic: parser.DensitySalt * parser.Gravity,
		devtime:     devtime,
		systime:     systime,
	}
}

// Family implements parser.Parser.
func (p *Parser) Family() parser.Family { return Family }

// SetData binds a new dump buffer and resets the memoized summary. The
// buffer is not validated here; length checks belong to the operation that
// consumes the data.
func (p *Parser) SetData(data []byte) error {
	p.data = data
	p.cached = false
	p.divetime = 0
	p.maxdepth = 0
	return nil
}

// SetCalibration overwrites the atmospheric pressure (Pa) and hydrostatic
// coefficient (Pa/m) used for depth conversion. The summary cache keeps its
// raw values, so a new calibration applies to every later depth query
// without rescanning the dump.
func (p *Parser) SetCalibration(atmospheric, hydrostatic float64) {
	p.atmospheric = atmospheric
	p.hydrostatic = hydrostatic
}

// DateTime reconstructs the wall-clock start of the dive by walking the
// reference instant backward by the device-tick delta. The delta is computed
// in uint32 arithmetic and therefore wraps exactly like the device counter.
func (p *Parser) DateTime() (time.Time, error) {
	if len(p.data) < minDateTimeLen {
		return time.Time{}, fmt.Errorf("dump too short for a timestamp (%d bytes): %w", len(p.data), parser.ErrDataFormat)
	}
	timestamp, _ := parser.Uint32LE(p.data, timestampOffset)
	delta := p.devtime - timestamp
	start := p.systime.Add(-time.Duration(delta) * time.Second)
	if year := start.Year(); year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("start time outside calendar range (year %d): %w", year, parser.ErrDataFormat)
	}
	return start, nil
}

// Field implements parser.Parser. FieldDiveTime is reported in seconds and
// FieldMaxDepth in metres; FieldGasMixCount is always zero because the
// device records no gas mix data.
func (p *Parser) Field(typ parser.FieldType) (float64, error) {
	if err := p.summarize(); err != nil {
		return 0, err
	}
	switch typ {
	case parser.FieldDiveTime:
		return float64(p.divetime), nil
	case parser.FieldMaxDepth:
		return parser.Depth(p.maxdepth, p.atmospheric, p.hydrostatic), nil
	case parser.FieldGasMixCount:
		return 0, nil
	default:
		return 0, fmt.Errorf("field %d: %w", typ, parser.ErrUnsupported)
	}
}

// DiveTime returns the total dive duration.
func (p *Parser) DiveTime() (time.Duration, error) {
	if err := p.summarize(); err != nil {
		return 0, err
	}
	return time.Duration(p.divetime) * time.Second, nil
}

// MaxDepth returns the maximum depth in metres under the current
// calibration.
func (p *Parser) MaxDepth() (float64, error) {
	if err := p.summarize(); err != nil {
		return 0, err
	}
	return parser.Depth(p.maxdepth, p.atmospheric, p.hydrostatic), nil
}

// GasMixCount returns the number of recorded gas mixes, which is always
// zero for this device.
func (p *Parser) GasMixCount() (int, error) {
	if err := p.summarize(); err != nil {
		return 0, err
	}
	return 0, nil
}

// summarize scans the sample region once and caches the raw dive time and
// maximum depth until the next SetData. The dive frame is assumed to start
// at offset 0, so samples begin at the fixed offset 16.
func (p *Parser) summarize() error {
	if len(p.data) < minSummaryLen {
		return fmt.Errorf("dump too short for a dive summary (%d bytes): %w", len(p.data), parser.ErrDataFormat)
	}
	if p.cached {
		return nil
	}

	interval, _ := parser.Uint16LE(p.data, intervalOffset)
	threshold, _ := parser.Uint16LE(p.data, thresholdOffset)

	var maxdepth uint16
	var nsamples uint32
	offset := headerLen
	for offset+len(frameFooter) <= len(p.data) && !bytes.Equal(p.data[offset:offset+len(frameFooter)], frameFooter) {
		depth, _ := parser.Uint16LE(p.data, offset+2)
		if depth >= threshold {
			if depth > maxdepth {
				maxdepth = depth
			}
			nsamples++
		}
		offset += sampleLen
	}

	p.cached = true
	p.divetime = nsamples * uint32(interval)
	p.maxdepth = maxdepth
	return nil
}

// Samples scans the dump for a dive frame and streams its sample values
// through fn. Unlike the summary path, the frame header is searched for
// byte by byte, so a frame is found wherever it starts. Only the first
// frame is decoded. A dump without a header marker yields no samples and
// no error. A nil fn runs the scan for format validation only.
func (p *Parser) Samples(fn parser.SampleFunc) error {
	data := p.data

	offset := 0
	for offset+len(frameHeader) <= len(data) {
		if !bytes.Equal(data[offset:offset+len(frameHeader)], frameHeader) {
			offset++
			continue
		}
		if offset+headerLen > len(data) {
			return fmt.Errorf("dive frame at offset %d truncated: %w", offset, parser.ErrDataFormat)
		}

		interval, _ := parser.Uint16LE(data, offset+intervalOffset)
		var elapsed uint32

		offset += headerLen
		for offset+len(frameFooter) <= len(data) && !bytes.Equal(data[offset:offset+len(frameFooter)], frameFooter) {
			elapsed += uint32(interval)
			if fn != nil {
				t := time.Duration(elapsed) * time.Second
				fn(parser.Sample{Kind: parser.SampleTime, Time: t, Value: float64(elapsed)})

				temperature, _ := parser.Uint16LE(data, offset)
				fn(parser.Sample{Kind: parser.SampleTemperature, Time: t, Value: parser.Temperature(temperature)})

				depth, _ := parser.Uint16LE(data, offset+2)
				fn(parser.Sample{Kind: parser.SampleDepth, Time: t, Value: parser.Depth(depth, p.atmospheric, p.hydrostatic)})
			}
			offset += sampleLen
		}
		break
	}

	return nil
}
