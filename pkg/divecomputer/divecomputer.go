package divecomputer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/HonzaMatousek/libdivecomputer/internal/parser"
	_ "github.com/HonzaMatousek/libdivecomputer/internal/parser/sensusultra" // register parser
)

// Sample is one decoded sample row.
type Sample struct {
	Time        float64 `json:"time_s"`
	Temperature float64 `json:"temperature_c"`
	Depth       float64 `json:"depth_m"`
}

// Result captures the outcome of decoding a memory dump.
type Result struct {
	Family    string
	RawHex    string
	ByteCount int
	StartTime time.Time
	Fields    map[string]any
	Samples   []Sample
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"family":     r.Family,
		"byte_count": r.ByteCount,
	}
	if r.RawHex != "" {
		summary["raw_hex"] = r.RawHex
	}
	if !r.StartTime.IsZero() {
		summary["start_time"] = r.StartTime.Format(time.RFC3339)
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	if len(r.Samples) > 0 {
		summary["sample_count"] = len(r.Samples)
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("family: %s bytes:%d (marshal error: %v)", r.Family, r.ByteCount, err)
	}
	return string(data)
}

// ParseHex decodes a hex-encoded memory dump with default options.
func ParseHex(raw string) (Result, error) {
	return ParseHexWithOptions(raw, ParseOptions{})
}

// ParseHexWithOptions decodes a hex-encoded memory dump with custom options.
func ParseHexWithOptions(raw string, opts ParseOptions) (Result, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	result, err := Parse(data, opts)
	result.RawHex = strings.ToUpper(stripWhitespace(raw))
	return result, err
}

// Parse selects the parser backend, binds the dump, and returns the dive
// header fields together with the decoded sample rows.
func Parse(data []byte, opts ParseOptions) (Result, error) {
	family, popts, atmospheric, hydrostatic := opts.toInternal()

	p, err := parser.New(family, popts)
	if err != nil {
		return Result{}, err
	}
	if cal, ok := p.(parser.Calibrator); ok {
		cal.SetCalibration(atmospheric, hydrostatic)
	}
	if err := p.SetData(data); err != nil {
		return Result{}, fmt.Errorf("bind dump: %w", err)
	}

	result := Result{
		Family:    string(p.Family()),
		ByteCount: len(data),
	}

	start, err := p.DateTime()
	if err != nil {
		return result, err
	}
	result.StartTime = start

	divetime, err := p.Field(parser.FieldDiveTime)
	if err != nil {
		return result, err
	}
	maxdepth, err := p.Field(parser.FieldMaxDepth)
	if err != nil {
		return result, err
	}
	gasmixes, err := p.Field(parser.FieldGasMixCount)
	if err != nil {
		return result, err
	}
	result.Fields = map[string]any{
		"start_time":    start.Format(time.RFC3339),
		"dive_time_s":   divetime,
		"max_depth_m":   maxdepth,
		"gas_mix_count": gasmixes,
	}

	samples, err := collectSamples(p)
	if err != nil {
		return result, err
	}
	result.Samples = samples
	return result, nil
}

// collectSamples folds the tagged sample stream into rows. A time value
// starts a new row; the temperature and depth that follow complete it.
func collectSamples(p parser.Parser) ([]Sample, error) {
	var samples []Sample
	var current Sample
	open := false
	err := p.Samples(func(s parser.Sample) {
		switch s.Kind {
		case parser.SampleTime:
			if open {
				samples = append(samples, current)
			}
			current = Sample{Time: s.Value}
			open = true
		case parser.SampleTemperature:
			current.Temperature = s.Value
		case parser.SampleDepth:
			current.Depth = s.Value
		}
	})
	if err != nil {
		return nil, err
	}
	if open {
		samples = append(samples, current)
	}
	return samples, nil
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex dump must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
