package parser

import (
	"errors"
	"time"
)

// Family identifies a dive computer family handled by one parser backend.
type Family string

// FieldType selects a summary field for Parser.Field.
type FieldType int

const (
	// FieldDiveTime is the total dive duration in seconds.
	FieldDiveTime FieldType = iota
	// FieldMaxDepth is the maximum depth in metres.
	FieldMaxDepth
	// FieldGasMixCount is the number of recorded gas mixes.
	FieldGasMixCount
)

// SampleKind tags the quantity carried by a streamed Sample.
type SampleKind int

const (
	// SampleTime is elapsed time since the dive started, in seconds.
	SampleTime SampleKind = iota
	// SampleTemperature is water temperature in degrees Celsius.
	SampleTemperature
	// SampleDepth is depth in metres.
	SampleDepth
)

func (k SampleKind) String() string {
	switch k {
	case SampleTime:
		return "time"
	case SampleTemperature:
		return "temperature"
	case SampleDepth:
		return "depth"
	default:
		return "unknown"
	}
}

// Sample is a single tagged value decoded from the sample stream. Every
// sample of a record shares that record's elapsed Time; Value holds the
// quantity selected by Kind (seconds, degrees Celsius or metres).
type Sample struct {
	Kind  SampleKind
	Time  time.Duration
	Value float64
}

// SampleFunc receives decoded samples in stream order.
type SampleFunc func(Sample)

// Parser decodes one dive record from a raw device memory dump. A Parser is
// stateful (bound buffer, memoized summary) and not safe for concurrent use;
// construct one per dump being decoded.
type Parser interface {
	// Family reports the device family this parser decodes.
	Family() Family
	// SetData binds a new dump buffer and discards derived state. The
	// buffer is borrowed, not copied; the caller must not mutate it while
	// the parser is in use.
	SetData(data []byte) error
	// DateTime reconstructs the wall-clock start time of the dive.
	DateTime() (time.Time, error)
	// Field returns a summary field value: seconds for FieldDiveTime,
	// metres for FieldMaxDepth, a count for FieldGasMixCount. Unknown
	// fields return ErrUnsupported.
	Field(typ FieldType) (float64, error)
	// Samples streams the decoded sample values through fn. Each 4-byte
	// record emits three samples (time, temperature, depth). A nil fn
	// performs the scan without emitting. Samples already delivered are
	// not unwound when a later record turns out malformed.
	Samples(fn SampleFunc) error
}

// Calibrator is implemented by parsers whose depth conversion can be
// recalibrated after construction.
type Calibrator interface {
	// SetCalibration overwrites the reference atmospheric pressure (Pa)
	// and the hydrostatic coefficient (Pa per metre). Values are not
	// validated; physically meaningful input is the caller's business.
	SetCalibration(atmospheric, hydrostatic float64)
}

var (
	// ErrDataFormat reports a dump that is too short or malformed for the
	// requested operation.
	ErrDataFormat = errors.New("unexpected data format")
	// ErrUnsupported reports a field query the device family does not
	// record.
	ErrUnsupported = errors.New("unsupported field")
)
