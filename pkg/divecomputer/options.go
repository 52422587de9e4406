package divecomputer

import (
	"time"

	"github.com/HonzaMatousek/libdivecomputer/internal/parser"
)

// DefaultFamily is the parser backend used when ParseOptions.Family is
// empty.
const DefaultFamily = "reefnet_sensusultra"

// ParseOptions configures decoding.
type ParseOptions struct {
	// Family selects the parser backend. Empty selects DefaultFamily.
	Family string
	// DevTime and SysTime are the clock synchronisation pair captured
	// when the dump was downloaded: the device tick counter and the
	// matching wall-clock instant. A zero SysTime means time.Now().
	DevTime uint32
	SysTime time.Time
	// Atmospheric pressure in Pa and hydrostatic coefficient in Pa/m for
	// the depth conversion. Zero selects the seawater defaults.
	Atmospheric float64
	Hydrostatic float64
}

func (opts ParseOptions) toInternal() (parser.Family, parser.Options, float64, float64) {
	family := parser.Family(opts.Family)
	if opts.Family == "" {
		family = DefaultFamily
	}
	systime := opts.SysTime
	if systime.IsZero() {
		systime = time.Now()
	}
	atmospheric := opts.Atmospheric
	if atmospheric == 0 {
		atmospheric = parser.Atm
	}
	hydrostatic := opts.Hydrostatic
	if hydrostatic == 0 {
		hydrostatic = parser.DensitySalt * parser.Gravity
	}
	return family, parser.Options{DevTime: opts.DevTime, SysTime: systime}, atmospheric, hydrostatic
}
