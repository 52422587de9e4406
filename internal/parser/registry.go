package parser

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Options carries the device-session context a parser backend may need at
// construction time. DevTime/SysTime form the clock synchronisation pair
// captured when the dump was downloaded from the device.
type Options struct {
	DevTime uint32
	SysTime time.Time
}

// Factory constructs a parser backend for one device family.
type Factory func(Options) Parser

var (
	regMu    sync.RWMutex
	registry = map[Family]Factory{}
)

// Register stores a family/factory pair in memory. Backends call this from
// their package init.
func Register(family Family, factory Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[family] = factory
}

// New constructs a parser for the given family.
func New(family Family, opts Options) (Parser, error) {
	regMu.RLock()
	factory, ok := registry[family]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no parser registered for family %q", family)
	}
	return factory(opts), nil
}

// Families lists the registered device families in lexical order.
func Families() []Family {
	regMu.RLock()
	defer regMu.RUnlock()
	families := make([]Family, 0, len(registry))
	for family := range registry {
		families = append(families, family)
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })
	return families
}
