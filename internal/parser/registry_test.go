package parser

import (
	"testing"
	"time"
)

type fakeParser struct {
	family Family
	opts   Options
}

func (f *fakeParser) Family() Family { return f.family }

func (f *fakeParser) SetData([]byte) error { return nil }

func (f *fakeParser) DateTime() (time.Time, error) { return f.opts.SysTime, nil }

func (f *fakeParser) Field(FieldType) (float64, error) { return 0, ErrUnsupported }

func (f *fakeParser) Samples(SampleFunc) error { return nil }

func TestRegisterAndNew(t *testing.T) {
	const family Family = "test_fake"
	Register(family, func(opts Options) Parser {
		return &fakeParser{family: family, opts: opts}
	})

	p, err := New(family, Options{DevTime: 7})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Family() != family {
		t.Errorf("Family = %q, want %q", p.Family(), family)
	}
	if p.(*fakeParser).opts.DevTime != 7 {
		t.Errorf("DevTime = %d, want 7", p.(*fakeParser).opts.DevTime)
	}
}

func TestNewUnknownFamily(t *testing.T) {
	if _, err := New("no_such_family", Options{}); err == nil {
		t.Fatal("New accepted an unregistered family")
	}
}

func TestFamiliesSorted(t *testing.T) {
	Register("test_zz", func(Options) Parser { return &fakeParser{family: "test_zz"} })
	Register("test_aa", func(Options) Parser { return &fakeParser{family: "test_aa"} })

	families := Families()
	for i := 1; i < len(families); i++ {
		if families[i-1] > families[i] {
			t.Fatalf("Families not sorted: %v", families)
		}
	}
	found := map[Family]bool{}
	for _, f := range families {
		found[f] = true
	}
	if !found["test_aa"] || !found["test_zz"] {
		t.Errorf("Families missing registered entries: %v", families)
	}
}
