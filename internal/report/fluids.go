package report

import "strings"

// Fluid is one drilling-fluid additive.
type Fluid uint8

const (
	FluidSupermix Fluid = 1 << iota
	FluidCMC
	FluidSawdust
	FluidDieselAdditive
)

// Fluids lists the additives in keyboard and form order.
var Fluids = []Fluid{FluidSupermix, FluidCMC, FluidSawdust, FluidDieselAdditive}

// Label returns the name printed on keyboards and on the form.
func (f Fluid) Label() string {
	switch f {
	case FluidSupermix:
		return "سوپرمیکس"
	case FluidCMC:
		return "CMC"
	case FluidSawdust:
		return "خاک اره"
	case FluidDieselAdditive:
		return "افزودنی گازوئیل"
	}
	return ""
}

// FluidSet is the set of additives used during a shift. Membership is
// toggled, so selecting an already-selected fluid removes it.
type FluidSet uint8

// Toggle flips membership of f.
func (s *FluidSet) Toggle(f Fluid) {
	*s ^= FluidSet(f)
}

// Has reports whether f is in the set.
func (s FluidSet) Has(f Fluid) bool {
	return s&FluidSet(f) != 0
}

// List returns the members in form order.
func (s FluidSet) List() []Fluid {
	var out []Fluid
	for _, f := range Fluids {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String joins the member labels the way the form prints them.
// Empty set renders as an empty string.
func (s FluidSet) String() string {
	members := s.List()
	if len(members) == 0 {
		return ""
	}
	labels := make([]string, len(members))
	for i, f := range members {
		labels[i] = f.Label()
	}
	return strings.Join(labels, " + ")
}
