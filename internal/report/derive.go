package report

import "strings"

// MaxNotesChars is the character capacity of the comment box on the printed
// form. Personnel names share the box with free-text notes, so the space
// left for notes shrinks as names are added.
const MaxNotesChars = 200

// personnelSeparator joins names when estimating how much of the comment
// box they consume; it matches how the exporter prints them.
const personnelSeparator = "، "

// Totals are the per-report sums across populated shifts.
type Totals struct {
	Length float64
	Water  float64
	Diesel float64
}

// Totals sums length, water and diesel over the populated shifts.
// Missing fields of a populated shift count as zero.
func (r *Report) Totals() Totals {
	var t Totals
	for _, k := range Kinds {
		s := r.Shifts[k]
		if !s.Populated() {
			continue
		}
		t.Length += s.Length
		if s.Water != nil {
			t.Water += *s.Water
		}
		if s.Diesel != nil {
			t.Diesel += *s.Diesel
		}
	}
	return t
}

// NotesBudget is the remaining character allowance for free-text notes:
// MaxNotesChars minus the joined length of all personnel names across
// populated shifts, clamped at zero. It is report-wide, not per-shift.
func (r *Report) NotesBudget() int {
	var names []string
	for _, k := range Kinds {
		s := r.Shifts[k]
		if s.Populated() {
			names = append(names, s.Personnel()...)
		}
	}
	used := len([]rune(strings.Join(names, personnelSeparator)))
	if used >= MaxNotesChars {
		return 0
	}
	return MaxNotesChars - used
}
