package report

import "fmt"

// ShiftKind identifies one of the two fixed labor periods of a reporting day.
type ShiftKind string

const (
	ShiftDay   ShiftKind = "day"
	ShiftNight ShiftKind = "night"
)

// Kinds lists the shift kinds in report order.
var Kinds = []ShiftKind{ShiftDay, ShiftNight}

// Label returns the Persian label used in prompts and on the form.
func (k ShiftKind) Label() string {
	switch k {
	case ShiftDay:
		return "روز"
	case ShiftNight:
		return "شب"
	}
	return string(k)
}

// Rig is the drilling rig model. Labels are printed on the form as-is.
type Rig string

const (
	RigDB1200 Rig = "DB 1200"
	RigDBC    Rig = "DBC-S15-A"
)

// BitSize is a drill-bit diameter code.
type BitSize string

const (
	SizeBQ BitSize = "BQ"
	SizeNQ BitSize = "NQ"
	SizeHQ BitSize = "HQ"
	SizePQ BitSize = "PQ"
)

// Sizes lists the bit sizes in keyboard order.
var Sizes = []BitSize{SizeBQ, SizeNQ, SizeHQ, SizePQ}

// Date is a Solar Hijri calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as printed on the form: day/month/year.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%d", d.Day, d.Month, d.Year)
}

// IsZero reports whether no date has been entered yet.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// ShiftRecord holds the drilling metrics of one shift. Numeric fields are
// pointers so an unset field is distinguishable from an entered zero.
type ShiftRecord struct {
	Supervisors    []string
	Helpers        []string
	WorkshopBosses []string
	StartDepth     *float64
	EndDepth       *float64
	Length         float64 // end − start, recomputed on every depth write
	Size           BitSize
	Fluids         FluidSet
	Water          *float64
	Diesel         *float64
	Notes          string
}

// SetStartDepth writes the start depth and re-derives Length.
func (s *ShiftRecord) SetStartDepth(v float64) {
	s.StartDepth = &v
	s.recalcLength()
}

// SetEndDepth writes the end depth and re-derives Length.
func (s *ShiftRecord) SetEndDepth(v float64) {
	s.EndDepth = &v
	s.recalcLength()
}

func (s *ShiftRecord) recalcLength() {
	if s.StartDepth != nil && s.EndDepth != nil {
		s.Length = *s.EndDepth - *s.StartDepth
	}
}

// Populated reports whether the shift carries any drilling data.
// A shift without a start depth was never filled in.
func (s *ShiftRecord) Populated() bool {
	return s != nil && s.StartDepth != nil
}

// Personnel returns all person names of the shift in entry order.
func (s *ShiftRecord) Personnel() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Supervisors)+len(s.Helpers)+len(s.WorkshopBosses))
	names = append(names, s.Supervisors...)
	names = append(names, s.Helpers...)
	names = append(names, s.WorkshopBosses...)
	return names
}

// Report is one daily drilling-operations report under construction or
// finalized. It is the exact record handed to the exporter.
type Report struct {
	Region   string
	Borehole string
	Rig      Rig
	AngleDeg float64
	Date     Date
	Shifts   map[ShiftKind]*ShiftRecord
}

// New returns a fresh report with both shift records empty.
func New() *Report {
	return &Report{
		Shifts: map[ShiftKind]*ShiftRecord{
			ShiftDay:   {},
			ShiftNight: {},
		},
	}
}

// Shift returns the record for kind, creating it if missing so callers can
// write through it directly.
func (r *Report) Shift(k ShiftKind) *ShiftRecord {
	if r.Shifts == nil {
		r.Shifts = make(map[ShiftKind]*ShiftRecord)
	}
	s, ok := r.Shifts[k]
	if !ok {
		s = &ShiftRecord{}
		r.Shifts[k] = s
	}
	return s
}

// Complete reports whether the report may be exported: at least one shift
// must carry drilling data.
func (r *Report) Complete() bool {
	for _, k := range Kinds {
		if r.Shifts[k].Populated() {
			return true
		}
	}
	return false
}
