package export

import (
	"strings"
	"testing"

	"DrillReportBot/internal/report"
)

func TestGridXY(t *testing.T) {
	cellW := (pageW - 2*marginX) / gridCols
	cellH := (pageH - 2*marginY) / gridRows

	// column zero is the cell nearest the right edge
	x0, y0 := gridXY(0, 0)
	if x0 >= pageW-marginX || x0 <= pageW-marginX-cellW {
		t.Errorf("col 0 x = %v, want inside the rightmost cell", x0)
	}
	if y0 <= marginY || y0 >= marginY+cellH {
		t.Errorf("row 0 y = %v, want inside the topmost cell", y0)
	}

	// columns grow leftward, rows grow downward
	x1, _ := gridXY(1, 0)
	if x1 >= x0 {
		t.Errorf("col 1 x = %v, not left of col 0 x = %v", x1, x0)
	}
	_, y1 := gridXY(0, 1)
	if y1 <= y0 {
		t.Errorf("row 1 y = %v, not below row 0 y = %v", y1, y0)
	}

	// fractional rows land between their neighbors
	_, ya := gridXY(11, 12)
	_, yb := gridXY(11, 12.3)
	_, yc := gridXY(11, 13)
	if !(ya < yb && yb < yc) {
		t.Errorf("fractional row out of order: %v %v %v", ya, yb, yc)
	}

	// everything stays on the page
	x, y := gridXY(gridCols-1, gridRows-1)
	if x < 0 || x > pageW || y < 0 || y > pageH {
		t.Errorf("last cell off page: (%v, %v)", x, y)
	}
}

func TestStaffLine(t *testing.T) {
	tests := []struct {
		name  string
		shift report.ShiftRecord
		want  string
	}{
		{
			name: "all groups",
			shift: report.ShiftRecord{
				Supervisors:    []string{"علی"},
				Helpers:        []string{"رضا", "حسین"},
				WorkshopBosses: []string{"ناصر"},
			},
			want: "شیفت روز - مسئول شیفت: علی / پرسنل کمکی: رضا، حسین / سرپرست کارگاه: ناصر",
		},
		{
			name: "supervisors only",
			shift: report.ShiftRecord{
				Supervisors: []string{"علی"},
			},
			want: "شیفت روز - مسئول شیفت: علی",
		},
		{
			name:  "no personnel",
			shift: report.ShiftRecord{},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := staffLine("شیفت روز", &tt.shift)
			if got != tt.want {
				t.Errorf("staffLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumberFormatting(t *testing.T) {
	if got := meters(142.5); got != "142.5 متر" {
		t.Errorf("meters(142.5) = %q", got)
	}
	if got := meters(100); got != "100 متر" {
		t.Errorf("meters(100) = %q", got)
	}
	if got := liters(500); got != "500 لیتر" {
		t.Errorf("liters(500) = %q", got)
	}
	if !strings.HasSuffix(liters(0.5), "لیتر") {
		t.Errorf("liters unit suffix missing: %q", liters(0.5))
	}
}
