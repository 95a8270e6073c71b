package export

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"DrillReportBot/internal/report"

	"github.com/signintech/gopdf"
)

// The report form is an A4-landscape scan with fields at fixed positions.
// Placement works on a virtual 50×60 grid: columns are counted from the
// RIGHT edge (the form reads right to left), rows from the top.
const (
	pageW = 841.89
	pageH = 595.28

	gridCols = 50
	gridRows = 60
	marginX  = 20
	marginY  = 20
)

// Header field positions (col, row).
var (
	posRegion   = gridPos{5, 8}
	posBorehole = gridPos{16, 8}
	posRig      = gridPos{31, 8}
	posAngle    = gridPos{36, 8}
	posDate     = gridPos{45, 8}
)

// Shift parameter columns in the drilling table, and the row of each
// parameter. The day column sits right of the night column on the form.
const (
	dayCol    = 11
	nightCol  = 17
	totalsCol = 23

	rowStart  = 11
	rowEnd    = 12.3
	rowLength = 13.3
	rowSize   = 14.3
	rowMud    = 15.3
	rowWater  = 16.3
	rowDiesel = 17.3
)

// Staff and notes lines near the comment box at the bottom of the form.
const (
	staffCol      = 45
	staffFirstRow = 44
	lineRowStep   = 2
)

type gridPos struct {
	col float64
	row float64
}

// gridXY maps a grid cell to page coordinates (gopdf origin: top-left).
func gridXY(col, row float64) (x, y float64) {
	cellW := (pageW - 2*marginX) / gridCols
	cellH := (pageH - 2*marginY) / gridRows
	x = pageW - marginX - (col+0.5)*cellW
	y = marginY + (row+0.5)*cellH
	return x, y
}

const fontName = "Vazirmatn"

// PDF renders reports onto the scanned daily-report form.
type PDF struct {
	fontPath     string
	templatePath string
	log          *slog.Logger
}

// NewPDF creates a form renderer. fontPath must point at a TTF covering
// Persian glyphs; templatePath is the background scan and may be empty or
// missing, in which case fields are drawn on a blank page.
func NewPDF(logger *slog.Logger, fontPath, templatePath string) *PDF {
	return &PDF{
		fontPath:     fontPath,
		templatePath: templatePath,
		log:          logger.With(slog.String("component", "export")),
	}
}

// canvas collects drawing errors so field placement reads linearly.
type canvas struct {
	pdf *gopdf.GoPdf
	err error
}

func (c *canvas) text(col, row float64, s string) {
	if c.err != nil || s == "" {
		return
	}
	x, y := gridXY(col, row)
	c.pdf.SetX(x)
	c.pdf.SetY(y)
	c.err = c.pdf.Cell(nil, s)
}

// Export renders the report and returns the PDF bytes.
func (p *PDF) Export(_ context.Context, r *report.Report) ([]byte, error) {
	op := "export.PDF.Export"

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4Landscape})
	pdf.AddPage()

	if p.templatePath != "" {
		if _, err := os.Stat(p.templatePath); err == nil {
			if err := pdf.Image(p.templatePath, 0, 0, &gopdf.Rect{W: pageW, H: pageH}); err != nil {
				return nil, fmt.Errorf("%s: draw template: %w", op, err)
			}
		} else {
			p.log.Warn("form template missing, rendering on a blank page",
				slog.String("path", p.templatePath))
		}
	}

	if err := pdf.AddTTFFont(fontName, p.fontPath); err != nil {
		return nil, fmt.Errorf("%s: register font: %w", op, err)
	}
	if err := pdf.SetFont(fontName, "", 12); err != nil {
		return nil, fmt.Errorf("%s: set font: %w", op, err)
	}

	c := &canvas{pdf: pdf}

	// header
	c.text(posRegion.col, posRegion.row, r.Region)
	c.text(posBorehole.col, posBorehole.row, r.Borehole)
	c.text(posRig.col, posRig.row, string(r.Rig))
	// angle is printed without decimals on the form
	c.text(posAngle.col, posAngle.row,
		fmt.Sprintf("%d درجه", int(math.Round(r.AngleDeg))))
	if !r.Date.IsZero() {
		c.text(posDate.col, posDate.row, r.Date.String())
	}

	// drilling parameter table
	drawShift(c, dayCol, r.Shifts[report.ShiftDay])
	drawShift(c, nightCol, r.Shifts[report.ShiftNight])

	t := r.Totals()
	c.text(totalsCol, rowLength, meters(t.Length))
	c.text(totalsCol, rowWater, liters(t.Water))
	c.text(totalsCol, rowDiesel, liters(t.Diesel))

	// staff and notes lines by the comment box
	row := float64(staffFirstRow)
	for _, k := range report.Kinds {
		s := r.Shifts[k]
		if !s.Populated() {
			continue
		}
		if line := staffLine("شیفت "+k.Label(), s); line != "" {
			c.text(staffCol, row, line)
			row += lineRowStep
		}
		if s.Notes != "" {
			c.text(staffCol, row, fmt.Sprintf("توضیحات شیفت %s: %s", k.Label(), s.Notes))
			row += lineRowStep
		}
	}

	if c.err != nil {
		return nil, fmt.Errorf("%s: draw fields: %w", op, c.err)
	}

	out, err := pdf.GetBytesPdfReturnErr()
	if err != nil {
		return nil, fmt.Errorf("%s: serialize: %w", op, err)
	}
	return out, nil
}

// drawShift fills one shift column of the parameter table. An unpopulated
// shift leaves its column blank.
func drawShift(c *canvas, col float64, s *report.ShiftRecord) {
	if !s.Populated() {
		return
	}
	if s.StartDepth != nil {
		c.text(col, rowStart, meters(*s.StartDepth))
	}
	if s.EndDepth != nil {
		c.text(col, rowEnd, meters(*s.EndDepth))
	}
	c.text(col, rowLength, fmt.Sprintf("%.2f متر", s.Length))
	c.text(col, rowSize, string(s.Size))
	c.text(col, rowMud, s.Fluids.String())
	if s.Water != nil {
		c.text(col, rowWater, liters(*s.Water))
	}
	if s.Diesel != nil {
		c.text(col, rowDiesel, liters(*s.Diesel))
	}
}

func meters(v float64) string {
	return fmtNum(v) + " متر"
}

func liters(v float64) string {
	return fmtNum(v) + " لیتر"
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// staffLine builds the personnel line printed under the comment box, e.g.
// "شیفت روز - مسئول شیفت: علی / پرسنل کمکی: رضا".
func staffLine(label string, s *report.ShiftRecord) string {
	var parts []string
	if len(s.Supervisors) > 0 {
		parts = append(parts, "مسئول شیفت: "+strings.Join(s.Supervisors, "، "))
	}
	if len(s.Helpers) > 0 {
		parts = append(parts, "پرسنل کمکی: "+strings.Join(s.Helpers, "، "))
	}
	if len(s.WorkshopBosses) > 0 {
		parts = append(parts, "سرپرست کارگاه: "+strings.Join(s.WorkshopBosses, "، "))
	}
	if len(parts) == 0 {
		return ""
	}
	return label + " - " + strings.Join(parts, " / ")
}
