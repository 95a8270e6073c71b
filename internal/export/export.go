package export

import (
	"context"

	"DrillReportBot/internal/report"
)

// Exporter renders a finalized report into a document byte stream.
type Exporter interface {
	Export(ctx context.Context, r *report.Report) ([]byte, error)
}
