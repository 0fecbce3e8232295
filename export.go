package socialstats

import (
	"context"
	"strings"
)

// ExportFormat names a serialization format.
type ExportFormat string

// Export formats.
const (
	FormatCSV   ExportFormat = "csv"
	FormatJSON  ExportFormat = "json"
	FormatExcel ExportFormat = "excel"
)

// ParseExportFormat normalizes a format name. Unknown names map to CSV.
func ParseExportFormat(s string) ExportFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "excel", "xlsx", "xls", "excel-compatible-table":
		return FormatExcel
	default:
		return FormatCSV
	}
}

// ExportMeta identifies whose content is exported.
type ExportMeta struct {
	Platform Platform
	Username string
}

// Export is a serialized record sequence ready for delivery.
type Export struct {
	Payload     []byte `json:"-"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Count       int    `json:"count"`
}

// Exporter serializes records into an interchange format.
type Exporter interface {
	Export(records []*Record, format ExportFormat, meta ExportMeta) (*Export, error)
}

// Deliverer hands an export over to the user.
type Deliverer interface {
	// Deliver returns where the payload ended up.
	Deliver(ctx context.Context, e *Export) (string, error)
}
