// Package export serializes harvested records into CSV, JSON and
// spreadsheet-compatible HTML tables.
package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/socialstats"
)

var _ socialstats.Exporter = (*Exporter)(nil)

// Content types of the export formats.
const (
	ContentTypeCSV   = "text/csv"
	ContentTypeJSON  = "application/json"
	ContentTypeExcel = "application/vnd.ms-excel"
)

// Exporter implements socialstats.Exporter.
type Exporter struct {
	// Indent pretty-prints JSON output.
	Indent bool

	// Now returns the time embedded in filenames.
	Now func() time.Time
}

// NewExporter creates an Exporter producing indented JSON.
func NewExporter() *Exporter {
	return &Exporter{Indent: true, Now: time.Now}
}

// Export serializes records in the requested format.
func (e *Exporter) Export(records []*socialstats.Record, format socialstats.ExportFormat, meta socialstats.ExportMeta) (*socialstats.Export, error) {
	var (
		payload     []byte
		contentType string
		ext         string
		err         error
	)
	switch format {
	case socialstats.FormatJSON:
		payload, err = e.json(records)
		contentType, ext = ContentTypeJSON, "json"
	case socialstats.FormatExcel:
		payload, err = Excel(records, meta.Platform)
		contentType, ext = ContentTypeExcel, "xlsx"
	case socialstats.FormatCSV:
		payload = CSV(records, meta.Platform)
		contentType, ext = ContentTypeCSV, "csv"
	default:
		return nil, socialstats.Errorf(socialstats.EINVALID, "unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return &socialstats.Export{
		Payload:     payload,
		Filename:    Filename(meta, e.Now(), ext),
		ContentType: contentType,
		Count:       len(records),
	}, nil
}

func (e *Exporter) json(records []*socialstats.Record) ([]byte, error) {
	if records == nil {
		records = []*socialstats.Record{}
	}
	if e.Indent {
		return json.MarshalIndent(records, "", "  ")
	}
	return json.Marshal(records)
}

var unsafeUsername = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// Filename returns <platform>_<user>_<timestamp>.<ext>. The user keeps only
// ASCII letters, digits and underscores, others become underscores. The
// timestamp is ISO-8601 with colons and dots replaced by dashes.
func Filename(meta socialstats.ExportMeta, now time.Time, ext string) string {
	platform := string(meta.Platform)
	if platform == "" {
		platform = "content"
	}
	user := unsafeUsername.ReplaceAllString(meta.Username, "_")
	if user == "" {
		user = "user"
	}
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(now.UTC().Format("2006-01-02T15:04:05.000Z"))
	return fmt.Sprintf("%s_%s_%s.%s", platform, user, stamp, ext)
}

// column is one field of the tabular formats.
type column struct {
	header string
	value  func(r *socialstats.Record) string
}

func count(metric socialstats.Metric) func(r *socialstats.Record) string {
	return func(r *socialstats.Record) string {
		return strconv.FormatInt(r.Engagement.Count(metric), 10)
	}
}

var (
	idColumn       = column{"ID", func(r *socialstats.Record) string { return r.ID }}
	captionColumn  = column{"Caption", func(r *socialstats.Record) string { return r.Caption }}
	likesColumn    = column{"Likes", count(socialstats.MetricLikes)}
	viewsColumn    = column{"Views", count(socialstats.MetricViews)}
	commentsColumn = column{"Comments", count(socialstats.MetricComments)}
	sharesColumn   = column{"Shares", count(socialstats.MetricShares)}
	typeColumn     = column{"Type", func(r *socialstats.Record) string { return string(r.Kind) }}
	urlColumn      = column{"URL", func(r *socialstats.Record) string { return r.SourceURL }}
)

// columns returns the field set of a platform, with the date column
// rendered by date.
func columns(platform socialstats.Platform, date func(r *socialstats.Record) string) []column {
	dateColumn := column{"Date", date}
	switch platform {
	case socialstats.PlatformInstagram:
		return []column{idColumn, dateColumn, captionColumn, likesColumn, viewsColumn, commentsColumn, typeColumn, urlColumn}
	case socialstats.PlatformTikTok:
		return []column{idColumn, dateColumn, captionColumn, likesColumn, viewsColumn, commentsColumn, sharesColumn, urlColumn}
	}
	return []column{idColumn, dateColumn, captionColumn, likesColumn, viewsColumn, commentsColumn, sharesColumn, typeColumn, urlColumn}
}
