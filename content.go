package socialstats

import "context"

// PreviewSize caps the number of records returned as a preview.
const PreviewSize = 5

// CheckResult reports what a page view has harvested so far.
type CheckResult struct {
	Found    bool        `json:"found"`
	Platform Platform    `json:"platform"`
	PageType PageContext `json:"pageType"`
	Preview  []*Record   `json:"previewData"`
	Total    int         `json:"totalItems"`
}

// SortResult reports a completed sort.
type SortResult struct {
	Count    int       `json:"itemCount"`
	SortName string    `json:"sortName"`
	Preview  []*Record `json:"previewData"`
}

// ContentService exposes the harvested records of one page view.
//
// Sort and Export return an EEMPTY error while nothing is harvested and
// start a background collection attempt instead of failing permanently.
type ContentService interface {
	CheckContent(ctx context.Context) (*CheckResult, error)
	Sort(ctx context.Context, criterion SortCriterion) (*SortResult, error)
	Export(ctx context.Context, format ExportFormat) (*Export, error)
}

// Preview returns at most PreviewSize leading records.
func Preview(records []*Record) []*Record {
	if len(records) > PreviewSize {
		return records[:PreviewSize]
	}
	return records
}
