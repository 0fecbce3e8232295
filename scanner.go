package socialstats

import "context"

// RecordIndex answers whether an item was already harvested.
type RecordIndex interface {
	// Has reports whether a record with the identifier exists.
	Has(id string) bool

	// HasFingerprint reports whether a record was harvested from an
	// id-less node with the given markup fingerprint.
	HasFingerprint(fp uint64) bool
}

// ScanResult is the outcome of one pass over a document snapshot.
type ScanResult struct {
	Platform Platform
	Context  PageContext

	// Username is the account the page belongs to, or a platform default.
	Username string

	// Pattern is the selector pattern whose matches were scanned.
	Pattern string

	// Matched counts the candidate item nodes found.
	Matched int

	// Records holds newly extracted records in document order.
	Records []*Record

	// Rejected counts nodes whose extraction failed.
	Rejected int

	// ItemCount is the item total shown on the page, or 0 when absent.
	ItemCount int

	// Reorder describes the item layout of the page context.
	Reorder ReorderPlan
}

// Scanner extracts records the index has not seen yet from a snapshot.
type Scanner interface {
	Scan(snap *Snapshot, seen RecordIndex) (*ScanResult, error)
}

// DocumentSource provides snapshots of a live or saved document.
type DocumentSource interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// ChangeKind distinguishes document change notifications.
type ChangeKind string

// Change kinds.
const (
	ChangeNodesAdded ChangeKind = "mutation"
	ChangeScrolled   ChangeKind = "scroll"
)

// Change reports a structural mutation or a scroll of a document.
type Change struct {
	Kind ChangeKind `json:"type"`

	// AddedNodes counts the nodes inserted by a mutation batch.
	AddedNodes int `json:"added"`

	// ScrollY is the vertical scroll position after a scroll.
	ScrollY int `json:"y"`
}

// ChangeSource streams change notifications for a document. The channel is
// closed when ctx is done or the document goes away.
type ChangeSource interface {
	Changes(ctx context.Context) (<-chan Change, error)
}

// ReorderPlan tells a Reorderer where item nodes live in the document.
type ReorderPlan struct {
	// Container locates the parent to re-append items to. Empty means the
	// parent of the first item.
	Container string `yaml:"container"`

	// Items locates the item nodes.
	Items string `yaml:"items"`

	// Link locates, within an item, the link carrying the record identifier.
	Link string `yaml:"link"`
}

// Reorderer rearranges item nodes of a live document to follow ids.
type Reorderer interface {
	// Reorder returns the number of nodes moved.
	Reorder(ctx context.Context, plan ReorderPlan, ids []string) (int, error)
}

// Page is a live document that can be observed and rearranged.
type Page interface {
	DocumentSource
	ChangeSource
	Reorderer
	Close() error
}

// Browser opens live pages.
type Browser interface {
	Open(ctx context.Context, url string) (Page, error)
}

// CaptionConverter turns caption markup into plain text.
type CaptionConverter interface {
	Convert(html string) (string, error)
}
