// Package bloom provides a probabilistic "already seen" set for harvested
// record identifiers and node fingerprints.
package bloom

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter answers "possibly seen" or "definitely not seen" for identifiers.
// Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected identifiers with the
// given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records an identifier.
func (f *Filter) Add(id string) {
	f.f.AddString(id)
}

// Test reports whether id may have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(id string) bool {
	return f.f.TestString(id)
}

// AddFingerprint records a node fingerprint.
func (f *Filter) AddFingerprint(fp uint64) {
	f.f.Add(fingerprintKey(fp))
}

// TestFingerprint reports whether fp may have been added.
func (f *Filter) TestFingerprint(fp uint64) bool {
	return f.f.Test(fingerprintKey(fp))
}

// EstimatedCount returns the approximate number of entries in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Fingerprints share the filter with string ids, so they carry a one-byte
// tag that no id string starts with.
func fingerprintKey(fp uint64) []byte {
	key := make([]byte, 9)
	key[0] = 0xff
	binary.BigEndian.PutUint64(key[1:], fp)
	return key
}
