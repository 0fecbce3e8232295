// Package socialstats harvests posts and videos from social media pages,
// normalizes their abbreviated counters and relative dates into typed
// values, deduplicates them across repeated scans, and serves the
// accumulated set through stable sort and export operations.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package socialstats
