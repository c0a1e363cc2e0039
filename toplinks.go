// Package toplinks provides a scheduled pipeline that harvests links from
// news home pages, normalizes their text and publishes the result as a
// versioned dataset tracked with DVC and committed to git.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, exec/).
package toplinks
