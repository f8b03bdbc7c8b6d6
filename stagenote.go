// Package stagenote extracts structured metadata about live performances
// (title, date, venue, performers, program, price) from unstructured,
// mostly-Korean web pages describing concerts and recitals.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/); the
// extraction engine itself lives in extract/.
package stagenote
