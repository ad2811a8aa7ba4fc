// Package pagedoc turns web pages into formatted documents.
// It fetches pages, extracts their headings, paragraphs and list items, and
// replays that content into newly created documents on a document-editing
// service. A small relay server forwards URLs to an automation webhook and
// exposes the most recent callback result.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gdocs/, sqlite/).
package pagedoc
