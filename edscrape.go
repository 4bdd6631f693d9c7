// Package edscrape extracts editorial articles from news sites.
// It discovers article URLs, loads their HTML, runs an ordered set of
// fallback heuristics to locate the title, publication date, author and
// body paragraphs, and persists each accepted article as a markdown file.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package edscrape
