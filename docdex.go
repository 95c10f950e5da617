// Package docdex provides a bounded, polite crawler for documentation
// sites and a keyword-searchable corpus built from the crawled pages.
// The crawler walks a site depth-first within a configured scope,
// extracts the main content region of each page as markdown, and
// serializes the collected documents to a single JSON corpus file
// consumed by the search and serving commands.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, htmltomarkdown/).
package docdex
