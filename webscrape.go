// Package webscrape extracts structured, deduplicated text content from
// arbitrary web pages for downstream dataset construction. It walks DOM
// trees to separate main content from boilerplate, synthesizes fee/program
// lines from heterogeneous table layouts, sweeps content hidden behind
// tabs/accordions/pagination, and maintains line- and capture-level
// deduplication memory with durable persistence.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package webscrape
