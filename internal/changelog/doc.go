// Package changelog turns the markdown bodies of deliverable records and the
// commit log into ordered entries.
//
// This package implements:
//   - A single line-oriented section scanner parameterized by a Strategy
//   - Changelog parsing (`### <date>` groups of free text)
//   - Commit log parsing (`- <message> — *<author>*` bullets under date headings)
//   - Latest-entry and last-date extraction used by the roadmap views
//   - Terminal formatting for the CLI
//
// Parsing never fails: malformed structure falls back to a documented default
// (dropped group, empty date, empty author) and absent input yields no entries.
package changelog
