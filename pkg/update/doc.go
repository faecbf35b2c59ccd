// Package update provides small, dependency-free helpers for deciding whether
// an application install or update should proceed.
//
// It is designed to be useful for any tool that tracks a locally installed
// version against a remote release source and wants conservative guardrails:
// never downgrade, never reinstall what is already current.
//
// This package intentionally does not perform downloads, checksum
// verification, or installation. It focuses on ordering two version strings
// and mapping that ordering to a decision.
//
// Version model
//   - Dot-delimited numeric segments ("1.92.1", "120.0.6099.71").
//   - Segments are compared numerically after stripping non-digit characters;
//     missing segments count as zero, so "1.2" equals "1.2.0".
//   - Pre-release suffixes are NOT ordered: "2.0.0-beta" compares equal to
//     "2.0.0". This matches the historical update workflow and is documented
//     on Compare as a known limitation.
//   - The sentinel "0.0.0" means "not installed".
package update
