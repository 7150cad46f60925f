// Package filter decides which discovered dependencies end up in the
// libraries manifest.
//
// # Overview
//
// Two filters share one include/exclude policy:
//
//   - [PatternFilter] matches regular expressions against the dependency
//     coordinate "group<sep>artifact<sep>version".
//   - [ScopeFilter] compares the dependency scope against literal names.
//
// A [Chain] carries one of each and is usually built from configuration with
// [FromConfig].
//
// # Policy
//
// For a dependency d:
//
//  1. If includes are configured and one matches, d is included. If none
//     match, the fallback becomes "exclude".
//  2. If an exclude matches, d is excluded.
//  3. Otherwise the fallback applies ("include" when no includes exist).
//
// Includes are checked first, so an include match wins over an exclude that
// would also match. [Decision] reports which branch produced a verdict.
//
// # Patterns
//
// Pattern rules use Go regexp (RE2) syntax and must match the whole
// coordinate. Rules are compiled once in [NewPatternFilter]; a malformed rule
// is reported there with code INVALID_RULE.
package filter
