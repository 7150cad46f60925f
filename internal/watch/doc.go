// Package watch regenerates the libraries file whenever a watched POM or
// config file changes. Rapid bursts of events, such as an editor writing a
// temp file and renaming it over the original, are coalesced into a single
// regeneration.
package watch
