// Package integrations provides HTTP clients for Maven repositories.
//
// # Overview
//
// This package contains the shared HTTP plumbing used to talk to remote
// Maven repositories. Repository-specific logic lives in subpackages:
//
//   - [maven]: POM downloads and the Maven Central search API
//
// # Client Pattern
//
// Clients embed [Client], which sets a libsgen User-Agent and translates
// HTTP status codes into two sentinels:
//
//   - [ErrNotFound] for 404 responses
//   - [ErrNetwork] for transport failures and other error statuses
//
// Callers distinguish them with [errors.Is]. A 404 usually means "try the
// next repository"; anything else aborts resolution.
//
// There is no response caching and no retry: every resolution reads the
// repositories afresh and a failure is reported immediately.
//
// [maven]: github.com/matzehuels/libsgen/pkg/integrations/maven
package integrations
