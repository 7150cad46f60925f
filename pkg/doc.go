// Package pkg provides the libraries behind libsgen, which turns a Maven
// project's dependency tree into a JSON libraries file.
//
// # Overview
//
// The libraries file lists one {"name", "url"} record per dependency that
// survives the configured filters:
//
//	{"libs":[{"name":"com.acme:lib:1.0","url":"https://repo1.maven.org/maven2/com/acme/lib/1.0/lib-1.0.jar"}]}
//
// # Architecture
//
// The data flow through libsgen:
//
//	pom.xml or groupId:artifactId[:version]
//	         ↓
//	    [maven] package (effective POM model, local + remote repositories)
//	         ↓
//	    [deps] package (walk the tree, dedupe by group and artifact)
//	         ↓
//	    [filter] package (dependency patterns, then scopes)
//	         ↓
//	    [manifest] package (names, download URLs, write or diff)
//
// # Quick Start
//
//	builder := maven.NewProjectBuilder(local, []maven.Repository{maven.Central()})
//	root, _ := builder.Load(ctx, "pom.xml")
//
//	chain, _ := filter.FromConfig(filter.Config{
//	    Scope: filter.Rules{Excludes: []string{"test", "provided"}},
//	})
//	gen := &manifest.Generator{Walker: deps.NewWalker(builder), Filters: chain}
//	res, _ := gen.Generate(ctx, root)
//	_ = manifest.Write("target/app-1.0.jar.json", res.Manifest, true)
//
// # Package Organization
//
// [deps] - Dependency and artifact model, the Project and Resolver
// capabilities, and the tree walker.
//
// [filter] - Include/exclude rule sets: the regular-expression pattern
// filter, the exact-match scope filter, and the chain carrying both.
//
// [maven] - POM parsing and the effective model: parent inheritance,
// property interpolation, dependency management and BOM imports. Its
// ProjectBuilder is the walker's Resolver.
//
// [manifest] - The libraries file: generation, URL construction, encoding
// and diffing.
//
// [integrations] - Shared HTTP client; [integrations/maven] fetches POMs
// and looks up latest versions on Maven Central.
//
// [render/nodelink] - Dependency discovery graphs rendered with Graphviz.
//
// [observability] - Hooks for resolution progress and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// [buildinfo] - Version information injected at build time.
//
// [deps]: https://pkg.go.dev/github.com/matzehuels/libsgen/pkg/deps
// [filter]: https://pkg.go.dev/github.com/matzehuels/libsgen/pkg/filter
// [maven]: https://pkg.go.dev/github.com/matzehuels/libsgen/pkg/maven
// [manifest]: https://pkg.go.dev/github.com/matzehuels/libsgen/pkg/manifest
// [integrations]: https://pkg.go.dev/github.com/matzehuels/libsgen/pkg/integrations
// [integrations/maven]: https://pkg.go.dev/github.com/matzehuels/libsgen/pkg/integrations/maven
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/libsgen/pkg/render/nodelink
// [observability]: https://pkg.go.dev/github.com/matzehuels/libsgen/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/libsgen/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/libsgen/pkg/buildinfo
package pkg
