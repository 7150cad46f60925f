// Package deps flattens a Maven project's dependency tree.
//
// # Overview
//
// A [Project] exposes two things: the dependencies it declares and the
// artifacts it directly depends on. A [Resolver] turns an [Artifact] into the
// Project described by its POM. The [Walker] combines the two:
//
//	w := deps.NewWalker(builder, deps.WithLogger(logger))
//	all, err := w.WalkTree(ctx, root)
//
// # Traversal
//
// WalkTree visits the root depth-first:
//
//  1. Each declared dependency is appended unless one with the same
//     (groupId, artifactId) [Key] is already present. The first one wins.
//  2. Each direct artifact of the root is resolved, and the resolved project
//     is visited in turn if it declares any dependencies.
//
// Nested projects only contribute their declared dependencies; their own
// artifacts are not resolved. [WithTransitive] lifts that restriction.
//
// # Failure
//
// A resolution failure anywhere aborts the walk with a *[ResolutionError]
// naming the artifact; there is no partial result and no retry. Re-entering
// an artifact that is still being walked fails with a *[CycleError].
//
// # Observing the walk
//
// [WithVisitor] receives every declared dependency as it is seen, together
// with the artifact that declared it. The CLI uses this to draw the graph.
package deps
