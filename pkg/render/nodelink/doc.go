// Package nodelink renders dependency discovery graphs as node-link diagrams.
//
// # Overview
//
// A [Graph] is filled while the dependency walker runs: pass [Graph.Visit]
// to deps.WithVisitor and every declared dependency becomes an edge from the
// project that declared it. Nodes filtered out of the manifest can be flagged
// with [Graph.MarkExcluded].
//
// # Usage
//
//	g := nodelink.NewGraph("com.acme:app:1.0")
//	walker := deps.NewWalker(resolver, deps.WithVisitor(g.Visit))
//	list, err := walker.WalkTree(ctx, root)
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.Render(ctx, dot, nodelink.FormatSVG)
//
// # Output
//
// [ToDOT] produces Graphviz DOT source with left-to-right layout. Excluded
// nodes are dashed and edges to dependencies that were already discovered
// elsewhere are dotted. [Render] turns the source into SVG or PNG
// in-process.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for rendering, which
// needs no external Graphviz installation.
package nodelink
