package nodelink

import "github.com/matzehuels/libsgen/pkg/deps"

// RootID identifies the root project node.
const RootID = "__project__"

// Node is a dependency in the diagram.
type Node struct {
	ID       string // "group:artifact"
	Label    string
	Scope    string
	Excluded bool // Filtered out of the manifest
}

// Edge records that From's project declares To.
type Edge struct {
	From, To string
	// Repeat is set when To had already been discovered through another
	// project; the walker kept the earlier declaration.
	Repeat bool
}

// Graph collects the edges observed during a walk. The zero value is not
// usable; call [NewGraph].
type Graph struct {
	nodes []Node
	index map[string]int
	edges []Edge
	seen  map[[2]string]struct{}
}

// NewGraph returns a graph holding only the root node.
func NewGraph(rootLabel string) *Graph {
	g := &Graph{index: map[string]int{}, seen: map[[2]string]struct{}{}}
	g.AddNode(Node{ID: RootID, Label: rootLabel})
	return g
}

// AddNode adds n unless a node with the same ID exists. It reports whether
// n was added.
func (g *Graph) AddNode(n Node) bool {
	if _, ok := g.index[n.ID]; ok {
		return false
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return true
}

// AddEdge adds e unless an edge between the same nodes exists.
func (g *Graph) AddEdge(e Edge) {
	key := [2]string{e.From, e.To}
	if _, ok := g.seen[key]; ok {
		return
	}
	g.seen[key] = struct{}{}
	g.edges = append(g.edges, e)
}

// Node returns the node with id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// MarkExcluded flags the node with id as filtered out.
func (g *Graph) MarkExcluded(id string) {
	if i, ok := g.index[id]; ok {
		g.nodes[i].Excluded = true
	}
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge { return g.edges }

// Visit records one walker observation. It has the signature of
// deps.Visitor so it can be passed to deps.WithVisitor.
func (g *Graph) Visit(from deps.Artifact, dep deps.Dependency, added bool) {
	src := RootID
	if !from.IsZero() {
		src = from.Key().String()
	}
	id := dep.Key().String()
	if added {
		g.AddNode(Node{ID: id, Label: dep.Key().String() + "\n" + dep.Version, Scope: dep.Scope})
	}
	g.AddEdge(Edge{From: src, To: id, Repeat: !added})
}
