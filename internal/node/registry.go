package node

import (
	"github.com/bagtoad/pathpick/internal/selector"
)

// Node names. Each doubles as the display name.
const (
	LastModifiedPath = "Last Modified Path"
	RandomPath       = "Random Path"
	IndexedPath      = "Indexed Path"
)

// Registry holds the nodes in registration order.
type Registry struct {
	nodes  []*Node
	byName map[string]*Node
}

// NewRegistry builds the three path nodes on top of sel.
func NewRegistry(sel *selector.Selector) *Registry {
	r := &Registry{byName: make(map[string]*Node)}

	r.add(&Node{
		Name:     LastModifiedPath,
		Inputs:   commonInputs(),
		strategy: selector.StrategyLastModified,
	}, sel)
	r.add(&Node{
		Name:     RandomPath,
		Inputs:   commonInputs(),
		strategy: selector.StrategyRandom,
	}, sel)
	r.add(&Node{
		Name:     IndexedPath,
		Inputs:   append(commonInputs(), indexInput()),
		strategy: selector.StrategyIndexed,
	}, sel)

	return r
}

func (r *Registry) add(n *Node, sel *selector.Selector) {
	n.DisplayName = n.Name
	n.Category = Category
	n.ReturnNames = []string{"file_path"}
	n.sel = sel
	r.nodes = append(r.nodes, n)
	r.byName[n.Name] = n
}

// Nodes returns all nodes in registration order.
func (r *Registry) Nodes() []*Node {
	return r.nodes
}

// Lookup finds a node by its unique name.
func (r *Registry) Lookup(name string) (*Node, bool) {
	n, ok := r.byName[name]
	return n, ok
}

// ForStrategy returns the node that applies s.
func (r *Registry) ForStrategy(s selector.Strategy) (*Node, bool) {
	for _, n := range r.nodes {
		if n.strategy == s {
			return n, true
		}
	}
	return nil, false
}

// DisplayNames maps each node name to its display name.
func (r *Registry) DisplayNames() map[string]string {
	m := make(map[string]string, len(r.nodes))
	for _, n := range r.nodes {
		m[n.Name] = n.DisplayName
	}
	return m
}
