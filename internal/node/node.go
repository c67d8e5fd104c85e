// Package node exposes the selection strategies as host plugin nodes.
//
// A node never fails towards its host: any error, including a panic during
// selection, comes back as a string starting with "Error: ".
package node

import (
	"fmt"

	"github.com/bagtoad/pathpick/internal/selector"
)

// ErrorPrefix starts every failed result.
const ErrorPrefix = "Error: "

// Category groups the nodes in a host's menu.
const Category = "Utilities"

// Input describes one parameter a host should render for a node.
type Input struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default any    `json:"default"`
	Tooltip string `json:"tooltip,omitempty"`
	Min     *int   `json:"min,omitempty"`
	Max     *int   `json:"max,omitempty"`
	Step    *int   `json:"step,omitempty"`
}

// Args are the values a host passes to Run and IsChanged.
type Args struct {
	Directory  string `json:"directory"`
	Extensions string `json:"extensions"`
	Index      int    `json:"index"`
}

// Node is one selection strategy as seen by a host.
type Node struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Category    string   `json:"category"`
	Inputs      []Input  `json:"inputs"`
	ReturnNames []string `json:"return_names"`

	strategy selector.Strategy
	sel      *selector.Selector
}

// Strategy returns the selection rule this node applies.
func (n *Node) Strategy() selector.Strategy { return n.strategy }

// Select runs the selection and returns the typed result.
func (n *Node) Select(args Args) (string, error) {
	return n.sel.Select(n.strategy, selector.Request{
		Directory:  args.Directory,
		Extensions: args.Extensions,
		Index:      args.Index,
	})
}

// Run returns the selected path, or ErrorPrefix followed by a description.
func (n *Node) Run(args Args) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("%s%v", ErrorPrefix, r)
		}
	}()

	path, err := n.Select(args)
	if err != nil {
		return ErrorPrefix + err.Error()
	}
	return path
}

// IsChanged returns a change token for args. It reruns the selection, so a
// host comparing tokens across calls sees a difference whenever the picked
// path (or the error) differs. For the random node that is most calls.
func (n *Node) IsChanged(args Args) string {
	return n.Run(args)
}

func intPtr(v int) *int { return &v }

func commonInputs() []Input {
	return []Input{
		{Name: "directory", Type: "STRING", Default: ""},
		{Name: "extensions", Type: "STRING", Default: "", Tooltip: "File types (e.g. 'png|jpg'). Blank = any."},
	}
}

func indexInput() Input {
	return Input{
		Name:    "index",
		Type:    "INT",
		Default: 0,
		Min:     intPtr(0),
		Max:     intPtr(selector.MaxIndex),
		Step:    intPtr(1),
	}
}
