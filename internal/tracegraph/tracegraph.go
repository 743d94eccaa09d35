// Package tracegraph exports a trace as a Graphviz digraph of step-kind
// transitions: one node per kind that occurs, one edge per observed
// "kind A is followed by kind B", weighted by how often it happens.
package tracegraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/go-analyze/bulk"

	"github.com/awmpietro/palindrome-trace/internal/palindrome"
)

// Transition is an ordered pair of consecutive step kinds.
type Transition struct {
	From, To palindrome.Kind
}

// Graph is the transition summary of one trace.
type Graph struct {
	Name string
	// Kinds in order of first appearance.
	Kinds []palindrome.Kind
	// Counts per transition; Order keeps first-appearance order.
	Counts map[Transition]int
	Order  []Transition
	// Occurrences per kind.
	Visits map[palindrome.Kind]int
}

// Build summarizes tr.
func Build(tr *palindrome.Trace) *Graph {
	steps := tr.Steps()
	kinds := make([]palindrome.Kind, len(steps))
	for i, s := range steps {
		kinds[i] = s.Kind()
	}
	var transitions []Transition
	for i := 1; i < len(kinds); i++ {
		transitions = append(transitions, Transition{From: kinds[i-1], To: kinds[i]})
	}

	return &Graph{
		Name:   graphName(tr.Algorithm()),
		Kinds:  firstSeen(kinds),
		Visits: bulk.SliceToCounts(kinds),
		Order:  firstSeen(transitions),
		Counts: bulk.SliceToCounts(transitions),
	}
}

func firstSeen[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	var out []T
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// DOT renders g in Graphviz syntax. Visit counts travel in the node
// comment attribute and transition counts in the edge weight.
func (g *Graph) DOT() (string, error) {
	out := gographviz.NewGraph()
	if err := out.SetName(g.Name); err != nil {
		return "", err
	}
	if err := out.SetDir(true); err != nil {
		return "", err
	}
	for _, k := range g.Kinds {
		attrs := map[string]string{
			"label":  quote(fmt.Sprintf("%s (%d)", k, g.Visits[k])),
			"comment": quote(strconv.Itoa(g.Visits[k])),
		}
		if err := out.AddNode(g.Name, string(k), attrs); err != nil {
			return "", fmt.Errorf("add node %s: %w", k, err)
		}
	}
	for _, t := range g.Order {
		n := g.Counts[t]
		attrs := map[string]string{
			"label":  quote(strconv.Itoa(n)),
			"weight": strconv.Itoa(n),
		}
		if err := out.AddEdge(string(t.From), string(t.To), true, attrs); err != nil {
			return "", fmt.Errorf("add edge %s->%s: %w", t.From, t.To, err)
		}
	}
	return out.String(), nil
}

// Export builds and renders tr in one call.
func Export(tr *palindrome.Trace) (string, error) {
	return Build(tr).DOT()
}

// Parse reads a graph produced by DOT back into its transition summary.
func Parse(dot string) (*Graph, error) {
	ast, err := gographviz.ParseString(dot)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DOT: %w", err)
	}
	parsed := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, parsed); err != nil {
		return nil, fmt.Errorf("failed to analyze DOT: %w", err)
	}

	g := &Graph{
		Name:   parsed.Name,
		Counts: map[Transition]int{},
		Visits: map[palindrome.Kind]int{},
	}
	for _, n := range parsed.Nodes.Nodes {
		k := palindrome.Kind(n.Name)
		v, err := strconv.Atoi(getAttr(n.Attrs, "comment"))
		if err != nil {
			return nil, fmt.Errorf("node %q: invalid visits: %w", n.Name, err)
		}
		g.Kinds = append(g.Kinds, k)
		g.Visits[k] = v
	}
	for _, e := range parsed.Edges.Edges {
		n, err := strconv.Atoi(getAttr(e.Attrs, "weight"))
		if err != nil {
			return nil, fmt.Errorf("edge %s->%s: invalid weight: %w", e.Src, e.Dst, err)
		}
		t := Transition{From: palindrome.Kind(e.Src), To: palindrome.Kind(e.Dst)}
		if g.Counts[t] == 0 {
			g.Order = append(g.Order, t)
		}
		g.Counts[t] += n
	}
	return g, nil
}

func graphName(a palindrome.Algorithm) string {
	if a == "" {
		return "trace"
	}
	return string(a)
}

func quote(s string) string {
	return strconv.Quote(s)
}

// getAttr reads a Graphviz attribute without its surrounding quotes.
func getAttr(attrs gographviz.Attrs, key string) string {
	val, ok := attrs[gographviz.Attr(key)]
	if !ok {
		return ""
	}
	val = strings.TrimSpace(val)
	if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
		val = val[1 : len(val)-1]
	}
	return val
}
