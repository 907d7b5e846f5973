package domain

import "strings"

// NodeType identifies the role of a node inside a flow graph.
type NodeType string

const (
	NodeStart      NodeType = "start"
	NodeQuestion   NodeType = "question"
	NodeEligible   NodeType = "eligible"
	NodeIneligible NodeType = "ineligible"
	NodeDefault    NodeType = "default"
)

// ParseNodeType validates a raw node type string.
func ParseNodeType(value string) (NodeType, bool) {
	switch NodeType(value) {
	case NodeStart, NodeQuestion, NodeEligible, NodeIneligible, NodeDefault:
		return NodeType(value), true
	default:
		return "", false
	}
}

// Terminal reports whether the type ends a flow walk.
func (t NodeType) Terminal() bool {
	return t == NodeEligible || t == NodeIneligible
}

// Node is a single step in a flow graph. Data holds the editor payload;
// at minimum a "label" entry.
type Node struct {
	ID   string
	Type NodeType
	Data map[string]string
}

// Label returns the node's display label, empty when unset.
func (n Node) Label() string {
	return strings.TrimSpace(n.Data["label"])
}

// Edge is a directed connection between two nodes. Condition is an
// optional boolean expression evaluated against collected answers; an
// empty condition always matches.
type Edge struct {
	ID        string
	Source    string
	Target    string
	Condition string
}

// StartNode returns the first node of type start, if any. The builder
// UI is responsible for keeping the graph well-formed; stored surveys
// may legitimately have zero or several start nodes while drafted.
func StartNode(nodes []Node) (Node, bool) {
	for _, n := range nodes {
		if n.Type == NodeStart {
			return n, true
		}
	}
	return Node{}, false
}
