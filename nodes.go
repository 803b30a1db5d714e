package anki

// NodeType is the tag of the Node union.
type NodeType int

// Enumerates the different kinds of nodes in a parsed template.
const (
	NodeEmpty              NodeType = iota // Renders nothing.
	NodeText                               // Literal text.
	NodeReplacement                        // {{filters:Key}}
	NodeConditional                        // {{#Key}}...{{/Key}}
	NodeNegatedConditional                 // {{^Key}}...{{/Key}}
	NodeSequence                           // Several sibling nodes.
)

func (t NodeType) String() string {
	switch t {
	case NodeEmpty:
		return "empty"
	case NodeText:
		return "text"
	case NodeReplacement:
		return "replacement"
	case NodeConditional:
		return "conditional"
	case NodeNegatedConditional:
		return "negated_conditional"
	case NodeSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Node is one element of a parsed template. Which fields are meaningful
// depends on Type. Nodes are never modified after parsing, so a tree can be
// shared between goroutines.
type Node struct {
	Type NodeType

	Text string // NodeText: the literal.

	Key     string   // Replacement and conditionals: the field name.
	Filters []string // NodeReplacement: filters in application order.
	Tag     string   // NodeReplacement: the handlebar content as written.

	Child    *Node   // Conditionals: the guarded section.
	Children []*Node // NodeSequence: at least two nodes.
}

var emptyNode = &Node{Type: NodeEmpty}

// EmptyNode returns the node that renders nothing.
func EmptyNode() *Node { return emptyNode }

// TextNode returns a literal text node.
func TextNode(text string) *Node {
	return &Node{Type: NodeText, Text: text}
}

// ReplacementNode returns a node emitting field key after applying filters.
func ReplacementNode(key string, filters []string, tag string) *Node {
	return &Node{Type: NodeReplacement, Key: key, Filters: filters, Tag: tag}
}

// ConditionalNode returns a node rendering child only when key is non-empty.
func ConditionalNode(key string, child *Node) *Node {
	return &Node{Type: NodeConditional, Key: key, Child: child}
}

// NegatedConditionalNode returns a node rendering child only when key is empty.
func NegatedConditionalNode(key string, child *Node) *Node {
	return &Node{Type: NodeNegatedConditional, Key: key, Child: child}
}

// SequenceNode composes siblings: no node collapses to EmptyNode and a single
// node is returned as is.
func SequenceNode(nodes []*Node) *Node {
	switch len(nodes) {
	case 0:
		return emptyNode
	case 1:
		return nodes[0]
	default:
		return &Node{Type: NodeSequence, Children: nodes}
	}
}
