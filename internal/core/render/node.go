package render

import "sort"

// Kind identifies the primitive a Node stands for.
type Kind int

// Node kinds.
const (
	KindEmpty Kind = iota
	KindPressable
	KindView
	KindImage
	KindText
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPressable:
		return "pressable"
	case KindView:
		return "view"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Region attribute values set on the default card's nodes.
const (
	AttrRegion = "region"

	RegionCard        = "card"
	RegionMetadata    = "metadata"
	RegionTextColumn  = "text"
	RegionImage       = "image"
	RegionTitle       = "title"
	RegionDescription = "description"
)

// Box is a width and height in layout units.
type Box struct {
	Width  float64
	Height float64
}

// Node is one element of a rendered preview.
type Node struct {
	Kind Kind

	// Role is the accessibility role ("button", "image").
	Role string

	Style Style

	// Text and MaxLines are set on text nodes.
	Text     string
	MaxLines int

	// Source and Box are set on image nodes.
	Source string
	Box    Box

	// OnPress is only set on pressable nodes.
	OnPress func()

	Attrs    map[string]string
	Children []*Node
}

// Empty returns the node rendered when nothing should be shown.
func Empty() *Node {
	return &Node{Kind: KindEmpty}
}

// IsEmpty reports whether n renders nothing.
func (n *Node) IsEmpty() bool {
	return n == nil || n.Kind == KindEmpty
}

// Attr returns the attribute value for key, or "".
func (n *Node) Attr(key string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// Walk visits n and its descendants depth-first.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Find returns the first node (depth-first) matching pred, or nil.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if pred(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindRegion returns the first node whose region attribute is region.
func (n *Node) FindRegion(region string) *Node {
	return n.Find(func(node *Node) bool {
		return node.Attr(AttrRegion) == region
	})
}

// Style is a set of presentation properties.
// Keys follow the camel-case names used by the terminal card ("padding",
// "flexDirection", "marginRight").
type Style map[string]string

// Flatten merges styles left to right; later values win. Nil styles are skipped.
// The result is always a new map.
func Flatten(styles ...Style) Style {
	out := Style{}
	for _, s := range styles {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// Get returns the value for key, or "".
func (s Style) Get(key string) string {
	return s[key]
}

// Keys returns the style keys in sorted order.
func (s Style) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
