// Package document models the nested editor tree that templates are authored
// in. Nodes are a tagged variant: a Text node carries only text, an Element
// carries an owning identifier, inline content, attributes and children, and
// a Container only groups children (project, page and frame wrappers).
package document

// Kind tags the variant a Node holds.
type Kind uint8

const (
	KindContainer Kind = iota
	KindElement
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	default:
		return "container"
	}
}

// Node is one entry of the document tree. Which fields are meaningful depends
// on Kind; constructors below set the right combination.
type Node struct {
	Kind       Kind              `json:"kind"`
	ID         string            `json:"id,omitempty"`
	Tag        string            `json:"tag,omitempty"`
	Content    string            `json:"content,omitempty"`
	Text       string            `json:"text,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Children   []Node            `json:"children,omitempty"`
}

// Text returns a text node.
func Text(text string) Node {
	return Node{Kind: KindText, Text: text}
}

// Element returns an element node with the given tag and children.
func Element(tag string, children ...Node) Node {
	return Node{Kind: KindElement, Tag: tag, Children: children}
}

// Container returns a grouping node.
func Container(children ...Node) Node {
	return Node{Kind: KindContainer, Children: children}
}

// WithID returns a copy of an element carrying id as its owning identifier.
func (n Node) WithID(id string) Node {
	n.ID = id
	return n
}

// WithContent returns a copy of an element with inline content.
func (n Node) WithContent(content string) Node {
	n.Content = content
	return n
}

// WithAttr returns a copy of an element with the attribute set. The attribute
// map is copied so the receiver is left untouched.
func (n Node) WithAttr(name, value string) Node {
	attrs := make(map[string]string, len(n.Attributes)+1)
	for k, v := range n.Attributes {
		attrs[k] = v
	}
	attrs[name] = value
	n.Attributes = attrs
	return n
}

// OwnerID returns the identifier an element declares, preferring the ID
// field over an "id" attribute. Non-elements never declare one.
func (n Node) OwnerID() string {
	if n.Kind != KindElement {
		return ""
	}
	if n.ID != "" {
		return n.ID
	}
	return n.Attributes["id"]
}

// Walk visits n and its descendants in depth-first pre-order. Returning false
// from fn skips the node's children.
func Walk(n Node, fn func(path []int, node Node) bool) {
	walk(n, nil, fn)
}

func walk(n Node, path []int, fn func([]int, Node) bool) {
	if !fn(path, n) {
		return
	}
	for i, child := range n.Children {
		walk(child, append(path[:len(path):len(path)], i), fn)
	}
}
