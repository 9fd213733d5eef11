package document

import (
	"sort"
	"strings"
)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {},
	"track": {}, "wbr": {},
}

// Flatten renders the tree as flat HTML. Text and element content are
// emitted verbatim so placeholders survive untouched; attribute values only
// have double quotes escaped.
func Flatten(n Node) string {
	var b strings.Builder
	flatten(&b, n)
	return b.String()
}

func flatten(b *strings.Builder, n Node) {
	switch n.Kind {
	case KindText:
		b.WriteString(n.Text)
	case KindElement:
		tag := n.Tag
		if tag == "" {
			tag = "div"
		}
		b.WriteByte('<')
		b.WriteString(tag)
		writeAttributes(b, n)
		b.WriteByte('>')
		if _, void := voidElements[strings.ToLower(tag)]; void {
			return
		}
		b.WriteString(n.Content)
		for _, child := range n.Children {
			flatten(b, child)
		}
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteByte('>')
	default:
		for _, child := range n.Children {
			flatten(b, child)
		}
	}
}

func writeAttributes(b *strings.Builder, n Node) {
	attrs := n.Attributes
	if n.ID != "" && attrs["id"] == "" {
		attrs = make(map[string]string, len(n.Attributes)+1)
		for k, v := range n.Attributes {
			attrs[k] = v
		}
		attrs["id"] = n.ID
	}
	for _, name := range SortedAttributeNames(attrs) {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(strings.ReplaceAll(attrs[name], `"`, "&quot;"))
		b.WriteByte('"')
	}
}

// SortedAttributeNames returns the attribute names in a stable order.
func SortedAttributeNames(attrs map[string]string) []string {
	if len(attrs) == 0 {
		return nil
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
