package markdown

import (
	"bytes"
	"html"
	"io"
	"strings"
)

// NodeKind discriminates the nodes of a rendered tree.
type NodeKind int

const (
	// TextNode carries literal text.
	TextNode NodeKind = iota
	// ElementNode is an allow-listed HTML element.
	ElementNode
	// CodeBlockNode is a fenced or indented code block, handed to a
	// CodeBlockRenderer instead of generic element output.
	CodeBlockNode
)

// Attribute is a sanitised element attribute.
type Attribute struct {
	Key string
	Val string
}

// Node is one element of the sanitised tree. Text holds the literal text
// of TextNode and the raw code of CodeBlockNode.
type Node struct {
	Kind     NodeKind
	Tag      string
	Attrs    []Attribute
	Text     string
	Language string
	Class    string
	Children []*Node
}

// Attr returns the value of key on an element.
func (n *Node) Attr(key string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// TextContent concatenates the text below n.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	switch n.Kind {
	case TextNode, CodeBlockNode:
		sb.WriteString(n.Text)
	default:
		for _, child := range n.Children {
			child.writeText(sb)
		}
	}
}

// Heading describes a heading of the tree for deep links.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Tree is the sanitised output of a render. Trees may be shared through the
// render cache and must be treated as read-only.
type Tree struct {
	Children []*Node
}

// Walk visits every node depth first. Returning false skips the children
// of the visited node.
func (t *Tree) Walk(visit func(*Node) bool) {
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, node := range nodes {
			if visit(node) {
				walk(node.Children)
			}
		}
	}
	walk(t.Children)
}

// Headings lists the headings of the tree in document order.
func (t *Tree) Headings() []Heading {
	var out []Heading
	t.Walk(func(n *Node) bool {
		if level := headingLevel(n); level > 0 {
			id, _ := n.Attr("id")
			out = append(out, Heading{Level: level, ID: id, Text: strings.TrimSpace(n.TextContent())})
			return false
		}
		return true
	})
	return out
}

// CodeBlocks lists the code block nodes of the tree in document order.
func (t *Tree) CodeBlocks() []*Node {
	var out []*Node
	t.Walk(func(n *Node) bool {
		if n.Kind == CodeBlockNode {
			out = append(out, n)
		}
		return true
	})
	return out
}

// CodeBlockRenderer writes the presentation of a code block.
type CodeBlockRenderer func(w io.Writer, block *Node) error

// DefaultCodeBlockRenderer writes a <pre><code> pair tagged with the
// block's language class.
func DefaultCodeBlockRenderer(w io.Writer, block *Node) error {
	class := ""
	if block.Class != "" {
		class = ` class="` + html.EscapeString(block.Class) + `"`
	}
	_, err := io.WriteString(w, "<pre"+class+"><code"+class+">"+html.EscapeString(block.Text)+"</code></pre>")
	return err
}

// HTML serialises the tree using DefaultCodeBlockRenderer.
func (t *Tree) HTML() string {
	var buf bytes.Buffer
	_ = t.RenderHTML(&buf, nil)
	return buf.String()
}

// RenderHTML serialises the tree to w, delegating code blocks to
// codeBlocks (DefaultCodeBlockRenderer when nil).
func (t *Tree) RenderHTML(w io.Writer, codeBlocks CodeBlockRenderer) error {
	if codeBlocks == nil {
		codeBlocks = DefaultCodeBlockRenderer
	}
	for _, node := range t.Children {
		if err := renderNode(w, node, codeBlocks); err != nil {
			return err
		}
	}
	return nil
}

var voidElements = map[string]bool{"br": true, "hr": true}

func renderNode(w io.Writer, n *Node, codeBlocks CodeBlockRenderer) error {
	switch n.Kind {
	case TextNode:
		_, err := io.WriteString(w, html.EscapeString(n.Text))
		return err
	case CodeBlockNode:
		return codeBlocks(w, n)
	}

	var open strings.Builder
	open.WriteString("<" + n.Tag)
	for _, attr := range n.Attrs {
		open.WriteString(" " + attr.Key + `="` + html.EscapeString(attr.Val) + `"`)
	}
	open.WriteString(">")
	if _, err := io.WriteString(w, open.String()); err != nil {
		return err
	}
	if voidElements[n.Tag] {
		return nil
	}
	for _, child := range n.Children {
		if err := renderNode(w, child, codeBlocks); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+n.Tag+">")
	return err
}

func headingLevel(n *Node) int {
	if n.Kind != ElementNode || len(n.Tag) != 2 || n.Tag[0] != 'h' {
		return 0
	}
	if n.Tag[1] >= '1' && n.Tag[1] <= '6' {
		return int(n.Tag[1] - '0')
	}
	return 0
}
