package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Policy is the allow-list applied to rendered HTML. Elements outside Tags
// are unwrapped (their children survive) unless listed in Strip, in which
// case they are removed together with their content.
type Policy struct {
	Tags      map[string]bool
	Strip     map[string]bool
	Global    map[string]bool
	Attrs     map[string]map[string]bool
	URLAttrs  map[string]bool
	Protocols map[string]bool
}

func set(values ...string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}

// DefaultPolicy allows prose, lists, tables, inline formatting, code,
// blockquotes, links and rules. Anchors keep href, title and rel; headings
// keep only id; link targets are limited to http, https, mailto and
// relative references.
func DefaultPolicy() *Policy {
	return &Policy{
		Tags: set(
			"p", "div", "span", "br",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"ul", "ol", "li", "blockquote", "pre", "code",
			"strong", "em", "del", "a", "hr",
			"table", "thead", "tbody", "tr", "th", "td",
		),
		Strip: set("script", "style", "iframe", "object", "embed", "form", "input", "img",
			"textarea", "select", "button", "template", "noscript", "svg", "math"),
		Global: set("lang"),
		Attrs: map[string]map[string]bool{
			"a":    set("href", "title", "rel"),
			"h1":   set("id"),
			"h2":   set("id"),
			"h3":   set("id"),
			"h4":   set("id"),
			"h5":   set("id"),
			"h6":   set("id"),
			"code": set("class"),
			"pre":  set("class"),
		},
		URLAttrs:  set("href"),
		Protocols: set("http", "https", "mailto"),
	}
}

var headingTags = set("h1", "h2", "h3", "h4", "h5", "h6")

// Sanitize parses an HTML fragment and returns the allow-listed tree.
func (p *Policy) Sanitize(fragment []byte) (*Tree, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("markdown sanitize: %w", err)
	}

	tree := &Tree{}
	for _, node := range nodes {
		tree.Children = append(tree.Children, p.convert(node)...)
	}
	return tree, nil
}

func (p *Policy) convert(n *html.Node) []*Node {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		return []*Node{{Kind: TextNode, Text: n.Data}}
	case html.ElementNode:
	default:
		// comments, doctypes and goldmark's raw HTML markers
		return nil
	}

	if n.Namespace != "" {
		return nil
	}
	tag := strings.ToLower(n.Data)
	if p.Strip[tag] {
		return nil
	}
	if tag == "pre" {
		if block := p.codeBlock(n); block != nil {
			return []*Node{block}
		}
	}

	children := p.convertChildren(n)
	if !p.Tags[tag] {
		return children
	}
	return []*Node{{
		Kind:     ElementNode,
		Tag:      tag,
		Attrs:    p.filterAttrs(tag, n.Attr),
		Children: children,
	}}
}

func (p *Policy) convertChildren(n *html.Node) []*Node {
	var out []*Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, p.convert(child)...)
	}
	return out
}

// codeBlock lifts <pre><code class="language-x">...</code></pre> into a
// CodeBlockNode carrying the raw code and its language.
func (p *Policy) codeBlock(pre *html.Node) *Node {
	var code *html.Node
	for child := pre.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case child.Type == html.ElementNode && child.DataAtom == atom.Code && code == nil:
			code = child
		case child.Type == html.TextNode && strings.TrimSpace(child.Data) == "":
		case child.Type == html.CommentNode:
		default:
			return nil
		}
	}
	if code == nil {
		return nil
	}

	class := ""
	for _, attr := range code.Attr {
		if attr.Key == "class" {
			class = safeClass(attr.Val)
		}
	}
	language := ""
	for _, token := range strings.Fields(class) {
		if strings.HasPrefix(token, "language-") {
			language = strings.TrimPrefix(token, "language-")
			break
		}
	}

	return &Node{
		Kind:     CodeBlockNode,
		Tag:      "pre",
		Text:     rawText(code),
		Language: language,
		Class:    class,
	}
}

func rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func (p *Policy) filterAttrs(tag string, attrs []html.Attribute) []Attribute {
	var out []Attribute
	for _, attr := range attrs {
		if attr.Namespace != "" {
			continue
		}
		key := strings.ToLower(attr.Key)
		if !p.Global[key] && !p.Attrs[tag][key] {
			continue
		}
		val := attr.Val
		if p.URLAttrs[key] {
			if !p.allowedURL(val) {
				continue
			}
		}
		if key == "class" {
			val = safeClass(val)
			if val == "" {
				continue
			}
		}
		out = append(out, Attribute{Key: key, Val: val})
	}
	return out
}

// allowedURL accepts relative references and absolute URLs whose scheme is
// in the protocol allow-list. Control characters and whitespace are ignored
// when detecting the scheme, as browsers do.
func (p *Policy) allowedURL(raw string) bool {
	var sb strings.Builder
	for _, r := range raw {
		if r <= ' ' || r == 0x7f {
			continue
		}
		sb.WriteRune(r)
	}
	cleaned := sb.String()
	if cleaned == "" {
		return false
	}

	end := strings.IndexAny(cleaned, "/?#")
	head := cleaned
	if end >= 0 {
		head = cleaned[:end]
	}
	colon := strings.IndexByte(head, ':')
	if colon < 0 {
		return true
	}
	return p.Protocols[strings.ToLower(head[:colon])]
}

func safeClass(value string) string {
	var tokens []string
	for _, token := range strings.Fields(value) {
		if isClassToken(token) {
			tokens = append(tokens, token)
		}
	}
	return strings.Join(tokens, " ")
}

func isClassToken(token string) bool {
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '+', r == '#', r == '.':
		default:
			return false
		}
	}
	return token != ""
}
