package markdown

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-slug"
)

const fallbackHeadingID = "section"

// assignHeadingIDs sets a slug id on every heading. The first heading with a
// given slug keeps it bare; later ones get -1, -2 and so on.
func assignHeadingIDs(tree *Tree) {
	used := map[string]int{}
	tree.Walk(func(n *Node) bool {
		if !headingTags[n.Tag] || n.Kind != ElementNode {
			return true
		}
		id := uniqueID(used, headingSlug(n.TextContent()))
		attrs := make([]Attribute, 0, len(n.Attrs)+1)
		for _, attr := range n.Attrs {
			if attr.Key != "id" {
				attrs = append(attrs, attr)
			}
		}
		n.Attrs = append([]Attribute{{Key: "id", Val: id}}, attrs...)
		return false
	})
}

func headingSlug(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackHeadingID
	}
	normalized, err := slug.Normalize(text)
	if err != nil || normalized == "" {
		return fallbackHeadingID
	}
	return normalized
}

func uniqueID(used map[string]int, base string) string {
	count, seen := used[base]
	if !seen {
		used[base] = 0
		return base
	}
	for {
		count++
		candidate := base + "-" + strconv.Itoa(count)
		if _, taken := used[candidate]; !taken {
			used[base] = count
			used[candidate] = 0
			return candidate
		}
	}
}
