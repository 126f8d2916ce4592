// Package markdown turns post bodies into a sanitised element tree. Bodies
// are parsed with goldmark (GFM, linkify, task lists), the resulting HTML is
// filtered through a tag, attribute and protocol allow-list, headings get
// slug ids, and fenced code is lifted into dedicated code block nodes.
//
// Renderer memoises trees in a render cache keyed by Fingerprint, and
// Tracker implements last-requested-wins for consumers that issue
// overlapping render requests.
package markdown
