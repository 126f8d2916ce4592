// Package content discovers markdown posts on disk, joins validated
// frontmatter with derived metadata (slug, topic, reading time) and exposes
// the resulting corpus through a read-only Store.
package content
