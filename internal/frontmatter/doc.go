// Package frontmatter splits a markdown document into its YAML metadata
// block and body, and validates the metadata against the required post
// schema (title, date, description, optional tags).
//
// Validation is fail-closed: Validate returns either a fully normalised
// Frontmatter or a *ValidationError naming the offending source.
package frontmatter
