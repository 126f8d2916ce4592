package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Record is the untyped mapping decoded from a frontmatter block.
type Record map[string]any

// yamlFormat restricts detection to the "---" YAML fences; TOML and JSON
// frontmatter are not part of the content format.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Split separates the frontmatter block of source from its markdown body.
// A document without a leading "---" block yields a *ValidationError, as
// does a block whose YAML fails to decode. An empty block returns an empty
// Record and no error so Validate can report it.
func Split(source []byte, sourceID string) (Record, []byte, error) {
	var record Record
	body, err := frontmatter.MustParse(bytes.NewReader(source), &record, yamlFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return nil, nil, newValidationError(sourceID, reasonMissing, nil)
		}
		return nil, nil, newValidationError(sourceID,
			fmt.Sprintf("Invalid YAML in frontmatter: %v", err), err)
	}
	if record == nil {
		record = Record{}
	}
	return record, body, nil
}

// Strip returns source without its leading frontmatter block. Text that
// carries no block is returned unchanged, so Strip is idempotent.
func Strip(source []byte) []byte {
	var discard map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &discard, yamlFormat)
	if err != nil {
		return source
	}
	return body
}
