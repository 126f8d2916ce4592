package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const contentModuleArtifact = "content module"

//go:embed schemas/content_module.schema.json
var contentModuleSchema []byte

var (
	contentModuleOnce     sync.Once
	contentModuleCompiled *jsonschema.Schema
	contentModuleErr      error
)

// ContentModuleSchema returns the raw JSON schema of the content artifact.
func ContentModuleSchema() []byte {
	return append([]byte(nil), contentModuleSchema...)
}

// ValidateContentModule checks a content artifact against the embedded
// schema. artifact may be any value that encodes to JSON, or the encoded
// bytes themselves.
func ValidateContentModule(artifact any) error {
	contentModuleOnce.Do(func() {
		contentModuleCompiled, contentModuleErr = compileSchema("content_module.schema.json", contentModuleSchema)
	})
	if contentModuleErr != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, contentModuleErr)
	}

	encoded, ok := artifact.([]byte)
	if !ok {
		var err error
		encoded, err = json.Marshal(artifact)
		if err != nil {
			return fmt.Errorf("%w: encode artifact: %v", ErrSchemaValidation, err)
		}
	}

	var document any
	if err := json.Unmarshal(encoded, &document); err != nil {
		return fmt.Errorf("%w: decode artifact: %v", ErrSchemaValidation, err)
	}
	return validateArtifact(contentModuleArtifact, contentModuleCompiled, document)
}
