// pkg/filterconfig/validate.go
package filterconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const documentSchema = `{
	"type": "object",
	"properties": {
		"filters": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"groupId": {"type": "integer", "minimum": 1},
					"sort": {"type": "integer"},
					"display": {"type": "string", "enum": ["checkbox"]}
				},
				"required": ["groupId"],
				"additionalProperties": false
			}
		}
	},
	"required": ["filters"],
	"additionalProperties": false
}`

var schema = gojsonschema.NewStringLoader(documentSchema)

// Validate checks a raw configuration document against the schema and
// returns a single error listing every violation.
func Validate(raw []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("filter config is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid filter config: %s", strings.Join(msgs, "; "))
}

// Decode validates and unmarshals a raw configuration document.
func Decode(raw []byte) (*Document, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and decodes a configuration document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
