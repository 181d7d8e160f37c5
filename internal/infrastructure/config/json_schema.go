package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

const schemaID = "https://github.com/bnema/dockpop/config.schema.json"

// Schema reflects Config into a JSON schema. Property names follow the toml
// tags, so editors can validate config.toml against it.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:               "toml",
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
	}
	schema := r.Reflect(&Config{})

	schema.ID = schemaID
	schema.Title = "dockpop configuration"
	schema.Description = "Popout windows, handoff payload storage and logging for dockpop"
	return schema
}

// MarshalSchema returns Schema as indented JSON.
func MarshalSchema() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteSchemaFile writes the schema to path.
func WriteSchemaFile(path string) error {
	data, err := MarshalSchema()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
