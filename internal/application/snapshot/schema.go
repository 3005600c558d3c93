package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/younwookim/puppet/internal/domain/entity"
)

const schemaURL = "https://github.com/younwookim/puppet/snapshot.schema.json"

var (
	compileOnce sync.Once
	compiled    *validator.Schema
	compileErr  error
)

// Schema returns the JSON Schema of a decoded snapshot message. Decoding
// validates against the same document.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(entity.Snapshot))
	schema.ID = jsonschema.ID(schemaURL)
	schema.Title = "Puppet Scene Snapshot"
	schema.Description = "One scene description as JSON; controllers send it base64 encoded"
	return schema
}

func compileSchema() (*validator.Schema, error) {
	data, err := json.Marshal(Schema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	c := validator.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return c.Compile(schemaURL)
}

// validate checks text against the snapshot schema. Range errors the
// schema cannot express are left to json.Unmarshal.
func validate(text []byte) error {
	compileOnce.Do(func() {
		compiled, compileErr = compileSchema()
	})
	if compileErr != nil {
		return fmt.Errorf("compile schema: %w", compileErr)
	}

	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return compiled.Validate(doc)
}
