package handlers

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c4dlink/c4dlink/internal/bridge"
	"github.com/c4dlink/c4dlink/internal/protocol"
)

const vec3Schema = `{"type": "array", "items": {"type": "number"}, "minItems": 3, "maxItems": 3}`

// commandSchemas holds the Draft-7 parameter schema for each operation.
// Violations surface as structured error responses before the handler runs.
var commandSchemas = map[bridge.Kind]string{
	bridge.KindGetSceneInfo: `{"type": "object"}`,
	bridge.KindAddPrimitive: `{
		"type": "object",
		"properties": {
			"type": {"type": "string"},
			"name": {"type": "string"},
			"object_name": {"type": "string"},
			"position": ` + vec3Schema + `,
			"size": ` + vec3Schema + `
		}
	}`,
	bridge.KindModifyObject: `{
		"type": "object",
		"required": ["object_name"],
		"properties": {
			"object_name": {"type": "string"},
			"properties": {"type": "object"}
		}
	}`,
	bridge.KindListObjects: `{"type": "object"}`,
	bridge.KindCreateMaterial: `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"material_name": {"type": "string"},
			"color": ` + vec3Schema + `,
			"properties": {"type": "object"}
		}
	}`,
	bridge.KindApplyMaterial: `{
		"type": "object",
		"required": ["material_name", "object_name"],
		"properties": {
			"material_name": {"type": "string"},
			"object_name": {"type": "string"}
		}
	}`,
	bridge.KindRenderFrame: `{
		"type": "object",
		"properties": {
			"output_path": {"type": "string"},
			"width": {"type": "integer", "minimum": 1},
			"height": {"type": "integer", "minimum": 1}
		}
	}`,
	bridge.KindSetKeyframe: `{
		"type": "object",
		"required": ["object_name", "property_name", "value"],
		"properties": {
			"object_name": {"type": "string"},
			"property_name": {"type": "string"},
			"value": {"type": "number"},
			"frame": {"type": "integer"}
		}
	}`,
	bridge.KindSaveScene: `{
		"type": "object",
		"properties": {
			"file_path": {"type": "string"}
		}
	}`,
	bridge.KindLoadScene: `{
		"type": "object",
		"required": ["file_path"],
		"properties": {
			"file_path": {"type": "string"}
		}
	}`,
	bridge.KindExecutePython: `{
		"type": "object",
		"required": ["script"],
		"properties": {
			"script": {"type": "string"}
		}
	}`,
}

// compileSchema builds the validator for one operation kind.
func compileSchema(kind bridge.Kind) (*gojsonschema.Schema, error) {
	source, ok := commandSchemas[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for command kind %q", kind)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, fmt.Errorf("compile schema for %q: %w", kind, err)
	}
	return schema, nil
}

// validateCommand checks a parsed command against its operation schema.
func validateCommand(kind bridge.Kind, schema *gojsonschema.Schema, cmd protocol.Command) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(cmd)))
	if err != nil {
		return fmt.Errorf("validate %s command: %w", kind, err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("invalid %s command: %s", kind, strings.Join(details, "; "))
}
