// Package admschema describes the ADM JSON document shape as a JSON
// Schema, for the ari CLI's "schema" subcommand and for editor tooling
// that wants to validate hand-authored ADM files before loading them.
package admschema

import "github.com/google/jsonschema-go/jsonschema"

var sectionItemSchemas = map[string]*jsonschema.Schema{
	"const": objectSchema(map[string]*jsonschema.Schema{
		"name":        stringSchema(),
		"description": stringSchema(),
		"type":        stringSchema(),
		"value":       stringSchema(),
	}, "name", "type", "value"),
	"ctrl": objectSchema(map[string]*jsonschema.Schema{
		"name":        stringSchema(),
		"description": stringSchema(),
		"parmspec":    parmspecSchema(),
	}, "name"),
	"edd": objectSchema(map[string]*jsonschema.Schema{
		"name":        stringSchema(),
		"description": stringSchema(),
		"type":        stringSchema(),
		"parmspec":    parmspecSchema(),
	}, "name", "type"),
	"mac": objectSchema(map[string]*jsonschema.Schema{
		"name":        stringSchema(),
		"description": stringSchema(),
		"parmspec":    parmspecSchema(),
		"action":      stringArraySchema(),
	}, "name", "action"),
	"oper": objectSchema(map[string]*jsonschema.Schema{
		"name":        stringSchema(),
		"description": stringSchema(),
		"in-type":     stringArraySchema(),
		"result-type": stringSchema(),
	}, "name", "result-type"),
	"rptt": objectSchema(map[string]*jsonschema.Schema{
		"name":        stringSchema(),
		"description": stringSchema(),
		"parmspec":    parmspecSchema(),
		"definition":  stringArraySchema(),
	}, "name", "definition"),
	"tblt": objectSchema(map[string]*jsonschema.Schema{
		"name":        stringSchema(),
		"description": stringSchema(),
		"columns": &jsonschema.Schema{
			Type: "array",
			Items: objectSchema(map[string]*jsonschema.Schema{
				"name": stringSchema(),
				"type": stringSchema(),
			}, "name", "type"),
		},
	}, "name", "columns"),
	"var": objectSchema(map[string]*jsonschema.Schema{
		"name":        stringSchema(),
		"description": stringSchema(),
		"type":        stringSchema(),
		"init":        stringSchema(),
	}, "name", "type"),
}

func stringSchema() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} }

func stringArraySchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: stringSchema()}
}

func objectSchema(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: &jsonschema.Schema{},
	}
}

func parmspecSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "array",
		Items: objectSchema(map[string]*jsonschema.Schema{
			"name":    stringSchema(),
			"type":    stringSchema(),
			"default": stringSchema(),
		}, "name", "type"),
	}
}

// Document returns the JSON Schema describing a complete ADM JSON
// document.
func Document() *jsonschema.Schema {
	properties := map[string]*jsonschema.Schema{
		"name":      stringSchema(),
		"namespace": stringSchema(),
		"uses":      stringArraySchema(),
	}
	for section, item := range sectionItemSchemas {
		properties[section] = &jsonschema.Schema{Type: "array", Items: item}
	}

	return objectSchema(properties, "name")
}
