package magicschema

import (
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/google/jsonschema-go/jsonschema"
)

const blockMarker = "@schema"

// BlockAnnotator recognizes a fenced comment block of the form:
//
//	# @schema
//	# type: integer
//	# minimum: 0
//	# @schema
//	retries: 3
//
// The body between the two @schema marker lines is parsed as YAML and
// mapped onto the recognized JSON Schema fields (type, description,
// pattern, minimum, maximum, enum, default, required, additionalProperties,
// skip). Unrecognized keys are ignored.
type BlockAnnotator struct{}

// NewBlockAnnotator returns a stateless [BlockAnnotator] prototype.
func NewBlockAnnotator() *BlockAnnotator { return &BlockAnnotator{} }

// Name implements [Annotator].
func (*BlockAnnotator) Name() string { return "block" }

// ForContent implements [Annotator]. BlockAnnotator carries no file-level
// state, so the prototype itself is reused.
func (a *BlockAnnotator) ForContent(_ []byte) (Annotator, error) { return a, nil }

// Annotate implements [Annotator].
func (*BlockAnnotator) Annotate(node ast.Node, _ string) *AnnotationResult {
	mvn, ok := node.(*ast.MappingValueNode)
	if !ok {
		return nil
	}

	body, ok := extractSchemaBlock(mvn.GetComment())
	if !ok {
		return nil
	}

	var fields map[string]any

	if err := yaml.Unmarshal([]byte(body), &fields); err != nil || fields == nil {
		return nil
	}

	return blockFieldsToResult(fields)
}

// extractSchemaBlock scans a comment group for a pair of "@schema" marker
// lines and returns the text between them.
func extractSchemaBlock(cg *ast.CommentGroupNode) (string, bool) {
	if cg == nil {
		return "", false
	}

	lines := strings.Split(cg.String(), "\n")

	start, end := -1, -1

	for i, line := range lines {
		if strings.TrimSpace(stripCommentPrefix(line)) != blockMarker {
			continue
		}

		if start == -1 {
			start = i

			continue
		}

		end = i

		break
	}

	if start == -1 || end == -1 {
		return "", false
	}

	body := make([]string, 0, end-start-1)
	for _, line := range lines[start+1 : end] {
		body = append(body, stripCommentPrefix(line))
	}

	return strings.Join(body, "\n"), true
}

func blockFieldsToResult(fields map[string]any) *AnnotationResult {
	schema := &jsonschema.Schema{}
	result := &AnnotationResult{Schema: schema}

	if t, ok := fields["type"].(string); ok {
		schema.Type = t
	}

	if d, ok := fields["description"].(string); ok {
		schema.Description = d
	}

	if p, ok := fields["pattern"].(string); ok {
		schema.Pattern = p
	}

	if m, ok := toFloat64(fields["minimum"]); ok {
		schema.Minimum = jsonschema.Ptr(m)
	}

	if m, ok := toFloat64(fields["maximum"]); ok {
		schema.Maximum = jsonschema.Ptr(m)
	}

	if enum, ok := fields["enum"].([]any); ok {
		schema.Enum = enum
	}

	if def, ok := fields["default"]; ok {
		schema.Default = DefaultValue(def)
	}

	if req, ok := fields["required"].(bool); ok {
		result.HasRequired = &req
	}

	if ap, ok := fields["additionalProperties"].(bool); ok {
		if ap {
			schema.AdditionalProperties = TrueSchema()
		} else {
			schema.AdditionalProperties = FalseSchema()
		}
	}

	if skip, ok := fields["skip"].(bool); ok {
		result.Skip = skip
	}

	return result
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case uint64:
		return float64(n), true
	}

	return 0, false
}
