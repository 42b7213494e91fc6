package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// bundledTasksSchema is the embedded tasks schema JSON. It describes
// the canonical file format: the loader tolerates far more than this,
// the schema serves diagnostics.
const bundledTasksSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Taskman Tasks",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed"],
    "properties": {
      "id": { "type": "integer", "minimum": 1 },
      "title": { "type": "string", "minLength": 1 },
      "completed": { "type": "boolean" }
    }
  }
}`

// BundledSchema returns the embedded tasks schema JSON content.
func BundledSchema() []byte {
	return []byte(bundledTasksSchema)
}

// SchemaIssue is one finding from a schema check.
type SchemaIssue struct {
	Path    string // dot-notation path to the offending location
	Message string
}

func (i SchemaIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// CheckSchema validates raw JSON content against the bundled tasks
// schema and returns the flattened findings. It returns an error only
// when the content is not valid JSON at all or the bundled schema
// cannot be compiled.
func CheckSchema(raw []byte) ([]SchemaIssue, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("tasks.schema.json", bytes.NewReader(BundledSchema())); err != nil {
		return nil, fmt.Errorf("load bundled schema: %w", err)
	}
	schema, err := compiler.Compile("tasks.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile bundled schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks file: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var issues []SchemaIssue
		appendSchemaIssues(&issues, err)
		return issues, nil
	}
	return nil, nil
}

func appendSchemaIssues(issues *[]SchemaIssue, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*issues = append(*issues, SchemaIssue{Message: err.Error()})
		return
	}

	collectSchemaIssues(issues, ve)
}

func collectSchemaIssues(issues *[]SchemaIssue, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*issues = append(*issues, SchemaIssue{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaIssues(issues, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	if ptr == "" {
		return ""
	}
	if strings.HasPrefix(ptr, "#") {
		ptr = strings.TrimPrefix(ptr, "#")
	}
	if strings.HasPrefix(ptr, "/") {
		ptr = ptr[1:]
	}
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
