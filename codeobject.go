package flatai

import (
	"encoding/json"
	"fmt"
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// CodeInstruction is sent with a request whose answer should decode into a CodeObject.
const CodeInstruction = "Based on the provided context and information, generate a complete and accurate Python code that precisely matches the USERs request. Use all relevant details to populate the code with meaningful, appropriate values that best represent the data."

// CodeObject pairs generated source text with free-form notes about it.
// It is a plain value: two CodeObjects are equal when both fields are equal.
type CodeObject struct {
	Notes string `json:"code_notes"`
	Code  string `json:"raw_code"`
}

// NewCodeObject creates a new CodeObject. Empty strings are allowed.
func NewCodeObject(notes, code string) CodeObject {
	return CodeObject{
		Notes: notes,
		Code:  code,
	}
}

// String returns the code verbatim, without the notes.
func (c CodeObject) String() string {
	return c.Code
}

// UnmarshalJSON requires both code_notes and raw_code to be present as strings.
func (c *CodeObject) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}

	notes, err := requireString(fields, "code_notes")
	if err != nil {
		return err
	}
	code, err := requireString(fields, "raw_code")
	if err != nil {
		return err
	}

	c.Notes = notes
	c.Code = code
	return nil
}

// ParseCodeObject decodes a structured completion into a CodeObject.
func ParseCodeObject(data []byte) (CodeObject, error) {
	var c CodeObject
	if err := c.UnmarshalJSON(data); err != nil {
		return CodeObject{}, err
	}
	return c, nil
}

// JSONSchema represents a JSON schema object.
type JSONSchema map[string]any

// CodeObjectSchema describes the structured output a model should produce for a CodeObject.
func CodeObjectSchema() JSONSchema {
	return JSONSchema{
		"type":        "object",
		"title":       "CodeObject",
		"description": "Generated source code together with notes explaining it.",
		"properties": map[string]any{
			"code_notes": map[string]any{
				"type":        "string",
				"description": "Free-form explanation of the generated code",
			},
			"raw_code": map[string]any{
				"type":        "string",
				"description": "The generated source code",
			},
		},
		"required":             []string{"code_notes", "raw_code"},
		"additionalProperties": false,
	}
}

// DiffCode renders a line diff from the code of before to the code of after.
// Inserted lines are prefixed with "+ ", deleted lines with "- " and
// unchanged lines with two spaces.
func DiffCode(before, after CodeObject) string {
	d := dmp.New()
	a, b, lineArray := d.DiffLinesToChars(withTrailingNewline(before.Code), withTrailingNewline(after.Code))
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lineArray)

	var sb strings.Builder
	for _, df := range diffs {
		prefix := "  "
		switch df.Type {
		case dmp.DiffInsert:
			prefix = "+ "
		case dmp.DiffDelete:
			prefix = "- "
		}
		for _, ln := range splitLines(df.Text) {
			sb.WriteString(prefix + ln + "\n")
		}
	}
	return sb.String()
}

// withTrailingNewline terminates the last line so that an unchanged final
// line compares equal whether or not more lines follow it.
func withTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// decodeFields decodes a JSON object without interpreting its values.
func decodeFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &Error{Kind: Validation, Message: "expected a JSON object", Err: err}
	}
	if fields == nil {
		return nil, NewValidationError("", "expected a JSON object, got null")
	}
	return fields, nil
}

func requireString(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", NewValidationError(name, "field required")
	}
	if string(raw) == "null" {
		return "", NewValidationError(name, "field required, got null")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", NewValidationError(name, fmt.Sprintf("input should be a valid string, got %s", raw))
	}
	return s, nil
}
