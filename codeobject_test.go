package flatai_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	flatai "github.com/flat-ai/flat-go"
	"github.com/google/go-cmp/cmp"
)

func TestCodeObjectString(t *testing.T) {
	code := "def add(a, b):\n    return a + b"
	obj := flatai.NewCodeObject("adds two numbers", code)

	if got := obj.String(); got != code {
		t.Fatalf("expected code verbatim, got %q", got)
	}
	if got := fmt.Sprint(obj); got != code {
		t.Fatalf("expected fmt to render code only, got %q", got)
	}
	if obj.String() != obj.String() {
		t.Fatalf("expected rendering to be stable")
	}
}

func TestCodeObjectStringEmpty(t *testing.T) {
	obj := flatai.NewCodeObject("", "")
	if got := obj.String(); got != "" {
		t.Fatalf("expected empty rendering, got %q", got)
	}
}

func TestCodeObjectEquality(t *testing.T) {
	a := flatai.NewCodeObject("n", "c")
	b := flatai.NewCodeObject("n", "c")
	c := flatai.NewCodeObject("other", "c")

	if a != b {
		t.Errorf("expected equal values to compare equal")
	}
	if a == c {
		t.Errorf("expected different notes to compare unequal")
	}
}

func TestParseCodeObject(t *testing.T) {
	got, err := flatai.ParseCodeObject([]byte(`{"code_notes":"adds two numbers","raw_code":"def add(a, b):\n    return a + b","extra":1}`))
	if err != nil {
		t.Fatalf("ParseCodeObject returned error: %v", err)
	}

	want := flatai.NewCodeObject("adds two numbers", "def add(a, b):\n    return a + b")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected code object (-want +got):\n%s", diff)
	}
}

func TestParseCodeObjectEmptyStrings(t *testing.T) {
	got, err := flatai.ParseCodeObject([]byte(`{"code_notes":"","raw_code":""}`))
	if err != nil {
		t.Fatalf("ParseCodeObject returned error: %v", err)
	}
	if got != (flatai.CodeObject{}) {
		t.Errorf("expected zero code object, got %+v", got)
	}
}

func TestParseCodeObjectValidation(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		field string
	}{
		{name: "missing notes", input: `{"raw_code":"x"}`, field: "code_notes"},
		{name: "missing code", input: `{"code_notes":"x"}`, field: "raw_code"},
		{name: "null code", input: `{"code_notes":"x","raw_code":null}`, field: "raw_code"},
		{name: "number notes", input: `{"code_notes":1,"raw_code":"x"}`, field: "code_notes"},
		{name: "not an object", input: `["x"]`, field: ""},
		{name: "null document", input: `null`, field: ""},
		{name: "malformed", input: `{"code_notes":`, field: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := flatai.ParseCodeObject([]byte(tc.input))
			var flatErr *flatai.Error
			if !errors.As(err, &flatErr) {
				t.Fatalf("expected *flatai.Error, got %v", err)
			}
			if flatErr.Kind != flatai.Validation {
				t.Errorf("expected validation kind, got %s", flatErr.Kind)
			}
			if flatErr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, flatErr.Field)
			}
		})
	}
}

func TestCodeObjectJSONUnmarshal(t *testing.T) {
	var obj flatai.CodeObject
	err := json.Unmarshal([]byte(`{"code_notes":"n"}`), &obj)

	var flatErr *flatai.Error
	if !errors.As(err, &flatErr) || flatErr.Field != "raw_code" {
		t.Fatalf("expected raw_code validation error, got %v", err)
	}

	data, err := json.Marshal(flatai.NewCodeObject("n", "c"))
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `{"code_notes":"n","raw_code":"c"}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestCodeObjectSchema(t *testing.T) {
	schema := flatai.CodeObjectSchema()

	if diff := cmp.Diff([]string{"code_notes", "raw_code"}, schema["required"]); diff != "" {
		t.Errorf("unexpected required fields (-want +got):\n%s", diff)
	}
	if schema["additionalProperties"] != false {
		t.Errorf("expected additionalProperties to be false")
	}
	properties, ok := schema["properties"].(map[string]any)
	if !ok || len(properties) != 2 {
		t.Fatalf("expected two properties, got %v", schema["properties"])
	}
}

func TestDiffCode(t *testing.T) {
	before := flatai.NewCodeObject("v1", "def add(a, b):\n    return a + b\n")
	after := flatai.NewCodeObject("v2", "def add(a, b):\n    return b + a\n")

	want := "  def add(a, b):\n" +
		"-     return a + b\n" +
		"+     return b + a\n"
	if diff := cmp.Diff(want, flatai.DiffCode(before, after)); diff != "" {
		t.Errorf("unexpected diff (-want +got):\n%s", diff)
	}
}

func TestDiffCodeUnchanged(t *testing.T) {
	obj := flatai.NewCodeObject("", "a\nb\n")
	if got := flatai.DiffCode(obj, obj); got != "  a\n  b\n" {
		t.Errorf("expected only context lines, got %q", got)
	}
}

func TestDiffCodeWithoutTrailingNewline(t *testing.T) {
	before := flatai.NewCodeObject("", "a\nb")
	after := flatai.NewCodeObject("", "a\nb\nc")

	want := "  a\n  b\n+ c\n"
	if diff := cmp.Diff(want, flatai.DiffCode(before, after)); diff != "" {
		t.Errorf("unexpected diff (-want +got):\n%s", diff)
	}
}
