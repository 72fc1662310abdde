package patch

import (
	"encoding/json"
	"strings"
	"testing"
)

type entry struct {
	Title string `json:"title"`
	Help  string `json:"help"`
}

const flatFile = `{
  "a": {
    "title": "A",
    "help": "h"
  }
}
`

func TestFormatEntryBlock(t *testing.T) {
	block, err := FormatEntryBlock("b", entry{Title: "B", Help: "h"}, 2, 2)
	if err != nil {
		t.Fatalf("FormatEntryBlock returned error: %v", err)
	}

	want := "\n  " + StartMarker + "\n" +
		"  \"b\": {\n    \"title\": \"B\",\n    \"help\": \"h\"\n  },\n" +
		"  " + EndMarker
	if block != want {
		t.Errorf("block mismatch\ngot:\n%s\nwant:\n%s", block, want)
	}
}

func TestFormatEntryBlockNoHTMLEscaping(t *testing.T) {
	block, err := FormatEntryBlock("header", entry{Title: "Header", Help: "Set an HTTP header <name>=<value>"}, 2, 2)
	if err != nil {
		t.Fatalf("FormatEntryBlock returned error: %v", err)
	}
	if !strings.Contains(block, "<name>=<value>") {
		t.Errorf("expected angle brackets to survive, got:\n%s", block)
	}
}

func TestInsertBeforeAddsComma(t *testing.T) {
	anchor := LastBrace(flatFile)
	if anchor < 0 {
		t.Fatal("no closing brace in fixture")
	}

	block, err := FormatEntryBlock("b", entry{Title: "B", Help: "h"}, 2, 2)
	if err != nil {
		t.Fatalf("FormatEntryBlock returned error: %v", err)
	}

	got, err := InsertBefore(flatFile, anchor, block)
	if err != nil {
		t.Fatalf("InsertBefore returned error: %v", err)
	}

	if !strings.Contains(got, "},\n") {
		t.Error("expected a comma after the previous value")
	}
	if !strings.Contains(got, StartMarker) || !strings.Contains(got, EndMarker) {
		t.Error("expected insertion markers in output")
	}

	var doc map[string]entry
	if err := json.Unmarshal([]byte(Sanitize(got)), &doc); err != nil {
		t.Fatalf("patched output does not sanitize to valid JSON: %v\n%s", err, got)
	}
	if _, ok := doc["a"]; !ok {
		t.Error("existing key lost")
	}
	if doc["b"] != (entry{Title: "B", Help: "h"}) {
		t.Errorf("inserted key wrong: %+v", doc["b"])
	}
}

func TestInsertBeforeEmptyObject(t *testing.T) {
	content := "{\n}\n"
	block, err := FormatEntryBlock("a", entry{Title: "A", Help: "h"}, 2, 2)
	if err != nil {
		t.Fatalf("FormatEntryBlock returned error: %v", err)
	}

	got, err := InsertBefore(content, LastBrace(content), block)
	if err != nil {
		t.Fatalf("InsertBefore returned error: %v", err)
	}
	if strings.Contains(got, "{,") || strings.Contains(got, ",\n  "+StartMarker) {
		t.Errorf("no comma should be added after an opening brace:\n%s", got)
	}

	var doc map[string]entry
	if err := json.Unmarshal([]byte(Sanitize(got)), &doc); err != nil {
		t.Fatalf("patched output does not sanitize to valid JSON: %v\n%s", err, got)
	}
}

func TestInsertBeforeMinified(t *testing.T) {
	content := `{"a": {"title":"A","help":"h"}}`
	block, err := FormatEntryBlock("b", entry{Title: "B", Help: "h"}, 2, 2)
	if err != nil {
		t.Fatalf("FormatEntryBlock returned error: %v", err)
	}

	got, err := InsertBefore(content, LastBrace(content), block)
	if err != nil {
		t.Fatalf("InsertBefore returned error: %v", err)
	}

	var doc map[string]entry
	if err := json.Unmarshal([]byte(Sanitize(got)), &doc); err != nil {
		t.Fatalf("patched output does not sanitize to valid JSON: %v\n%s", err, got)
	}
	if len(doc) != 2 {
		t.Errorf("expected 2 keys, got %d", len(doc))
	}
}

func TestInsertBeforeBadAnchor(t *testing.T) {
	if _, err := InsertBefore("{}", 0, "x"); err == nil {
		t.Error("expected error for anchor not pointing at a closing brace")
	}
	if _, err := InsertBefore("{}", 99, "x"); err == nil {
		t.Error("expected error for out of range anchor")
	}
}

const nestedFile = `{
  "providers": {
    "drive": {
      "scope": {
        "title": "Scope",
        "help": "contains a } brace and a { too"
      }
    }
  }
}
`

func TestObjectBounds(t *testing.T) {
	open, end, err := ObjectBounds(nestedFile, "drive")
	if err != nil {
		t.Fatalf("ObjectBounds returned error: %v", err)
	}
	if nestedFile[open] != '{' || nestedFile[end] != '}' {
		t.Fatalf("bounds do not point at braces: open=%q end=%q", nestedFile[open], nestedFile[end])
	}

	inner := nestedFile[open : end+1]
	if !strings.Contains(inner, `"scope"`) {
		t.Errorf("drive object should contain its option:\n%s", inner)
	}
	if strings.Contains(inner, `"providers"`) {
		t.Errorf("drive object should not reach back to the parent:\n%s", inner)
	}
}

func TestObjectBoundsIgnoresBracesInStrings(t *testing.T) {
	open, end, err := ObjectBounds(nestedFile, "scope")
	if err != nil {
		t.Fatalf("ObjectBounds returned error: %v", err)
	}
	// The matching brace is the one after the help line, not the one
	// embedded in the help string.
	inner := nestedFile[open : end+1]
	if !strings.Contains(inner, `a { too"`) {
		t.Errorf("closing brace matched inside a string literal:\n%s", inner)
	}
}

func TestObjectBoundsMissingKey(t *testing.T) {
	if _, _, err := ObjectBounds(nestedFile, "nope"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestObjectBoundsSkipsNonObjectUse(t *testing.T) {
	content := `{
  "alias": "drive",
  "drive": {
    "x": 1
  }
}
`
	open, end, err := ObjectBounds(content, "drive")
	if err != nil {
		t.Fatalf("ObjectBounds returned error: %v", err)
	}
	if !strings.Contains(content[open:end+1], `"x"`) {
		t.Errorf("bounds missed the actual object: %s", content[open:end+1])
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON untouched",
			input: `{"a": 1, "b": "x"}`,
			want:  `{"a": 1, "b": "x"}`,
		},
		{
			name:  "slashes inside strings survive",
			input: `{"url": "http://example.com//path"}`,
			want:  `{"url": "http://example.com//path"}`,
		},
		{
			name:  "line comment removed",
			input: "{\n  // note\n  \"a\": 1\n}",
			want:  "{\n  \n  \"a\": 1\n}",
		},
		{
			name:  "trailing comma before brace removed",
			input: "{\n  \"a\": 1,\n}",
			want:  "{\n  \"a\": 1\n}",
		},
		{
			name:  "trailing comma separated by comment removed",
			input: "{\n  \"a\": 1,\n  // marker\n}",
			want:  "{\n  \"a\": 1\n  \n}",
		},
		{
			name:  "escaped quote does not end string",
			input: `{"a": "say \"hi\" // not a comment"}`,
			want:  `{"a": "say \"hi\" // not a comment"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeAfterPatchRoundTrips(t *testing.T) {
	content := flatFile
	anchor := LastBrace(content)

	var insertion strings.Builder
	for _, key := range []string{"b", "c", "d"} {
		block, err := FormatEntryBlock(key, entry{Title: strings.ToUpper(key), Help: "h"}, 2, 2)
		if err != nil {
			t.Fatalf("FormatEntryBlock returned error: %v", err)
		}
		insertion.WriteString(block)
	}

	got, err := InsertBefore(content, anchor, insertion.String())
	if err != nil {
		t.Fatalf("InsertBefore returned error: %v", err)
	}

	var doc map[string]entry
	if err := json.Unmarshal([]byte(Sanitize(got)), &doc); err != nil {
		t.Fatalf("multi-entry patch does not sanitize to valid JSON: %v\n%s", err, got)
	}
	for _, key := range []string{"a", "b", "c", "d"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing key %q after patch", key)
		}
	}
}
