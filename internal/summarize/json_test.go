package summarize

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  bool
		wantKey  string
	}{
		{
			name:     "bare object",
			response: `{"SUMMARY": "text"}`,
			wantKey:  "text",
		},
		{
			name:     "object wrapped in prose",
			response: "Here is the analysis:\n```json\n{\"SUMMARY\": \"text\"}\n```\nHope that helps!",
			wantKey:  "text",
		},
		{
			name:     "no braces",
			response: "I cannot analyze this chunk.",
			wantErr:  true,
		},
		{
			name:     "malformed json",
			response: `{"SUMMARY": "unterminated}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst struct {
				Summary string `json:"SUMMARY"`
			}
			err := extractJSONObject(tt.response, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractJSONObject() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && dst.Summary != tt.wantKey {
				t.Errorf("Summary = %q, want %q", dst.Summary, tt.wantKey)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	var items []map[string]string
	response := "Recommendations below.\n[{\"title\": \"BERT\"}, {\"title\": \"GPT\"}]\nEnjoy."
	if err := extractJSONArray(response, &items); err != nil {
		t.Fatalf("extractJSONArray() error: %v", err)
	}
	if len(items) != 2 || items[0]["title"] != "BERT" {
		t.Errorf("items = %v", items)
	}

	if err := extractJSONArray("nothing here", &items); err == nil {
		t.Error("extractJSONArray() should fail without brackets")
	}
}

func TestTruncateRaw(t *testing.T) {
	short := "short response"
	if got := truncateRaw(short); got != short {
		t.Errorf("truncateRaw(short) = %q", got)
	}

	long := strings.Repeat("x", fallbackExcerptLen+100)
	if got := truncateRaw(long); len(got) != fallbackExcerptLen {
		t.Errorf("len(truncateRaw(long)) = %d, want %d", len(got), fallbackExcerptLen)
	}
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain string", `"hello"`, "hello"},
		{"string list joined", `["a", "b"]`, "a\nb"},
		{"number stringified", `42`, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexString
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if string(f) != tt.want {
				t.Errorf("flexString = %q, want %q", f, tt.want)
			}
		})
	}
}

func TestFlexList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"string array", `["a", "b"]`, []string{"a", "b"}},
		{"single string", `"one finding"`, []string{"one finding"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
		{"mixed array", `["a", 2]`, []string{"a", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexList
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual([]string(f), tt.want) {
				t.Errorf("flexList = %v, want %v", f, tt.want)
			}
		})
	}
}
