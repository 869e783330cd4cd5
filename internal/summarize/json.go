package summarize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fallbackExcerptLen bounds the raw-response excerpt preserved when a
// structured response cannot be parsed.
const fallbackExcerptLen = 500

// extractJSONObject decodes the first '{' through the last '}' of a
// model response into dst. Models routinely wrap JSON in prose or code
// fences, so the surrounding text is ignored.
func extractJSONObject(response string, dst any) error {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end < start {
		return fmt.Errorf("no JSON object found in response")
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), dst); err != nil {
		return fmt.Errorf("decoding JSON object: %w", err)
	}
	return nil
}

// extractJSONArray decodes the first '[' through the last ']' of a model
// response into dst.
func extractJSONArray(response string, dst any) error {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start < 0 || end < start {
		return fmt.Errorf("no JSON array found in response")
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), dst); err != nil {
		return fmt.Errorf("decoding JSON array: %w", err)
	}
	return nil
}

// truncateRaw clips a raw response for use as a degraded summary value.
func truncateRaw(s string) string {
	if len(s) <= fallbackExcerptLen {
		return s
	}
	return s[:fallbackExcerptLen]
}

// flexString accepts a JSON string, a list of strings (joined with
// newlines), or a number. Models are inconsistent about whether prose
// fields come back as strings or bullet arrays.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = flexString(strings.Join(list, "\n"))
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexString(fmt.Sprintf("%v", v))
	return nil
}

// flexList accepts a JSON array of strings, a single string (treated as
// a one-element list), or null.
type flexList []string

func (f *flexList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*f = nil
			return nil
		}
		*f = flexList{s}
		return nil
	}

	// Arrays of non-string items: stringify each element.
	var items []interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(flexList, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprintf("%v", item))
	}
	*f = out
	return nil
}
