package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ClassificationFields is the response schema of the classification call. Every field is required.
var ClassificationFields = []SchemaField{
	{Name: "is_technical", Type: FieldBoolean, Description: "true when the email matches the classification condition"},
	{Name: "simple_reply_draft", Type: FieldString, Description: "reply answering the technical question"},
	{Name: "non_technical_reply_draft", Type: FieldString, Description: "polite reply for non-technical email"},
	{Name: "request_meeting", Type: FieldBoolean, Description: "true when a meeting should be proposed"},
	{Name: "meeting_suggestion_draft", Type: FieldString, Description: "reply proposing a meeting slot"},
}

// ExtractJSONObject returns the first well-formed JSON object embedded in text.
// Leading and trailing commentary is ignored.
func ExtractJSONObject(text string) (json.RawMessage, error) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var obj map[string]json.RawMessage
		if err := dec.Decode(&obj); err != nil {
			continue
		}
		end := i + int(dec.InputOffset())
		return json.RawMessage(text[i:end]), nil
	}
	return nil, ErrNoJSONObject
}

// ParseClassification extracts and validates a ClassificationResult from raw model output.
// A result missing any field, or carrying a field of the wrong type, is rejected as a whole.
func ParseClassification(text string) (*ClassificationResult, error) {
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidClassification, err)
	}

	for _, f := range ClassificationFields {
		v, ok := fields[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrInvalidClassification, f.Name)
		}
		if !hasType(v, f.Type) {
			return nil, fmt.Errorf("%w: field %q is not a %s", ErrInvalidClassification, f.Name, f.Type)
		}
	}

	var result ClassificationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidClassification, err)
	}
	return &result, nil
}

func hasType(v json.RawMessage, t FieldType) bool {
	v = bytes.TrimSpace(v)
	switch t {
	case FieldBoolean:
		return bytes.Equal(v, []byte("true")) || bytes.Equal(v, []byte("false"))
	case FieldString:
		var s string
		return len(v) > 0 && v[0] == '"' && json.Unmarshal(v, &s) == nil
	}
	return false
}

// SchemaDescription renders fields as a plain-text instruction for providers without native schema support.
func SchemaDescription(fields []SchemaField) string {
	var b strings.Builder
	b.WriteString("Respond only with a JSON object containing exactly these required fields:\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", f.Name, f.Type, f.Description)
	}
	return b.String()
}
