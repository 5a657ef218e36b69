package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/agentstation/docfold/pkg/errors"
	"github.com/agentstation/docfold/pkg/schema"
)

// response is the contract the prompt asks for. Some model revisions emit
// the entity map at the top level instead of under "entities"; the parser
// accepts both.
type response struct {
	Entities map[string]any `json:"entities"`
	Summary  string         `json:"summary"`
}

// ParseResponse decodes a model response into a capture record keyed by
// schema field names. Keys the schema does not define are dropped, and key
// matching ignores case, spaces, and punctuation, so "APN / Parcel ID"
// still lands on APN_ParcelID.
func ParseResponse(s *schema.Schema, text string) (map[string]any, string, error) {
	payload := stripFences(text)
	if payload == "" {
		return nil, "", errors.WrapParse("json", "", fmt.Errorf("empty model response"))
	}

	var resp response
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, "", errors.WrapParse("json", "", err)
	}
	entities := resp.Entities
	if entities == nil {
		var flat map[string]any
		if err := json.Unmarshal([]byte(payload), &flat); err != nil {
			return nil, "", errors.WrapParse("json", "", err)
		}
		entities = flat
		if summary, ok := flat["summary"].(string); ok {
			resp.Summary = summary
		}
	}

	index := make(map[string]schema.Field, s.Len())
	for _, field := range s.Fields() {
		index[canonicalKey(field.Name)] = field
	}

	record := make(map[string]any, len(entities))
	for key, value := range entities {
		field, ok := index[canonicalKey(key)]
		if !ok {
			continue
		}
		record[field.Name] = normalizeValue(field, value)
	}
	if len(record) == 0 {
		return nil, "", errors.WrapParse("json", "", fmt.Errorf("response contains no recognized fields"))
	}

	return record, strings.TrimSpace(resp.Summary), nil
}

// normalizeValue canonicalizes entry keys inside structured lists, where
// models alternate between "SignedAttached" and "Signed Attached". Other
// kinds pass through; the fold's coercion handles their shape.
func normalizeValue(field schema.Field, value any) any {
	if field.Kind != schema.ListOfStructured {
		return value
	}
	items, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			out = append(out, item)
			continue
		}
		normalized := make(map[string]any, len(entry))
		for k, v := range entry {
			normalized[strings.ReplaceAll(k, " ", "")] = v
		}
		out = append(out, normalized)
	}
	return out
}

// stripFences removes a markdown code fence around the JSON payload when
// the model adds one despite instructions.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func canonicalKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
