package reconcile

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/docfold/pkg/capture"
	"github.com/agentstation/docfold/pkg/constants"
	"github.com/agentstation/docfold/pkg/schema"
	"github.com/agentstation/docfold/pkg/similarity"
)

// currencyStrip removes currency symbols, grouping separators, and
// surrounding whitespace so that "$45,000" and "45000" fold to the same
// value.
var currencyStrip = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
	",", "",
)

// merger accumulates per-field state across one fold pass. It is created
// fresh for every Reconcile call and never shared.
type merger struct {
	schema  *schema.Schema
	matcher *similarity.Matcher
	stats   *Statistics

	scalars    map[string]string
	set        map[string]bool
	textLists  map[string][]string
	entries    map[string]map[string]map[string]string
	entryOrder map[string][]string
	enumMaps   map[string]map[string]string
}

func newMerger(s *schema.Schema, matcher *similarity.Matcher, stats *Statistics) *merger {
	return &merger{
		schema:     s,
		matcher:    matcher,
		stats:      stats,
		scalars:    make(map[string]string),
		set:        make(map[string]bool),
		textLists:  make(map[string][]string),
		entries:    make(map[string]map[string]map[string]string),
		entryOrder: make(map[string][]string),
		enumMaps:   make(map[string]map[string]string),
	}
}

// fold merges one capture's record into the accumulator. Fields absent
// from the record are untouched; malformed values are dropped without
// affecting the rest of the capture.
func (m *merger) fold(c capture.Capture) {
	for _, field := range m.schema.Fields() {
		raw, ok := c.Record[field.Name]
		if !ok {
			continue
		}
		switch field.Kind {
		case schema.ScalarText, schema.ScalarEnum:
			m.foldScalar(field, raw)
		case schema.ListOfText:
			m.foldTextList(field, raw)
		case schema.ListOfStructured:
			m.foldStructured(field, raw)
		case schema.MapTextToEnum:
			m.foldEnumMap(field, raw)
		}
	}
}

// foldScalar applies last-informative-wins: an informative value replaces
// whatever came before, while a sentinel only lands when nothing has been
// stored yet, so the combined record still renders "N/A" for a field no
// capture ever found.
func (m *merger) foldScalar(field schema.Field, raw any) {
	text, ok := schema.CoerceString(raw)
	if !ok {
		return
	}
	if field.Currency {
		text = normalizeCurrency(text)
	}
	text = truncate(text, constants.MaxFieldValueLength)

	if m.schema.InformativeText(field, text) {
		m.scalars[field.Name] = text
		if !m.set[field.Name] {
			m.stats.FieldsMerged++
		}
		m.set[field.Name] = true
		return
	}
	if _, exists := m.scalars[field.Name]; !exists {
		m.scalars[field.Name] = text
	}
}

// foldTextList appends items that are informative and not fuzzy-duplicates
// of anything already accumulated. First occurrence wins; later variants
// of the same entry are dropped.
func (m *merger) foldTextList(field schema.Field, raw any) {
	items, ok := schema.CoerceStrings(raw)
	if !ok {
		return
	}
	acc := m.textLists[field.Name]
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if !m.schema.InformativeText(field, trimmed) {
			continue
		}
		if m.matcher.Similar(acc, trimmed) {
			m.stats.DuplicatesDropped++
			continue
		}
		acc = append(acc, trimmed)
	}
	if len(acc) > 0 {
		if !m.set[field.Name] {
			m.stats.FieldsMerged++
		}
		m.textLists[field.Name] = acc
		m.set[field.Name] = true
	}
}

// foldStructured upserts entries by the field's key. A repeated key
// replaces the stored entry wholesale but keeps its original position, so
// output order reflects first insertion across the whole sequence.
func (m *merger) foldStructured(field schema.Field, raw any) {
	items, ok := schema.CoerceEntries(raw)
	if !ok {
		return
	}
	byKey := m.entries[field.Name]
	if byKey == nil {
		byKey = make(map[string]map[string]string)
		m.entries[field.Name] = byKey
	}
	for _, entry := range items {
		key := strings.TrimSpace(entry[field.EntryKey])
		if !m.schema.InformativeText(field, key) {
			continue
		}
		if _, seen := byKey[key]; !seen {
			m.entryOrder[field.Name] = append(m.entryOrder[field.Name], key)
		}
		byKey[key] = entry
	}
	if len(byKey) > 0 {
		if !m.set[field.Name] {
			m.stats.FieldsMerged++
		}
		m.set[field.Name] = true
	}
}

// foldEnumMap shallow-merges key by key; a later capture's value for a key
// overwrites the earlier one.
func (m *merger) foldEnumMap(field schema.Field, raw any) {
	values, ok := schema.CoerceStringMap(raw)
	if !ok || len(values) == 0 {
		return
	}
	acc := m.enumMaps[field.Name]
	if acc == nil {
		acc = make(map[string]string)
		m.enumMaps[field.Name] = acc
	}
	for k, v := range values {
		acc[k] = v
	}
	if !m.set[field.Name] {
		m.stats.FieldsMerged++
	}
	m.set[field.Name] = true
}

// finalize materializes the accumulator into a complete record: every
// schema field is present, with the schema default standing in for fields
// no capture touched. Text lists are emitted in sorted order so repeated
// folds of the same sequence are byte-identical.
func (m *merger) finalize() map[string]any {
	out := make(map[string]any, m.schema.Len())
	for _, field := range m.schema.Fields() {
		switch field.Kind {
		case schema.ListOfText:
			if list, ok := m.textLists[field.Name]; ok {
				sorted := make([]string, len(list))
				copy(sorted, list)
				sort.Strings(sorted)
				out[field.Name] = sorted
			} else {
				out[field.Name] = m.schema.Default(field)
			}
		case schema.ListOfStructured:
			if keys, ok := m.entryOrder[field.Name]; ok && len(keys) > 0 {
				entries := make([]map[string]string, 0, len(keys))
				for _, key := range keys {
					entries = append(entries, m.entries[field.Name][key])
				}
				out[field.Name] = entries
			} else {
				out[field.Name] = m.schema.Default(field)
			}
		case schema.MapTextToEnum:
			if values, ok := m.enumMaps[field.Name]; ok && len(values) > 0 {
				out[field.Name] = values
			} else {
				out[field.Name] = m.schema.Default(field)
			}
		default:
			if text, ok := m.scalars[field.Name]; ok {
				out[field.Name] = text
			} else {
				out[field.Name] = m.schema.Default(field)
			}
		}
	}
	return out
}

func normalizeCurrency(text string) string {
	return strings.TrimSpace(currencyStrip.Replace(strings.TrimSpace(text)))
}

// truncate caps text at max bytes without splitting a multi-byte rune, so
// the merged record stays valid UTF-8.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
