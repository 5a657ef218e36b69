package schema

import "strings"

// Informative reports whether a candidate value counts as an actual read of
// the field, as opposed to a not-found sentinel or empty collection. Pure;
// the merge rules in pkg/reconcile are built on top of it.
func (s *Schema) Informative(f Field, value any) bool {
	switch f.Kind {
	case ScalarText, ScalarEnum:
		text, ok := CoerceString(value)
		if !ok {
			return false
		}
		return s.InformativeText(f, text)
	case ListOfText:
		items, ok := CoerceStrings(value)
		return ok && len(items) > 0
	case ListOfStructured:
		entries, ok := CoerceEntries(value)
		return ok && len(entries) > 0
	case MapTextToEnum:
		m, ok := CoerceStringMap(value)
		return ok && len(m) > 0
	default:
		return false
	}
}

// InformativeText applies the scalar sentinel rules to an already-coerced
// text value.
func (s *Schema) InformativeText(f Field, text string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if _, sentinel := s.sentinels[normalized]; sentinel {
		return false
	}
	for _, phrase := range f.Sentinels {
		if normalized == strings.ToLower(strings.TrimSpace(phrase)) {
			return false
		}
	}
	// A negative answer to "is this thing present" is a legitimate display
	// value but never overrides a positive read.
	if f.Presence && normalized == strings.ToLower(s.negative) {
		return false
	}
	return true
}
