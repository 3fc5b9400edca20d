package engine

import "unicode/utf8"

// LocateField maps a caret offset in d's canonical rendering to the field it
// falls in. Each field owns its text plus the separator that follows it.
// It reports false when the offset lies past the end of the rendering.
func LocateField(d Date, offset int) (Field, bool) {
	end := -1
	for _, f := range Fields {
		end += utf8.RuneCountInString(d.FieldText(f)) + 1
		if end >= offset {
			return f, true
		}
	}
	return Day, false
}

// FieldSpan returns the half-open [start, end) rune range of f inside d's
// canonical rendering, for selecting or placing the caret on a field.
func FieldSpan(d Date, f Field) (start, end int) {
	end = -1
	for _, part := range Fields {
		start = end + 1
		end = start + utf8.RuneCountInString(d.FieldText(part))
		if part == f {
			return start, end
		}
	}
	return 0, 0
}
