package deb

import (
	"strings"
)

// controlLineWidth is the conventional wrap width for folded control fields.
const controlLineWidth = 70

// Value holds the value of a single control field: either a scalar string or
// an ordered list of strings. Lists are rendered comma-joined.
type Value struct {
	text   string
	list   []string
	isList bool
}

// String returns a scalar Value.
func String(s string) Value {
	return Value{text: s}
}

// List returns a list Value. List() is the canonical empty-list default.
func List(items ...string) Value {
	return Value{list: items, isList: true}
}

// IsZero reports whether the value is empty: the empty string for scalars,
// or a list with no elements.
func (v Value) IsZero() bool {
	if v.isList {
		return len(v.list) == 0
	}
	return v.text == ""
}

// IsList reports whether the value is list-typed. The empty list is a list.
func (v Value) IsList() bool {
	return v.isList
}

// Flatten returns the single-string form of the value. List elements are
// joined with ", " per the control-file convention for relationship fields.
func (v Value) Flatten() string {
	if v.isList {
		return strings.Join(v.list, ", ")
	}
	return v.text
}

// FieldDescriptor describes one control field: its canonical name, whether a
// value is required, whether the value is free text to be word-wrapped into a
// paragraph, and the value assumed when the caller supplies none.
type FieldDescriptor struct {
	Name      ControlField
	Mandatory bool
	Wrap      bool
	Default   Value
}

// Key returns the metadata key for the field: the name lower-cased with
// hyphens stripped (e.g. "Pre-Depends" -> "predepends").
func (d FieldDescriptor) Key() string {
	return FieldKey(string(d.Name))
}

// FieldKey normalizes a control-field name into a metadata key.
func FieldKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", ""))
}

// Metadata maps normalized field keys (see FieldKey) to caller-supplied
// values. Keys not present fall back to the descriptor's default.
type Metadata map[string]Value

// Set stores a value under the normalized key for the given field name.
func (m Metadata) Set(name string, v Value) {
	m[FieldKey(name)] = v
}

// resolve returns the effective value for the descriptor: the supplied value
// if present and non-empty, otherwise the default. A mandatory field that
// resolves empty is a ValidationError.
func (d FieldDescriptor) resolve(m Metadata) (Value, error) {
	v, ok := m[d.Key()]
	if !ok || v.IsZero() {
		v = d.Default
	}
	if d.Mandatory && v.IsZero() {
		return Value{}, &ValidationError{Field: d.Name}
	}
	return v, nil
}

// renderField formats one "Name: value" control line. List values are
// comma-joined first. Wrapped fields have embedded newlines collapsed to
// spaces and the whole line greedily word-wrapped; words are never split and
// hyphens are not break points. Continuation lines get exactly one leading
// space, per the control-file folding convention.
func renderField(name string, v Value, wrap bool) string {
	line := name + ": " + v.Flatten()
	if wrap {
		line = fill(strings.Join(strings.Split(line, "\n"), " "), controlLineWidth)
	}
	return strings.ReplaceAll(line, "\n", "\n ") + "\n"
}

// RenderControl renders the full control file: every schema field in order,
// skipping optional fields that resolve empty. It returns a ValidationError
// if a mandatory field is missing or empty.
func RenderControl(m Metadata) (string, error) {
	var b strings.Builder
	for _, d := range ControlSchema {
		v, err := d.resolve(m)
		if err != nil {
			return "", err
		}
		if v.IsZero() {
			continue
		}
		b.WriteString(renderField(string(d.Name), v, d.Wrap))
	}
	return b.String(), nil
}

// fill greedily wraps s at the given width, breaking only at whitespace.
// Whitespace runs are normalized to single spaces; a word longer than the
// width occupies its own line unbroken.
func fill(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i == 0 {
			b.WriteString(w)
			lineLen = len(w)
			continue
		}
		if lineLen+1+len(w) > width {
			b.WriteString("\n")
			b.WriteString(w)
			lineLen = len(w)
		} else {
			b.WriteString(" ")
			b.WriteString(w)
			lineLen += 1 + len(w)
		}
	}
	return b.String()
}
