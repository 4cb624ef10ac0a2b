package deb

import "strings"

// schemaByKey indexes the control schema by normalized metadata key.
var schemaByKey = func() map[string]FieldDescriptor {
	m := make(map[string]FieldDescriptor, len(ControlSchema))
	for _, d := range ControlSchema {
		m[d.Key()] = d
	}
	return m
}()

// ParseControl parses the text of a control file back into Metadata. Folded
// continuation lines are joined to their field with newlines; fields that the
// schema declares as lists are split on commas. Unknown fields are kept under
// their normalized key as scalars.
func ParseControl(content string) Metadata {
	m := make(Metadata)

	var currentKey string
	var currentValue strings.Builder

	flush := func() {
		if currentKey == "" {
			return
		}
		val := strings.TrimSpace(currentValue.String())
		if d, ok := schemaByKey[currentKey]; ok && d.Default.isList {
			m[currentKey] = List(splitList(val)...)
		} else {
			m[currentKey] = String(val)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			currentValue.WriteString("\n" + strings.TrimLeft(line, " \t"))
		} else if strings.Contains(line, ":") {
			flush()
			parts := strings.SplitN(line, ":", 2)
			currentKey = FieldKey(parts[0])
			currentValue.Reset()
			currentValue.WriteString(strings.TrimSpace(parts[1]))
		}
	}
	flush()
	return m
}

// splitList splits a comma-separated field value, trimming whitespace from
// each element. It returns nil for an empty value.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var res []string
	for _, p := range strings.Split(s, ",") {
		res = append(res, strings.TrimSpace(p))
	}
	return res
}
