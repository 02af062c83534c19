package catalog

import "strings"

// ThemeID derives a URL-safe slug from a human theme name: lowercase,
// characters outside [a-z0-9 -] stripped, whitespace and dash runs
// collapsed to a single dash, leading/trailing dashes trimmed. Applying
// it to its own output is a no-op.
func ThemeID(name string) string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-':
			b.WriteByte('-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		}
	}

	id := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(id, "--") {
		id = strings.ReplaceAll(id, "--", "-")
	}
	return strings.Trim(id, "-")
}
