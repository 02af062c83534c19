// Package marker parses the simplified marker syntax carried in the
// comment field of a video's XMP sidecar. Each non-blank line of a
// marker comment is a single directive; the parsed result describes
// either a theme preview (THEME-NAME present) or a clip and the custom
// inputs it asks of the user.
package marker

import (
	"errors"
	"strconv"
	"strings"
)

// FieldType enumerates the supported custom input kinds.
type FieldType string

const (
	FieldText             FieldType = "text"
	FieldTextarea         FieldType = "textarea"
	FieldURL              FieldType = "url"
	FieldTextList         FieldType = "textList"
	FieldMediaRequestList FieldType = "mediaRequestList"
)

// DefaultTier is the tier applied when a marker carries no TIER directive.
const DefaultTier = "Essential"

// Field is one custom input requested by a clip. Type discriminates
// which of the optional fields are meaningful: text/textarea carry
// MaxLength, textList carries Count or MinItems/MaxItems plus
// ItemMaxLength, mediaRequestList carries MediaType and Description.
type Field struct {
	Type          FieldType `json:"inputType"`
	Label         string    `json:"label"`
	FieldID       string    `json:"fieldId"`
	MaxLength     int       `json:"maxLength,omitempty"`
	Count         int       `json:"count,omitempty"`
	MinItems      int       `json:"minItems,omitempty"`
	MaxItems      int       `json:"maxItems,omitempty"`
	ItemMaxLength int       `json:"itemMaxLength,omitempty"`
	MediaType     string    `json:"mediaType,omitempty"`
	Description   string    `json:"description,omitempty"`
	Placeholder   string    `json:"placeholder,omitempty"`
}

// Config is the parsed form of one marker comment. Fields preserves the
// order the directives appeared in.
type Config struct {
	Fields           []Field
	PopupMessage     string
	ThemeName        string
	ThemeDescription string
	NoInput          bool
	IsOverlay        bool
	Tier             string
}

// IsTheme reports whether the marker names a theme, which marks the
// owning file as the theme preview rather than a clip.
func (c *Config) IsTheme() bool {
	return c != nil && c.ThemeName != ""
}

// RequiresInput reports whether the clip needs user input: it declares
// at least one field and does not opt out with NO-INPUT.
func (c *Config) RequiresInput() bool {
	return c != nil && !c.NoInput && len(c.Fields) > 0
}

// TierRequirement returns the declared tier, defaulting to DefaultTier.
func (c *Config) TierRequirement() string {
	if c == nil || c.Tier == "" {
		return DefaultTier
	}
	return c.Tier
}

type handler func(cfg *Config, line int, rest string) error

// directive binds a case-sensitive line prefix to its handler. Lookup is
// first match wins, in declaration order.
type directive struct {
	prefix string
	apply  handler
}

var directives = []directive{
	{"DESCRIPTION:", func(cfg *Config, _ int, rest string) error {
		cfg.PopupMessage = strings.TrimSpace(rest)
		return nil
	}},
	{"THEME-NAME:", func(cfg *Config, _ int, rest string) error {
		cfg.ThemeName = strings.TrimSpace(rest)
		return nil
	}},
	{"THEME-DESCRIPTION:", func(cfg *Config, _ int, rest string) error {
		cfg.ThemeDescription = strings.TrimSpace(rest)
		return nil
	}},
	{"TEXT:", textHandler(FieldText)},
	{"TEXTAREA:", textHandler(FieldTextarea)},
	{"URL:", urlHandler},
	{"TEXTLIST-FIXED:", textListFixedHandler},
	{"TEXTLIST-FLEX:", textListFlexHandler},
	{"MEDIA-FIXED:", mediaFixedHandler},
	{"MEDIA-FLEX:", mediaFlexHandler},
	{"NO-INPUT:", func(cfg *Config, _ int, _ string) error {
		cfg.NoInput = true
		return nil
	}},
	{"OVERLAY:", func(cfg *Config, _ int, _ string) error {
		cfg.IsOverlay = true
		return nil
	}},
	{"TIER:", func(cfg *Config, _ int, rest string) error {
		cfg.Tier = strings.TrimSpace(rest)
		return nil
	}},
}

// Parse reads a raw marker comment into a Config. A comment that is
// empty or whitespace-only yields (nil, nil): the marker carries no
// configuration at all. Unrecognized lines are skipped, and a directive
// with too few arguments is dropped without error. The only hard
// failure is a malformed decimal integer in a numeric argument; every
// such line is collected and the parse fails with the full
// DirectiveErrors list.
func Parse(comment string) (*Config, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, nil
	}

	cfg := &Config{Fields: []Field{}}
	var errs DirectiveErrors
	lines := splitLines(comment)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, d := range directives {
			if !strings.HasPrefix(line, d.prefix) {
				continue
			}
			if err := d.apply(cfg, i+1, line[len(d.prefix):]); err != nil {
				var de *DirectiveError
				if !errors.As(err, &de) {
					return nil, err
				}
				errs = append(errs, *de)
			}
			break
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// splitLines normalizes CRLF and classic Mac endings to \n and splits
// on every newline, keeping blank lines so reported line numbers match
// the comment as written.
func splitLines(comment string) []string {
	comment = strings.ReplaceAll(comment, "\r\n", "\n")
	comment = strings.ReplaceAll(comment, "\r", "\n")
	return strings.Split(comment, "\n")
}

func splitArgs(rest string) []string {
	parts := strings.Split(rest, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func textHandler(ft FieldType) handler {
	return func(cfg *Config, line int, rest string) error {
		parts := splitArgs(rest)
		if len(parts) < 3 {
			return nil
		}
		maxLen, err := parseInt(line, ft, "maxLength", parts[2])
		if err != nil {
			return err
		}
		f := Field{Type: ft, Label: parts[0], FieldID: parts[1], MaxLength: maxLen}
		if len(parts) > 3 && parts[3] != "" {
			f.Placeholder = parts[3]
		}
		cfg.Fields = append(cfg.Fields, f)
		return nil
	}
}

func urlHandler(cfg *Config, _ int, rest string) error {
	parts := splitArgs(rest)
	if len(parts) < 2 {
		return nil
	}
	f := Field{Type: FieldURL, Label: parts[0], FieldID: parts[1]}
	if len(parts) > 2 && parts[2] != "" {
		f.Placeholder = parts[2]
	}
	cfg.Fields = append(cfg.Fields, f)
	return nil
}

func textListFixedHandler(cfg *Config, line int, rest string) error {
	parts := splitArgs(rest)
	if len(parts) < 4 {
		return nil
	}
	count, err := parseInt(line, FieldTextList, "count", parts[2])
	if err != nil {
		return err
	}
	itemMax, err := parseInt(line, FieldTextList, "itemMaxLength", parts[3])
	if err != nil {
		return err
	}
	f := Field{Type: FieldTextList, Label: parts[0], FieldID: parts[1], Count: count, ItemMaxLength: itemMax}
	if len(parts) > 4 && parts[4] != "" {
		f.Placeholder = parts[4]
	}
	cfg.Fields = append(cfg.Fields, f)
	return nil
}

func textListFlexHandler(cfg *Config, line int, rest string) error {
	parts := splitArgs(rest)
	if len(parts) < 4 {
		return nil
	}
	minItems, maxItems, err := parseBounds(line, FieldTextList, parts[2])
	if err != nil {
		return err
	}
	itemMax, err := parseInt(line, FieldTextList, "itemMaxLength", parts[3])
	if err != nil {
		return err
	}
	f := Field{Type: FieldTextList, Label: parts[0], FieldID: parts[1], MinItems: minItems, MaxItems: maxItems, ItemMaxLength: itemMax}
	if len(parts) > 4 && parts[4] != "" {
		f.Placeholder = parts[4]
	}
	cfg.Fields = append(cfg.Fields, f)
	return nil
}

func mediaFixedHandler(cfg *Config, line int, rest string) error {
	parts := splitArgs(rest)
	if len(parts) < 5 {
		return nil
	}
	count, err := parseInt(line, FieldMediaRequestList, "count", parts[3])
	if err != nil {
		return err
	}
	cfg.Fields = append(cfg.Fields, Field{
		Type:        FieldMediaRequestList,
		Label:       parts[0],
		FieldID:     parts[1],
		MediaType:   parts[2],
		Count:       count,
		Description: parts[4],
	})
	return nil
}

func mediaFlexHandler(cfg *Config, line int, rest string) error {
	parts := splitArgs(rest)
	if len(parts) < 5 {
		return nil
	}
	minItems, maxItems, err := parseBounds(line, FieldMediaRequestList, parts[3])
	if err != nil {
		return err
	}
	cfg.Fields = append(cfg.Fields, Field{
		Type:        FieldMediaRequestList,
		Label:       parts[0],
		FieldID:     parts[1],
		MediaType:   parts[2],
		MinItems:    minItems,
		MaxItems:    maxItems,
		Description: parts[4],
	})
	return nil
}

func parseInt(line int, ft FieldType, arg, raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &DirectiveError{Line: line, Field: string(ft), Message: arg + " must be an integer, got " + strconv.Quote(raw)}
	}
	return value, nil
}

// parseBounds splits a min-max range like "2-8" into its two bounds.
func parseBounds(line int, ft FieldType, raw string) (int, int, error) {
	bounds := strings.SplitN(raw, "-", 2)
	if len(bounds) != 2 {
		return 0, 0, &DirectiveError{Line: line, Field: string(ft), Message: "range must look like min-max, got " + strconv.Quote(raw)}
	}
	minItems, err := parseInt(line, ft, "minItems", strings.TrimSpace(bounds[0]))
	if err != nil {
		return 0, 0, err
	}
	maxItems, err := parseInt(line, ft, "maxItems", strings.TrimSpace(bounds[1]))
	if err != nil {
		return 0, 0, err
	}
	return minItems, maxItems, nil
}
