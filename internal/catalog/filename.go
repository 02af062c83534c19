package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ClipName is the result of parsing a clip filename stem of the form
// category-order-Title, e.g. "features-benefits-003-ThreeFeatures".
type ClipName struct {
	Category      string
	CategoryOrder int
	Title         string
}

// ParseClipName derives category, order, and display title from a
// filename stem. The first hyphen-separated part that parses as an
// integer is the order token; everything before it is the category and
// everything after is the title. The order token must exist and must
// not be the first part.
func ParseClipName(stem string) (ClipName, error) {
	parts := strings.Split(stem, "-")
	if len(parts) < 3 {
		return ClipName{}, fmt.Errorf("expected category-order-Title, got %q", stem)
	}

	orderIndex := -1
	order := 0
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		orderIndex = i
		order = value
		break
	}

	if orderIndex < 0 {
		return ClipName{}, fmt.Errorf("no order number in %q", stem)
	}
	if orderIndex == 0 {
		return ClipName{}, fmt.Errorf("missing category before order number in %q", stem)
	}

	title := titleize(strings.Join(parts[orderIndex+1:], " "))
	if title == "" {
		return ClipName{}, errors.New("empty title after order number")
	}

	return ClipName{
		Category:      strings.Join(parts[:orderIndex], "-"),
		CategoryOrder: order,
		Title:         title,
	}, nil
}

// titleize turns a space-separated name into display form: camelCase
// runs are split into words ("IntroSlide" -> "Intro Slide") and each
// word starts with an upper-case letter.
func titleize(name string) string {
	words := strings.Fields(name)
	out := make([]string, 0, len(words))
	for _, word := range words {
		for _, split := range splitCamel(word) {
			out = append(out, capitalize(split))
		}
	}
	return strings.Join(out, " ")
}

// splitCamel breaks a word at lower-to-upper and digit-to-upper
// boundaries.
func splitCamel(word string) []string {
	var words []string
	runes := []rune(word)
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsUpper(runes[i]) && !unicode.IsUpper(runes[i-1]) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
