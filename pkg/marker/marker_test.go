package marker

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTextDirective(t *testing.T) {
	cfg, err := Parse("TEXT: Tagline | tagline | 60 | e.g., Go")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}
	if len(cfg.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(cfg.Fields))
	}

	f := cfg.Fields[0]
	if f.Type != FieldText {
		t.Errorf("unexpected type: %q", f.Type)
	}
	if f.Label != "Tagline" {
		t.Errorf("unexpected label: %q", f.Label)
	}
	if f.FieldID != "tagline" {
		t.Errorf("unexpected field id: %q", f.FieldID)
	}
	if f.MaxLength != 60 {
		t.Errorf("unexpected max length: %d", f.MaxLength)
	}
	if f.Placeholder != "e.g., Go" {
		t.Errorf("unexpected placeholder: %q", f.Placeholder)
	}
	if !cfg.RequiresInput() {
		t.Error("expected RequiresInput to be true with one field")
	}
}

func TestParseTextListFlexBounds(t *testing.T) {
	cfg, err := Parse("TEXTLIST-FLEX: Benefits|benefits|2-8|60")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cfg.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(cfg.Fields))
	}

	f := cfg.Fields[0]
	if f.Type != FieldTextList {
		t.Errorf("unexpected type: %q", f.Type)
	}
	if f.MinItems != 2 || f.MaxItems != 8 {
		t.Errorf("unexpected bounds: %d-%d", f.MinItems, f.MaxItems)
	}
	if f.ItemMaxLength != 60 {
		t.Errorf("unexpected item max length: %d", f.ItemMaxLength)
	}
	if f.Count != 0 {
		t.Errorf("flex list should not set count, got %d", f.Count)
	}
	if f.Placeholder != "" {
		t.Errorf("expected no placeholder, got %q", f.Placeholder)
	}
}

func TestParseMediaDirectives(t *testing.T) {
	comment := "MEDIA-FIXED: Feature Icons | featureIcons | image | 3 | 3 icons for features\n" +
		"MEDIA-FLEX: Client Logos | clientLogos | logo | 3-20 | Client logos (PNG)"

	cfg, err := Parse(comment)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cfg.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(cfg.Fields))
	}

	fixed := cfg.Fields[0]
	if fixed.Type != FieldMediaRequestList {
		t.Errorf("unexpected type: %q", fixed.Type)
	}
	if fixed.MediaType != "image" {
		t.Errorf("unexpected media type: %q", fixed.MediaType)
	}
	if fixed.Count != 3 {
		t.Errorf("unexpected count: %d", fixed.Count)
	}
	if fixed.Description != "3 icons for features" {
		t.Errorf("unexpected description: %q", fixed.Description)
	}

	flex := cfg.Fields[1]
	if flex.MinItems != 3 || flex.MaxItems != 20 {
		t.Errorf("unexpected bounds: %d-%d", flex.MinItems, flex.MaxItems)
	}
	if flex.Description != "Client logos (PNG)" {
		t.Errorf("unexpected description: %q", flex.Description)
	}
}

func TestParseThemeDirectives(t *testing.T) {
	comment := "THEME-NAME: Neon Nights\nTHEME-DESCRIPTION: Retro style pack"

	cfg, err := Parse(comment)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !cfg.IsTheme() {
		t.Fatal("expected theme config")
	}
	if cfg.ThemeName != "Neon Nights" {
		t.Errorf("unexpected theme name: %q", cfg.ThemeName)
	}
	if cfg.ThemeDescription != "Retro style pack" {
		t.Errorf("unexpected theme description: %q", cfg.ThemeDescription)
	}
}

func TestParseNoInputOnly(t *testing.T) {
	cfg, err := Parse("NO-INPUT: true")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.RequiresInput() {
		t.Error("expected RequiresInput false after NO-INPUT")
	}
	if len(cfg.Fields) != 0 {
		t.Errorf("expected no fields, got %d", len(cfg.Fields))
	}
}

func TestParseNoInputOverridesFields(t *testing.T) {
	cfg, err := Parse("TEXT: Headline | headline | 40\nNO-INPUT: true")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.RequiresInput() {
		t.Error("NO-INPUT should win over declared fields")
	}
	if len(cfg.Fields) != 1 {
		t.Errorf("fields should still be recorded, got %d", len(cfg.Fields))
	}
}

func TestParseUnknownLinesIgnored(t *testing.T) {
	comment := "RANDOM NOTES from the animator\n" +
		"TEXT: Headline | headline | 40\n" +
		"text: lowercase is not a directive\n" +
		"OVERLAY: yes\n" +
		"TIER: Premium"

	cfg, err := Parse(comment)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cfg.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(cfg.Fields))
	}
	if !cfg.IsOverlay {
		t.Error("expected overlay flag set")
	}
	if cfg.TierRequirement() != "Premium" {
		t.Errorf("unexpected tier: %q", cfg.TierRequirement())
	}
}

func TestParseShortDirectiveDroppedSilently(t *testing.T) {
	// TEXT needs three arguments; a two-argument line is dropped
	// without failing the following valid line.
	cfg, err := Parse("TEXT: Headline | headline\nURL: Link | link")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cfg.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(cfg.Fields))
	}
	if cfg.Fields[0].Type != FieldURL {
		t.Errorf("unexpected surviving field type: %q", cfg.Fields[0].Type)
	}
}

func TestParseMalformedNumberFails(t *testing.T) {
	_, err := Parse("TEXT: Label | id | abc")
	if err == nil {
		t.Fatal("expected error for non-integer maxLength")
	}
	var dirErr *DirectiveError
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected DirectiveError, got %T", err)
	}
	if dirErr.Line != 1 {
		t.Errorf("unexpected line: %d", dirErr.Line)
	}
}

func TestParseCollectsAllMalformedLines(t *testing.T) {
	comment := "TEXT: A | a | abc\n" +
		"URL: Link | link\n" +
		"TEXTAREA: B | b | xyz"

	_, err := Parse(comment)
	if err == nil {
		t.Fatal("expected error for two malformed lines")
	}
	var errs DirectiveErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected DirectiveErrors, got %T", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 directive errors, got %d: %v", len(errs), err)
	}
	if errs[0].Line != 1 || errs[1].Line != 3 {
		t.Errorf("unexpected lines: %d, %d", errs[0].Line, errs[1].Line)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("expected joined message, got %q", err.Error())
	}
}

func TestParseErrorLineNumbersSkipBlanks(t *testing.T) {
	comment := "DESCRIPTION: Add a headline.\n\n\nTEXT: Label | id | abc"

	_, err := Parse(comment)
	if err == nil {
		t.Fatal("expected error for non-integer maxLength")
	}
	var dirErr *DirectiveError
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected DirectiveError, got %T", err)
	}
	if dirErr.Line != 4 {
		t.Errorf("line = %d, want 4 (blank lines count)", dirErr.Line)
	}
}

func TestParseMalformedBoundsFail(t *testing.T) {
	if _, err := Parse("TEXTLIST-FLEX: Benefits|benefits|8|60"); err == nil {
		t.Fatal("expected error for missing range separator")
	}
	if _, err := Parse("MEDIA-FLEX: Logos|logos|image|x-3|desc"); err == nil {
		t.Fatal("expected error for non-integer lower bound")
	}
}

func TestParseEmptyComment(t *testing.T) {
	for _, comment := range []string{"", "   ", "\n\r\n"} {
		cfg, err := Parse(comment)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", comment, err)
		}
		if cfg != nil {
			t.Errorf("Parse(%q) expected nil config", comment)
		}
	}
}

func TestParsePreservesFieldOrder(t *testing.T) {
	comment := "TEXT: A | a | 10\nURL: B | b\nTEXTAREA: C | c | 200"

	cfg, err := Parse(comment)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []FieldType{FieldText, FieldURL, FieldTextarea}
	if len(cfg.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(cfg.Fields))
	}
	for i, ft := range want {
		if cfg.Fields[i].Type != ft {
			t.Errorf("field %d: got %q want %q", i, cfg.Fields[i].Type, ft)
		}
	}
}

func TestParseCRLFAndBlankLines(t *testing.T) {
	comment := "DESCRIPTION: Add a headline.\r\n\r\nTEXT: Headline | headline | 60\r"

	cfg, err := Parse(comment)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.PopupMessage != "Add a headline." {
		t.Errorf("unexpected popup message: %q", cfg.PopupMessage)
	}
	if len(cfg.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(cfg.Fields))
	}
}

func TestTierDefault(t *testing.T) {
	cfg, err := Parse("NO-INPUT: true")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.TierRequirement() != DefaultTier {
		t.Errorf("unexpected default tier: %q", cfg.TierRequirement())
	}
}
