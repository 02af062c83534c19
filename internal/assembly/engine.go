// Package assembly turns a batch of video files plus their XMP
// sidecars into a single theme catalog. The engine is a pure function
// of its inputs and collaborators: it performs no filesystem writes of
// its own beyond the poster files its extractor produces.
package assembly

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"themegen/internal/catalog"
	"themegen/internal/poster"
	"themegen/internal/xmp"
	"themegen/pkg/marker"
)

// Batch-fatal outcomes: nothing is written when either is returned.
var (
	ErrNoTheme = errors.New("no theme found: add a theme preview video with a THEME-NAME marker or append to an existing catalog")
	ErrNoClips = errors.New("no valid clips processed")
)

// SidecarReader is the external XMP collaborator.
type SidecarReader interface {
	Read(path string, wantFrameZero bool) (xmp.Sidecar, error)
}

// PosterSource is the external poster/duration collaborator.
type PosterSource interface {
	Extract(ctx context.Context, videoPath string, opts poster.Options) (string, error)
	Duration(ctx context.Context, videoPath string) float64
}

// ProgressFunc is invoked once per file after it has been handled,
// regardless of outcome.
type ProgressFunc func(index, total int, outcome FileOutcome)

// Options configures one batch run.
type Options struct {
	// Files is the ordered list of video paths to process.
	Files []string
	// Append extends Existing instead of building a fresh catalog.
	Append bool
	// Existing is the previously loaded catalog in append mode.
	Existing *catalog.Catalog
	// BaseURL prefixes every asset filename in previewUrl/posterUrl.
	BaseURL string
	// Poster carries the extraction parameters for every file.
	Poster poster.Options
	// Progress, when set, receives per-file completion callbacks.
	Progress ProgressFunc
}

// Status classifies what happened to one input file.
type Status string

const (
	StatusAdded   Status = "added"
	StatusTheme   Status = "theme"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// FileOutcome records the result for a single input file.
type FileOutcome struct {
	File   string
	Status Status
	Detail string
}

// Result is what a completed (non-fatal) batch produced.
type Result struct {
	Catalog  *catalog.Catalog
	Outcomes []FileOutcome
	NewClips int
}

// Errors returns the per-file error outcomes formatted as
// "filename: detail" lines.
func (r Result) Errors() []string {
	var errs []string
	for _, o := range r.Outcomes {
		if o.Status == StatusError {
			errs = append(errs, fmt.Sprintf("%s: %s", filepath.Base(o.File), o.Detail))
		}
	}
	return errs
}

// Notes returns the skip outcomes formatted the same way.
func (r Result) Notes() []string {
	var notes []string
	for _, o := range r.Outcomes {
		if o.Status == StatusSkipped {
			notes = append(notes, fmt.Sprintf("%s: %s", filepath.Base(o.File), o.Detail))
		}
	}
	return notes
}

// Engine orchestrates one batch over its collaborators.
type Engine struct {
	Sidecars SidecarReader
	Posters  PosterSource
}

// Run processes every file in order, then finalizes the catalog.
// Per-file failures never abort the batch; only a missing theme or an
// empty clip list at the end is fatal. The returned Result is valid
// even on fatal errors so callers can still report per-file outcomes.
func (e *Engine) Run(ctx context.Context, opts Options) (Result, error) {
	baseURL := NormalizeBaseURL(opts.BaseURL)

	var theme *catalog.Theme
	clips := []catalog.Clip{}
	if opts.Append && opts.Existing != nil {
		t := opts.Existing.Theme
		theme = &t
		clips = append(clips, opts.Existing.Clips...)
	}

	result := Result{}
	total := len(opts.Files)

	for i, file := range opts.Files {
		outcome := e.processFile(ctx, file, baseURL, opts, &theme, &clips, &result.NewClips)
		result.Outcomes = append(result.Outcomes, outcome)
		if opts.Progress != nil {
			opts.Progress(i+1, total, outcome)
		}
	}

	if theme == nil {
		return result, ErrNoTheme
	}
	if len(clips) == 0 {
		return result, ErrNoClips
	}

	result.Catalog = &catalog.Catalog{Theme: *theme, Clips: clips}
	result.Catalog.ResolveThemeIDs()
	return result, nil
}

func (e *Engine) processFile(ctx context.Context, file, baseURL string, opts Options, theme **catalog.Theme, clips *[]catalog.Clip, newClips *int) FileOutcome {
	stem := fileStem(file)
	sidecarPath := strings.TrimSuffix(file, filepath.Ext(file)) + ".xmp"

	isThemeFile := strings.Contains(strings.ToLower(stem), "theme")

	sc, err := e.Sidecars.Read(sidecarPath, isThemeFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileOutcome{File: file, Status: StatusError, Detail: "no XMP sidecar found"}
		}
		// Unreadable sidecars degrade the same way as markerless ones.
		return FileOutcome{File: file, Status: StatusError, Detail: "no marker data found"}
	}
	if !sc.HasMarker || strings.TrimSpace(sc.Comment) == "" {
		return FileOutcome{File: file, Status: StatusError, Detail: "no marker data found"}
	}

	cfg, err := marker.Parse(sc.Comment)
	if err != nil {
		return FileOutcome{File: file, Status: StatusError, Detail: err.Error()}
	}
	if cfg == nil {
		return FileOutcome{File: file, Status: StatusError, Detail: "could not parse marker"}
	}

	if cfg.IsTheme() {
		return e.processTheme(ctx, file, baseURL, opts, cfg, theme)
	}
	return e.processClip(ctx, file, stem, baseURL, opts, cfg, *theme, clips, newClips)
}

func (e *Engine) processTheme(ctx context.Context, file, baseURL string, opts Options, cfg *marker.Config, theme **catalog.Theme) FileOutcome {
	if *theme != nil {
		// First theme wins; in append mode the loaded theme is never
		// overwritten by a preview file in the same run.
		return FileOutcome{File: file, Status: StatusSkipped, Detail: "theme already set, using existing theme data"}
	}

	t := catalog.Theme{
		ID:          catalog.ThemeID(cfg.ThemeName),
		Name:        cfg.ThemeName,
		Description: cfg.ThemeDescription,
		PreviewURL:  baseURL + filepath.Base(file),
	}

	// A failed poster grab leaves posterUrl empty but still creates
	// the theme.
	if posterPath, err := e.Posters.Extract(ctx, file, opts.Poster); err == nil {
		t.PosterURL = baseURL + filepath.Base(posterPath)
	}

	*theme = &t
	return FileOutcome{File: file, Status: StatusTheme, Detail: t.Name}
}

func (e *Engine) processClip(ctx context.Context, file, stem, baseURL string, opts Options, cfg *marker.Config, theme *catalog.Theme, clips *[]catalog.Clip, newClips *int) FileOutcome {
	name, err := catalog.ParseClipName(stem)
	if err != nil {
		return FileOutcome{File: file, Status: StatusError, Detail: "invalid filename format"}
	}

	for i := range *clips {
		if (*clips)[i].ID == stem {
			return FileOutcome{File: file, Status: StatusSkipped, Detail: "already exists"}
		}
	}

	posterPath, err := e.Posters.Extract(ctx, file, opts.Poster)
	if err != nil {
		return FileOutcome{File: file, Status: StatusError, Detail: err.Error()}
	}

	themeID := catalog.UnresolvedThemeID
	if theme != nil {
		themeID = theme.ID
	}

	clip := catalog.Clip{
		ID:              stem,
		Title:           name.Title,
		Category:        name.Category,
		CategoryOrder:   name.CategoryOrder,
		PreviewURL:      baseURL + filepath.Base(file),
		PosterURL:       baseURL + filepath.Base(posterPath),
		ThemeID:         themeID,
		DefaultDuration: e.Posters.Duration(ctx, file),
		IsOverlay:       cfg.IsOverlay,
		TierRequirement: cfg.TierRequirement(),
		RequiresInput:   cfg.RequiresInput(),
		PopupMessage:    cfg.PopupMessage,
		CustomInputs:    cfg.Fields,
	}
	if clip.CustomInputs == nil {
		clip.CustomInputs = []marker.Field{}
	}

	*clips = append(*clips, clip)
	*newClips++
	return FileOutcome{File: file, Status: StatusAdded, Detail: clip.ID}
}

// NormalizeBaseURL guarantees exactly one trailing slash.
func NormalizeBaseURL(base string) string {
	return strings.TrimRight(base, "/") + "/"
}

func fileStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
