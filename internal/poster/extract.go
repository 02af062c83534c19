// Package poster grabs a single representative frame from a video as a
// JPEG and answers duration lookups, both by shelling out to the
// ffmpeg/ffprobe pair.
package poster

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// DefaultDurationSeconds is the fallback reported when a duration
// lookup fails for any reason.
const DefaultDurationSeconds = 3

// splitScreenRatio marks side-by-side exports: anything at least this
// wide relative to its height gets cropped to its left half.
const splitScreenRatio = 1.8

// Options controls one poster extraction.
type Options struct {
	// PositionPercent selects the frame as a fraction of the video's
	// duration, 0-100.
	PositionPercent int
	// Quality is JPEG quality 1-100.
	Quality int
	// Width/Height resize the output when both are positive; zero
	// keeps the source size.
	Width  int
	Height int
}

// Extractor runs ffmpeg/ffprobe. The zero value uses binaries from
// PATH and a real process runner.
type Extractor struct {
	FFmpeg  string
	FFprobe string
	Runner  Runner
}

func (e *Extractor) runner() Runner {
	if e.Runner == nil {
		return CmdRunner{}
	}
	return e.Runner
}

func (e *Extractor) ffmpegBin() string {
	if e.FFmpeg == "" {
		return "ffmpeg"
	}
	return e.FFmpeg
}

func (e *Extractor) ffprobeBin() string {
	if e.FFprobe == "" {
		return "ffprobe"
	}
	return e.FFprobe
}

// Extract saves a poster JPEG next to the video as <stem>-poster.jpg
// and returns its path. Side-by-side sources (width/height >= 1.8) and
// files whose stem begins with "overlay" are cropped to the left half
// before any resize.
func (e *Extractor) Extract(ctx context.Context, videoPath string, opts Options) (string, error) {
	info, err := e.probe(ctx, videoPath)
	if err != nil {
		return "", err
	}

	position := clamp(opts.PositionPercent, 0, 100)
	seek := info.DurationSeconds * float64(position) / 100
	if info.DurationSeconds > 0 && seek >= info.DurationSeconds {
		// Keep the seek inside the stream so the grab can't come up empty.
		seek = math.Max(info.DurationSeconds-0.05, 0)
	}

	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	outputPath := filepath.Join(filepath.Dir(videoPath), stem+"-poster.jpg")

	var filters []string
	if cropToLeftHalf(stem, info.Width, info.Height) {
		filters = append(filters, "crop=iw/2:ih:0:0")
	}
	if opts.Width > 0 && opts.Height > 0 {
		filters = append(filters, fmt.Sprintf("scale=%d:%d:flags=lanczos", opts.Width, opts.Height))
	}

	args := []string{
		"-v", "error",
		"-y",
		"-ss", fmt.Sprintf("%.3f", seek),
		"-i", videoPath,
		"-frames:v", "1",
	}
	if len(filters) > 0 {
		args = append(args, "-vf", strings.Join(filters, ","))
	}
	args = append(args, "-q:v", fmt.Sprintf("%d", jpegScale(opts.Quality)), outputPath)

	if _, err := e.runner().Run(ctx, e.ffmpegBin(), args, RunOptions{}); err != nil {
		return "", fmt.Errorf("ffmpeg poster grab: %w", err)
	}
	return outputPath, nil
}

// Duration reports the video duration in seconds, rounded to two
// decimals, falling back to DefaultDurationSeconds when the probe
// fails or reports nothing useful.
func (e *Extractor) Duration(ctx context.Context, videoPath string) float64 {
	info, err := e.probe(ctx, videoPath)
	if err != nil || info.DurationSeconds <= 0 {
		return DefaultDurationSeconds
	}
	return math.Round(info.DurationSeconds*100) / 100
}

func cropToLeftHalf(stem string, width, height int) bool {
	if strings.HasPrefix(stem, "overlay") {
		return true
	}
	if height <= 0 {
		return false
	}
	return float64(width)/float64(height) >= splitScreenRatio
}

// jpegScale maps 1-100 quality to ffmpeg's inverted 2-31 qscale.
func jpegScale(quality int) int {
	quality = clamp(quality, 1, 100)
	scale := 2 + (100-quality)*29/99
	return clamp(scale, 2, 31)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
