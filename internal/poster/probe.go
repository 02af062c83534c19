package poster

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// VideoInfo holds the probe fields the extractor needs.
type VideoInfo struct {
	Width           int
	Height          int
	DurationSeconds float64
}

func (e *Extractor) probe(ctx context.Context, path string) (VideoInfo, error) {
	args := []string{
		"-v", "error",
		"-show_format",
		"-show_streams",
		"-print_format", "json",
		path,
	}

	result, err := e.runner().Run(ctx, e.ffprobeBin(), args, RunOptions{})
	if err != nil {
		return VideoInfo{}, fmt.Errorf("ffprobe: %w", err)
	}
	if len(result.Stdout) == 0 {
		return VideoInfo{}, fmt.Errorf("ffprobe produced no output for %s", path)
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal(result.Stdout, &parsed); err != nil {
		return VideoInfo{}, fmt.Errorf("decode ffprobe output: %w", err)
	}

	info := VideoInfo{}
	if parsed.Format.Duration != "" {
		if v, err := strconv.ParseFloat(parsed.Format.Duration, 64); err == nil {
			info.DurationSeconds = v
		}
	}
	for _, stream := range parsed.Streams {
		if stream.CodecType == "video" {
			info.Width = stream.Width
			info.Height = stream.Height
			break
		}
	}

	if info.Width <= 0 || info.Height <= 0 {
		return VideoInfo{}, fmt.Errorf("no usable video stream in %s", path)
	}
	return info, nil
}
