// Package paths knows the canonical file locations around a folder of
// theme videos: sidecars, posters, config, and the catalog file.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"themegen/internal/config"
)

// VideoExt is the only video container the pipeline consumes.
const VideoExt = ".mp4"

// SidecarExt is the metadata sidecar extension exported alongside each
// video.
const SidecarExt = ".xmp"

// Stem returns the filename without directory or extension.
func Stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// SidecarPath returns the metadata sidecar path for a video.
func SidecarPath(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + SidecarExt
}

// ConfigPath returns the settings file location for a folder.
func ConfigPath(folder string) string {
	return filepath.Join(folder, config.FileName)
}

// CatalogPath returns where a fresh catalog for the given theme id is
// written.
func CatalogPath(folder, themeID string) string {
	return filepath.Join(folder, themeID+".json")
}

// ExpandVideoArgs turns a mix of video files and folders into a flat,
// ordered list of video paths. Folders contribute their videos in name
// order; explicit files are kept in the order given.
func ExpandVideoArgs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*"+VideoExt))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", arg, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", VideoExt)
	}
	for _, f := range files {
		if !strings.EqualFold(filepath.Ext(f), VideoExt) {
			return nil, fmt.Errorf("not a video file: %s", f)
		}
	}
	return files, nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
