package assembly

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TrashDirName is the subfolder consumed sidecars are moved into.
const TrashDirName = "xmp_trash"

// MoveSidecarsToTrash relocates the sidecar of every processed video
// into an xmp_trash subfolder next to the videos. Name collisions get a
// numeric suffix; nothing is ever overwritten. It reports how many
// files moved. Missing sidecars are not an error.
func MoveSidecarsToTrash(videoPaths []string) (int, error) {
	if len(videoPaths) == 0 {
		return 0, nil
	}

	trashDir := filepath.Join(filepath.Dir(videoPaths[0]), TrashDirName)
	if err := os.MkdirAll(trashDir, 0o755); err != nil {
		return 0, fmt.Errorf("create trash folder: %w", err)
	}

	moved := 0
	for _, videoPath := range videoPaths {
		sidecar := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".xmp"
		if _, err := os.Stat(sidecar); err != nil {
			continue
		}

		target := filepath.Join(trashDir, filepath.Base(sidecar))
		stem := strings.TrimSuffix(filepath.Base(sidecar), ".xmp")
		for counter := 1; ; counter++ {
			if _, err := os.Stat(target); os.IsNotExist(err) {
				break
			}
			target = filepath.Join(trashDir, fmt.Sprintf("%s_%d.xmp", stem, counter))
		}

		if err := os.Rename(sidecar, target); err != nil {
			return moved, fmt.Errorf("move sidecar %s: %w", filepath.Base(sidecar), err)
		}
		moved++
	}
	return moved, nil
}
