package assembly

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMoveSidecarsToTrash(t *testing.T) {
	dir := t.TempDir()
	videoA := filepath.Join(dir, "hook-001-Open.mp4")
	videoB := filepath.Join(dir, "cta-002-Close.mp4")
	writeFile(t, filepath.Join(dir, "hook-001-Open.xmp"))
	writeFile(t, filepath.Join(dir, "cta-002-Close.xmp"))

	moved, err := MoveSidecarsToTrash([]string{videoA, videoB})
	if err != nil {
		t.Fatalf("MoveSidecarsToTrash returned error: %v", err)
	}
	if moved != 2 {
		t.Errorf("expected 2 moved, got %d", moved)
	}

	for _, name := range []string{"hook-001-Open.xmp", "cta-002-Close.xmp"} {
		if _, err := os.Stat(filepath.Join(dir, TrashDirName, name)); err != nil {
			t.Errorf("sidecar %s not in trash: %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("sidecar %s still in place", name)
		}
	}
}

func TestMoveSidecarsSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "hook-001-Open.mp4")

	moved, err := MoveSidecarsToTrash([]string{video})
	if err != nil {
		t.Fatalf("MoveSidecarsToTrash returned error: %v", err)
	}
	if moved != 0 {
		t.Errorf("expected 0 moved, got %d", moved)
	}
}

func TestMoveSidecarsDeduplicatesNames(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "hook-001-Open.mp4")
	trash := filepath.Join(dir, TrashDirName)
	if err := os.MkdirAll(trash, 0o755); err != nil {
		t.Fatal(err)
	}

	// A sidecar of the same name is already in the trash.
	writeFile(t, filepath.Join(trash, "hook-001-Open.xmp"))
	writeFile(t, filepath.Join(dir, "hook-001-Open.xmp"))

	moved, err := MoveSidecarsToTrash([]string{video})
	if err != nil {
		t.Fatalf("MoveSidecarsToTrash returned error: %v", err)
	}
	if moved != 1 {
		t.Errorf("expected 1 moved, got %d", moved)
	}
	if _, err := os.Stat(filepath.Join(trash, "hook-001-Open_1.xmp")); err != nil {
		t.Errorf("expected de-duplicated name: %v", err)
	}
	// The original trash occupant is untouched.
	if _, err := os.Stat(filepath.Join(trash, "hook-001-Open.xmp")); err != nil {
		t.Errorf("existing trash file disturbed: %v", err)
	}
}

func TestMoveSidecarsEmptyBatch(t *testing.T) {
	moved, err := MoveSidecarsToTrash(nil)
	if err != nil {
		t.Fatalf("MoveSidecarsToTrash returned error: %v", err)
	}
	if moved != 0 {
		t.Errorf("expected 0 moved, got %d", moved)
	}
}
