package lvm

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestInspectBackups(t *testing.T) {
	backup := t.TempDir()
	writeFiles(t, backup, "vg0", "vg1", ".hidden")

	missing := filepath.Join(t.TempDir(), "nope")

	got := InspectBackups([]BackupLocation{
		{Name: "backup", Path: backup},
		{Name: "archive", Path: missing},
	})

	if len(got.Directories) != 2 {
		t.Fatalf("got %d directories, want 2", len(got.Directories))
	}

	first := got.Directories[0]
	if !first.Exists || !first.Accessible {
		t.Errorf("backup dir flags = %+v, want exists and accessible", first)
	}
	if first.FileCount != 3 {
		t.Errorf("file count = %d, want 3 including hidden", first.FileCount)
	}
	if len(first.Files) != 2 || first.Files[0] != "vg0" || first.Files[1] != "vg1" {
		t.Errorf("files = %v, want sorted visible names", first.Files)
	}

	second := got.Directories[1]
	if second.Exists || second.Accessible {
		t.Errorf("missing dir flags = %+v, want neither", second)
	}
	if second.FileCount != 0 || len(second.Files) != 0 {
		t.Errorf("missing dir contents = %+v, want empty", second)
	}

	if got.TotalFiles != 3 {
		t.Errorf("total files = %d, want 3", got.TotalFiles)
	}
	if !got.Accessible {
		t.Error("aggregate accessible = false, want true when directories merely do not exist")
	}
}

func TestInspectBackupsSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "vg0", ".hidden")
	if err := os.Mkdir(filepath.Join(dir, "archive_old"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := InspectBackups([]BackupLocation{{Name: "backup", Path: dir}})

	d := got.Directories[0]
	if d.FileCount != 3 {
		t.Errorf("file count = %d, want 3 counting every entry", d.FileCount)
	}
	if len(d.Files) != 1 || d.Files[0] != "vg0" {
		t.Errorf("files = %v, want only the visible regular file", d.Files)
	}
	if got.TotalFiles != 3 {
		t.Errorf("total files = %d, want 3", got.TotalFiles)
	}
}

func TestInspectBackupsFileAtDirectoryPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := InspectBackups([]BackupLocation{{Name: "backup", Path: path}})

	d := got.Directories[0]
	if d.Exists || d.Accessible {
		t.Errorf("stray file flags = %+v, want treated as absent", d)
	}
	if !got.Accessible {
		t.Error("aggregate accessible = false, want true when the path is not a directory")
	}
}

func TestInspectBackupsLimitsFileSample(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	writeFiles(t, dir, names...)

	got := InspectBackups([]BackupLocation{{Name: "backup", Path: dir}})

	d := got.Directories[0]
	if d.FileCount != len(names) {
		t.Errorf("file count = %d, want %d", d.FileCount, len(names))
	}
	if len(d.Files) != maxListedFiles {
		t.Errorf("listed files = %d, want %d", len(d.Files), maxListedFiles)
	}
	if d.Files[0] != "a" || d.Files[maxListedFiles-1] != "j" {
		t.Errorf("files = %v, want first ten sorted names", d.Files)
	}
	if got.TotalFiles != len(names) {
		t.Errorf("total files = %d, want %d", got.TotalFiles, len(names))
	}
}

func TestInspectBackupsSortsNames(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "zeta", "alpha", "mid")

	got := InspectBackups([]BackupLocation{{Name: "backup", Path: dir}})
	d := got.Directories[0]
	want := []string{"alpha", "mid", "zeta"}
	for i, name := range want {
		if d.Files[i] != name {
			t.Fatalf("files = %v, want %v", d.Files, want)
		}
	}
}

func TestDefaultBackupLocations(t *testing.T) {
	locs := DefaultBackupLocations()
	if len(locs) != 3 {
		t.Fatalf("got %d locations, want 3", len(locs))
	}
	wantPaths := map[string]string{
		"backup":  "/etc/lvm/backup",
		"archive": "/etc/lvm/archive",
		"var_lib": "/var/lib/lvm",
	}
	for _, loc := range locs {
		if wantPaths[loc.Name] != loc.Path {
			t.Errorf("location %s = %s, want %s", loc.Name, loc.Path, wantPaths[loc.Name])
		}
	}
}
