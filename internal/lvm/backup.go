package lvm

import (
	"errors"
	"os"
	"sort"
	"strings"
	"syscall"
)

// BackupLocation names one well-known LVM metadata directory.
type BackupLocation struct {
	Name string
	Path string
}

// DefaultBackupLocations returns the directories LVM keeps metadata copies in.
func DefaultBackupLocations() []BackupLocation {
	return []BackupLocation{
		{Name: "backup", Path: "/etc/lvm/backup"},
		{Name: "archive", Path: "/etc/lvm/archive"},
		{Name: "var_lib", Path: "/var/lib/lvm"},
	}
}

// maxListedFiles bounds the filename sample kept per directory.
const maxListedFiles = 10

// InspectBackups reports existence, readability and contents of each
// metadata directory. A missing directory, or a stray file where the
// directory belongs, is recorded as absent, not as a failure; only a
// directory that exists but cannot be listed marks the aggregate
// inaccessible.
func InspectBackups(locations []BackupLocation) MetadataBackup {
	backup := MetadataBackup{Accessible: true}

	for _, loc := range locations {
		dir := BackupDir{Path: loc.Path, Name: loc.Name}

		entries, err := os.ReadDir(loc.Path)
		switch {
		case err == nil:
			dir.Exists = true
			dir.Accessible = true
			dir.FileCount = len(entries)
			backup.TotalFiles += len(entries)

			var names []string
			for _, e := range entries {
				if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
					continue
				}
				names = append(names, e.Name())
			}
			sort.Strings(names)
			if len(names) > maxListedFiles {
				names = names[:maxListedFiles]
			}
			dir.Files = names

		case os.IsNotExist(err), errors.Is(err, syscall.ENOTDIR):
			// absent directory or a stray file at its path, nothing to record

		default:
			dir.Exists = true
			backup.Accessible = false
		}

		backup.Directories = append(backup.Directories, dir)
	}

	return backup
}
