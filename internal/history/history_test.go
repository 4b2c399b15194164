package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sigreer/lvmgod/internal/lvm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func snapshotAt(reportID string, ts time.Time) *lvm.HealthSnapshot {
	return &lvm.HealthSnapshot{
		ReportID:  reportID,
		Timestamp: ts,
		PhysicalVolumes: []lvm.PhysicalVolume{
			{Name: "/dev/sda1", VGName: "vg0", SizeGB: 100, FreeGB: 50, Status: lvm.StateActive, Attrs: "a-"},
		},
		VolumeGroups: []lvm.VolumeGroup{
			{Name: "vg0", SizeGB: 100, FreeGB: 50, FreePercent: 50, Attrs: "wz--n-"},
		},
		LogicalVolumes: []lvm.LogicalVolume{
			{Name: "root", VGName: "vg0", SizeGB: 20, Type: lvm.TypeNormal, Status: lvm.StateActive, Attrs: "-wi-ao----"},
			{Name: "data", VGName: "vg0", SizeGB: 30, Type: lvm.TypeNormal, Status: lvm.StateActive, Attrs: "-wi-ao----"},
		},
		Issues:   []string{},
		Warnings: []string{},
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if err := store.Record(snapshotAt("report-1", ts)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	checks, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(checks) != 1 {
		t.Fatalf("got %d checks, want 1", len(checks))
	}

	c := checks[0]
	if c.ReportID != "report-1" {
		t.Errorf("report ID = %q, want %q", c.ReportID, "report-1")
	}
	if c.OverallStatus != string(lvm.StatusHealthy) {
		t.Errorf("overall status = %q, want %q", c.OverallStatus, lvm.StatusHealthy)
	}
	if c.Timestamp.Unix() != ts.Unix() {
		t.Errorf("timestamp = %v, want %v", c.Timestamp, ts)
	}
	if c.PVCount != 1 || c.VGCount != 1 || c.LVCount != 2 || c.PoolCount != 0 {
		t.Errorf("counts = %d/%d/%d/%d, want 1/1/2/0", c.PVCount, c.VGCount, c.LVCount, c.PoolCount)
	}
	if c.IssueCount != 0 || c.WarningCount != 0 {
		t.Errorf("finding counts = %d/%d, want 0/0", c.IssueCount, c.WarningCount)
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"report-1", "report-2", "report-3"} {
		snap := snapshotAt(id, base.Add(time.Duration(i)*time.Minute))
		if err := store.Record(snap); err != nil {
			t.Fatalf("Record %s: %v", id, err)
		}
	}

	checks, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(checks) != 2 {
		t.Fatalf("got %d checks, want 2", len(checks))
	}
	if checks[0].ReportID != "report-3" || checks[1].ReportID != "report-2" {
		t.Errorf("order = %q, %q; want report-3, report-2", checks[0].ReportID, checks[1].ReportID)
	}
}

func TestRecentDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	if err := store.Record(snapshotAt("report-1", time.Now().UTC())); err != nil {
		t.Fatalf("Record: %v", err)
	}
	checks, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(checks) != 1 {
		t.Errorf("got %d checks, want 1", len(checks))
	}
}

func TestFindingsOrder(t *testing.T) {
	store := openTestStore(t)

	snap := snapshotAt("report-1", time.Now().UTC())
	snap.Issues = []string{
		"Critical PV: /dev/sdb1 (MISSING)",
		"Critical Thin Pool: vg0/thinpool0 (over 90.0% used)",
	}
	snap.Warnings = []string{
		"Warning VG: vg1 (low free space: 8.0%)",
	}
	if err := store.Record(snap); err != nil {
		t.Fatalf("Record: %v", err)
	}

	checks, err := store.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(checks) != 1 {
		t.Fatalf("got %d checks, want 1", len(checks))
	}
	if checks[0].IssueCount != 2 || checks[0].WarningCount != 1 {
		t.Errorf("finding counts = %d/%d, want 2/1", checks[0].IssueCount, checks[0].WarningCount)
	}

	findings, err := store.Findings(checks[0].ID)
	if err != nil {
		t.Fatalf("Findings: %v", err)
	}
	if len(findings) != 3 {
		t.Fatalf("got %d findings, want 3", len(findings))
	}

	wantSeverities := []string{SeverityCritical, SeverityCritical, SeverityWarning}
	for i, f := range findings {
		if f.Severity != wantSeverities[i] {
			t.Errorf("finding %d severity = %q, want %q", i, f.Severity, wantSeverities[i])
		}
	}
	if findings[0].Message != snap.Issues[0] {
		t.Errorf("finding 0 message = %q, want %q", findings[0].Message, snap.Issues[0])
	}
	if findings[2].Message != snap.Warnings[0] {
		t.Errorf("finding 2 message = %q, want %q", findings[2].Message, snap.Warnings[0])
	}
}

func TestRecordDuplicateReportID(t *testing.T) {
	store := openTestStore(t)

	snap := snapshotAt("report-1", time.Now().UTC())
	if err := store.Record(snap); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(snap); err == nil {
		t.Fatal("expected error recording duplicate report ID")
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if store.Path() != path {
		t.Errorf("Path() = %q, want %q", store.Path(), path)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(snapshotAt("report-1", time.Now().UTC())); err != nil {
		t.Fatalf("Record: %v", err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	checks, err := reopened.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(checks) != 1 {
		t.Errorf("got %d checks after reopen, want 1", len(checks))
	}
}
