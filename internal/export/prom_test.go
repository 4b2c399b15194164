package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sigreer/lvmgod/internal/lvm"
)

func TestWriteMetrics(t *testing.T) {
	snap := sampleSnapshot()
	path := filepath.Join(t.TempDir(), "lvm.prom")

	if err := WriteMetrics(path, snap); err != nil {
		t.Fatalf("WriteMetrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	out := string(data)

	for _, line := range []string{
		`# TYPE lvm_health_check gauge`,
		`lvm_health_check{type="overall"} 1`,
		`# TYPE lvm_volume_group_free_percent gauge`,
		`lvm_volume_group_free_percent{vg="vg0"} 50`,
		`# TYPE lvm_thin_pool_usage gauge`,
		`lvm_thin_pool_usage{pool="vg0/thinpool0",type="data"} 45.5`,
		`lvm_thin_pool_usage{pool="vg0/thinpool0",type="metadata"} 12.25`,
	} {
		if !strings.Contains(out, line) {
			t.Errorf("metrics output missing %q\ngot:\n%s", line, out)
		}
	}
}

func TestWriteMetricsUnhealthy(t *testing.T) {
	snap := sampleSnapshot()
	snap.PhysicalVolumes[0].Status = lvm.StateMissing

	path := filepath.Join(t.TempDir(), "lvm.prom")
	if err := WriteMetrics(path, snap); err != nil {
		t.Fatalf("WriteMetrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if !strings.Contains(string(data), `lvm_health_check{type="overall"} 0`) {
		t.Errorf("expected overall gauge 0 for critical snapshot, got:\n%s", data)
	}
}

func TestWriteMetricsEmptySnapshot(t *testing.T) {
	snap := &lvm.HealthSnapshot{}
	path := filepath.Join(t.TempDir(), "lvm.prom")

	if err := WriteMetrics(path, snap); err != nil {
		t.Fatalf("WriteMetrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	// The overall gauge is always present, even with nothing collected.
	if !strings.Contains(string(data), `lvm_health_check{type="overall"} 1`) {
		t.Errorf("expected overall gauge for empty snapshot, got:\n%s", data)
	}
	if strings.Contains(string(data), "lvm_volume_group_free_percent{") {
		t.Errorf("unexpected per-VG series for empty snapshot:\n%s", data)
	}
}
