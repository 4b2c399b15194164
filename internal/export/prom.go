package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/sigreer/lvmgod/internal/lvm"
)

// WriteMetrics renders the snapshot as a Prometheus textfile at path, in the
// shape the node-exporter textfile collector picks up. The file is written in
// one shot without a rename step.
func WriteMetrics(path string, snap *lvm.HealthSnapshot) error {
	data, err := renderMetrics(snap)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func renderMetrics(snap *lvm.HealthSnapshot) ([]byte, error) {
	reg := prometheus.NewRegistry()

	health := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lvm_health_check",
		Help: "Overall LVM health (1 = healthy, 0 = not)",
	}, []string{"type"})
	vgFree := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lvm_volume_group_free_percent",
		Help: "Free space percentage per volume group",
	}, []string{"vg"})
	poolUsage := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lvm_thin_pool_usage",
		Help: "Thin pool usage percentage by type (data or metadata)",
	}, []string{"pool", "type"})
	reg.MustRegister(health, vgFree, poolUsage)

	var overall float64
	if snap.OverallStatus() == lvm.StatusHealthy {
		overall = 1
	}
	health.WithLabelValues("overall").Set(overall)

	for _, vg := range snap.VolumeGroups {
		vgFree.WithLabelValues(vg.Name).Set(vg.FreePercent)
	}
	for _, pool := range snap.ThinPools {
		name := pool.VGName + "/" + pool.Name
		poolUsage.WithLabelValues(name, "data").Set(pool.DataPercent)
		poolUsage.WithLabelValues(name, "metadata").Set(pool.MetadataPercent)
	}

	families, err := reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return nil, fmt.Errorf("encode metrics: %w", err)
		}
	}
	return buf.Bytes(), nil
}
