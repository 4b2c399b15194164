package lvm

import "strings"

// Usage thresholds (percent) for thin pool classification.
const (
	thinWarnPercent = 80.0
	thinCritPercent = 90.0
)

// Free-space thresholds (percent) for volume group report findings.
const (
	vgFreeCritPercent = 5.0
	vgFreeWarnPercent = 10.0
)

// ClassifyPV maps a physical volume's state label to a health status.
func ClassifyPV(pv PhysicalVolume) Status {
	status := strings.ToLower(pv.Status)
	switch {
	case strings.Contains(status, "unknown"), strings.Contains(status, "missing"):
		return StatusCritical
	case strings.Contains(status, "inactive"):
		return StatusWarning
	default:
		return StatusHealthy
	}
}

// ClassifyVG maps volume group attribute flags to a health status: partial
// or exported groups are critical, clean groups healthy, and anything else
// falls back to a warning.
func ClassifyVG(vg VolumeGroup) Status {
	partial := strings.Contains(vg.Attrs, "p")
	exported := strings.Contains(vg.Attrs, "x")
	switch {
	case partial || exported:
		return StatusCritical
	case !partial && !exported:
		return StatusHealthy
	}
	return StatusWarning
}

// ClassifyLV maps logical volume flags to a health status. Snapshots get
// their own check first so snapshot-specific verdicts win over the generic
// activity rules.
func ClassifyLV(lv LogicalVolume) Status {
	if strings.Contains(lv.Attrs, "s") {
		if st := classifySnapshot(lv); st != StatusHealthy {
			return st
		}
	}
	switch {
	case !strings.Contains(lv.Attrs, "a"):
		return StatusCritical
	case strings.Contains(lv.Attrs, "m"):
		return StatusWarning
	default:
		return StatusHealthy
	}
}

// classifySnapshot is the hook for snapshot corruption detection. The
// baseline policy considers every snapshot healthy.
func classifySnapshot(LogicalVolume) Status {
	return StatusHealthy
}

// ClassifyThinPool maps pool usage to a health status. Both data thresholds
// are evaluated before metadata usage is considered.
func ClassifyThinPool(pool ThinPool) Status {
	switch {
	case pool.DataPercent > thinCritPercent:
		return StatusCritical
	case pool.DataPercent > thinWarnPercent:
		return StatusWarning
	case pool.MetadataPercent > thinCritPercent:
		return StatusCritical
	case pool.MetadataPercent > thinWarnPercent:
		return StatusWarning
	default:
		return StatusHealthy
	}
}
