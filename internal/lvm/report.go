package lvm

import "fmt"

// GenerateFindings walks the entity collections in enumeration order
// (physical volumes, volume groups, logical volumes, thin pools) and builds
// the issue and warning lists for a snapshot. Volume group free-space rules
// apply only here: they flag the report without changing the group's own
// classification.
func GenerateFindings(pvs []PhysicalVolume, vgs []VolumeGroup, lvs []LogicalVolume, pools []ThinPool) (issues, warnings []string) {
	for _, pv := range pvs {
		switch ClassifyPV(pv) {
		case StatusCritical:
			issues = append(issues, fmt.Sprintf("Critical PV: %s (%s)", pv.Name, pv.Status))
		case StatusWarning:
			warnings = append(warnings, fmt.Sprintf("Warning PV: %s (%s)", pv.Name, pv.Status))
		}
	}

	for _, vg := range vgs {
		switch {
		case ClassifyVG(vg) == StatusCritical:
			issues = append(issues, fmt.Sprintf("Critical VG: %s (partial/missing)", vg.Name))
		case vg.FreePercent < vgFreeCritPercent:
			issues = append(issues, fmt.Sprintf("Critical VG: %s (only %.1f%% free)", vg.Name, vg.FreePercent))
		case vg.FreePercent < vgFreeWarnPercent:
			warnings = append(warnings, fmt.Sprintf("Warning VG: %s (low free space: %.1f%%)", vg.Name, vg.FreePercent))
		}
	}

	for _, lv := range lvs {
		if ClassifyLV(lv) == StatusCritical {
			issues = append(issues, fmt.Sprintf("Critical LV: %s/%s (inactive)", lv.VGName, lv.Name))
		}
	}

	for _, pool := range pools {
		switch ClassifyThinPool(pool) {
		case StatusCritical:
			pct := pool.MetadataPercent
			if pool.DataPercent > thinCritPercent {
				pct = pool.DataPercent
			}
			issues = append(issues, fmt.Sprintf("Critical Thin Pool: %s/%s (over %.1f%% used)", pool.VGName, pool.Name, pct))
		case StatusWarning:
			pct := pool.MetadataPercent
			if pool.DataPercent > thinWarnPercent {
				pct = pool.DataPercent
			}
			warnings = append(warnings, fmt.Sprintf("Warning Thin Pool: %s/%s (%.1f%% used)", pool.VGName, pool.Name, pct))
		}
	}

	return issues, warnings
}

// OverallStatus derives the snapshot verdict. Any critically classified
// entity makes the whole check critical regardless of the finding lists;
// otherwise raised warnings make it a warning.
func (s *HealthSnapshot) OverallStatus() Status {
	for _, pv := range s.PhysicalVolumes {
		if ClassifyPV(pv) == StatusCritical {
			return StatusCritical
		}
	}
	for _, vg := range s.VolumeGroups {
		if ClassifyVG(vg) == StatusCritical {
			return StatusCritical
		}
	}
	for _, lv := range s.LogicalVolumes {
		if ClassifyLV(lv) == StatusCritical {
			return StatusCritical
		}
	}
	for _, pool := range s.ThinPools {
		if ClassifyThinPool(pool) == StatusCritical {
			return StatusCritical
		}
	}
	if len(s.Warnings) > 0 {
		return StatusWarning
	}
	return StatusHealthy
}
