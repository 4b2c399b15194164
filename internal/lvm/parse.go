package lvm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Separator joins report fields in pvs/vgs/lvs output. LVM rejects it inside
// names, so a plain split is safe.
const Separator = "|"

// Minimum field counts per record kind; shorter lines are skipped.
const (
	pvMinFields   = 6
	vgMinFields   = 6
	lvMinFields   = 4
	poolMinFields = 5
)

// ParseFloat converts LVM numeric output to a float. A comma decimal
// separator is accepted; anything unparsable yields def, never an error.
func ParseFloat(s string, def float64) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// ParseInt is ParseFloat for integer fields.
func ParseInt(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// splitRecord splits one report line into trimmed fields, requiring at least
// min of them.
func splitRecord(line string, min int) ([]string, error) {
	fields := strings.Split(line, Separator)
	if len(fields) < min {
		return nil, fmt.Errorf("record %q: want %d fields, got %d", line, min, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// eachLine feeds every non-blank line of raw to fn. A non-nil error from fn
// skips that line and is collected as a diagnostic prefixed with source.
func eachLine(raw, source string, fn func(line string) error) []string {
	var diags []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			diags = append(diags, fmt.Sprintf("%s: %v", source, err))
		}
	}
	return diags
}

// ParsePVs converts pvs report output into physical volumes. Malformed lines
// are skipped and described in the returned diagnostics.
func ParsePVs(raw string) ([]PhysicalVolume, []string) {
	var pvs []PhysicalVolume
	diags := eachLine(raw, "pvs", func(line string) error {
		fields, err := splitRecord(line, pvMinFields)
		if err != nil {
			return err
		}

		vgName := fields[1]
		if vgName == "" {
			vgName = OrphanVG
		}

		size := ParseFloat(fields[2], 0)
		used := ParseFloat(fields[4], 0)
		usedPercent := 0.0
		if size > 0 {
			usedPercent = used / size * 100
		}

		pv := PhysicalVolume{
			Name:        fields[0],
			VGName:      vgName,
			SizeGB:      size,
			FreeGB:      ParseFloat(fields[3], 0),
			UsedPercent: usedPercent,
			Status:      pvState(fields[5]),
			Attrs:       fields[5],
		}
		if len(fields) > 6 {
			pv.UUID = fields[6]
		}
		pvs = append(pvs, pv)
		return nil
	})
	return pvs, diags
}

// pvState derives the coarse device state from pv_attr flags.
func pvState(attrs string) string {
	state := StateInactive
	if strings.Contains(attrs, "a") {
		state = StateActive
	}
	switch {
	case strings.Contains(attrs, "m"):
		state = StateMissing
	case strings.Contains(attrs, "u"):
		state = StateUnknown
	}
	return state
}

// ParseVGs converts vgs report output into volume groups.
func ParseVGs(raw string) ([]VolumeGroup, []string) {
	var vgs []VolumeGroup
	diags := eachLine(raw, "vgs", func(line string) error {
		fields, err := splitRecord(line, vgMinFields)
		if err != nil {
			return err
		}

		size := ParseFloat(fields[1], 0)
		free := ParseFloat(fields[2], 0)
		freePercent := 0.0
		if size > 0 {
			freePercent = free / size * 100
		}

		vg := VolumeGroup{
			Name:        fields[0],
			SizeGB:      size,
			FreeGB:      free,
			FreePercent: freePercent,
			Attrs:       fields[3],
			PVCount:     ParseInt(fields[4], 0),
			LVCount:     ParseInt(fields[5], 0),
		}
		if len(fields) > 6 {
			vg.UUID = fields[6]
		}
		if len(fields) > 7 {
			vg.ExtentSize = fields[7]
		}
		vgs = append(vgs, vg)
		return nil
	})
	return vgs, diags
}

// ParseLVs converts lvs report output into logical volumes.
func ParseLVs(raw string) ([]LogicalVolume, []string) {
	var lvs []LogicalVolume
	diags := eachLine(raw, "lvs", func(line string) error {
		fields, err := splitRecord(line, lvMinFields)
		if err != nil {
			return err
		}

		attrs := fields[3]
		status := StateInactive
		if strings.Contains(attrs, "a") {
			status = StateActive
		}
		if strings.Contains(attrs, "s") {
			status = StateSnapshot
		}

		lv := LogicalVolume{
			Name:   fields[0],
			VGName: fields[1],
			SizeGB: ParseFloat(fields[2], 0),
			Type:   lvType(attrs),
			Status: status,
			Attrs:  attrs,
		}
		if len(fields) > 4 {
			lv.Pool = fields[4]
		}
		if len(fields) > 5 {
			lv.Origin = fields[5]
		}
		if len(fields) > 6 {
			lv.UUID = fields[6]
		}
		lvs = append(lvs, lv)
		return nil
	})
	return lvs, diags
}

// lvType picks the volume type tag from lv_attr flags; the first match in
// priority order wins.
func lvType(attrs string) string {
	switch {
	case strings.Contains(attrs, "t"):
		return TypeThin
	case strings.Contains(attrs, "s"):
		return TypeSnapshot
	case strings.Contains(attrs, "V"):
		return TypeVirtual
	case strings.Contains(attrs, "m"):
		return TypeMirrored
	case strings.Contains(attrs, "r"):
		return TypeRAID
	case strings.Contains(attrs, "c"):
		return TypeCache
	default:
		return TypeNormal
	}
}

// ParseThinPools converts the pool-oriented lvs listing into thin pools.
// The listing covers every logical volume; rows without a thin count are
// ordinary volumes and are passed over silently.
func ParseThinPools(raw string) ([]ThinPool, []string) {
	var pools []ThinPool
	diags := eachLine(raw, "thin pools", func(line string) error {
		fields, err := splitRecord(line, poolMinFields)
		if err != nil {
			return err
		}
		if fields[4] == "" {
			return nil
		}

		pool := ThinPool{
			Name:            fields[0],
			VGName:          fields[1],
			DataPercent:     ParseFloat(fields[2], 0),
			MetadataPercent: ParseFloat(fields[3], 0),
			ThinCount:       ParseInt(fields[4], 0),
		}
		if len(fields) > 5 {
			pool.UUID = fields[5]
		}
		pools = append(pools, pool)
		return nil
	})
	return pools, diags
}

// mountRe matches mount(8) lines for device-mapper backed devices, either
// named maps or raw dm minors.
var mountRe = regexp.MustCompile(`^(/dev/(?:mapper/\S+|dm-\d+))\s+on\s+(\S+)\s+type\s+(\S+)`)

// ParseMounts extracts LVM-relevant mounts from mount(8) output. Lines for
// other device types are dropped.
func ParseMounts(raw string) []Mount {
	var mounts []Mount
	for _, line := range strings.Split(raw, "\n") {
		m := mountRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		mounts = append(mounts, Mount{Device: m[1], MountPoint: m[2], FSType: m[3]})
	}
	return mounts
}

// ParseDMStatus converts dmsetup status output. Each line is split on the
// first colon; the remainder is kept whole since target parameters may
// themselves contain colons.
func ParseDMStatus(raw string) []DMDevice {
	var devices []DMDevice
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		name, status, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		devices = append(devices, DMDevice{
			Name:   strings.TrimSpace(name),
			Status: strings.TrimSpace(status),
		})
	}
	return devices
}
