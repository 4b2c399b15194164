package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sigreer/lvmgod/internal/config"
	"github.com/sigreer/lvmgod/internal/lvm"
)

// ErrNotInstalled reports that the LVM userspace tools are absent. It is the
// only condition that aborts a check.
var ErrNotInstalled = errors.New("lvm tools not installed")

// Report field lists passed to the LVM reporting commands. Parsers index
// into these, so order matters.
const (
	pvFields   = "pv_name,vg_name,pv_size,pv_free,pv_used,pv_attr,pv_uuid"
	vgFields   = "vg_name,vg_size,vg_free,vg_attr,pv_count,lv_count,vg_uuid,vg_extent_size"
	lvFields   = "lv_name,vg_name,lv_size,lv_attr,pool_lv,origin,lv_uuid,segments"
	poolFields = "lv_name,vg_name,data_percent,metadata_percent,thin_count,lv_uuid"
)

// reportArgs are the shared flags for pvs/vgs/lvs: gibibyte units without
// suffixes, no header row, pipe-separated fields.
var reportArgs = []string{"--units", "g", "--nosuffix", "--noheadings", "--separator", lvm.Separator}

// Collector shells out to the LVM tools and assembles health snapshots.
type Collector struct {
	// Timeout bounds each command invocation separately.
	Timeout time.Duration
	// Backups lists the metadata directories to inspect.
	Backups []lvm.BackupLocation

	lookPath func(file string) (string, error)
}

// New builds a collector from the loaded configuration.
func New(cfg *config.Config) *Collector {
	backups := lvm.DefaultBackupLocations()
	if len(cfg.BackupDirs) > 0 {
		backups = nil
		for _, d := range cfg.BackupDirs {
			backups = append(backups, lvm.BackupLocation{Name: d.Name, Path: d.Path})
		}
	}
	return &Collector{
		Timeout:  cfg.CommandTimeout(),
		Backups:  backups,
		lookPath: exec.LookPath,
	}
}

// Preflight verifies the LVM tooling exists and returns its version banner.
// A failing version query is tolerated; a missing lvm binary is not.
func (c *Collector) Preflight() (string, error) {
	lookPath := c.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath("lvm"); err != nil {
		return "", ErrNotInstalled
	}
	out, err := c.run("lvm", "version")
	if err != nil {
		return "", nil
	}
	banner, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(banner), nil
}

// Collect runs the full check. Individual command failures empty the
// affected collection and come back as diagnostics; only missing tooling
// returns an error.
func (c *Collector) Collect() (*lvm.HealthSnapshot, []string, error) {
	version, err := c.Preflight()
	if err != nil {
		return nil, nil, err
	}

	var diags []string
	step := func(name string, args ...string) string {
		out, err := c.run(name, args...)
		if err != nil {
			diags = append(diags, err.Error())
			return ""
		}
		return out
	}
	report := func(tool, fields string) string {
		args := append(append([]string{}, reportArgs...), "-o", fields)
		return step(tool, args...)
	}

	pvs, d := lvm.ParsePVs(report("pvs", pvFields))
	diags = append(diags, d...)
	vgs, d := lvm.ParseVGs(report("vgs", vgFields))
	diags = append(diags, d...)
	lvs, d := lvm.ParseLVs(report("lvs", lvFields))
	diags = append(diags, d...)
	pools, d := lvm.ParseThinPools(report("lvs", poolFields))
	diags = append(diags, d...)

	mounts := lvm.ParseMounts(step("mount"))
	dmDevices := lvm.ParseDMStatus(step("dmsetup", "status"))

	issues, warnings := lvm.GenerateFindings(pvs, vgs, lvs, pools)

	snap := &lvm.HealthSnapshot{
		ReportID:        uuid.NewString(),
		Timestamp:       time.Now(),
		LVMVersion:      version,
		PhysicalVolumes: pvs,
		VolumeGroups:    vgs,
		LogicalVolumes:  lvs,
		ThinPools:       pools,
		Mounts:          mounts,
		DMDevices:       dmDevices,
		MetadataBackup:  lvm.InspectBackups(c.Backups),
		Issues:          issues,
		Warnings:        warnings,
	}
	return snap, diags, nil
}

// run executes one command and returns its stdout. Stderr is folded into the
// error; hitting the timeout is reported distinctly.
func (c *Collector) run(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%s: timed out after %s", name, c.Timeout)
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return stdout.String(), nil
}
