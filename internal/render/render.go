package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sigreer/lvmgod/internal/lvm"
)

// maxDMStatusLen caps how much of a device-mapper status line the report
// shows; the snapshot keeps the full string.
const maxDMStatusLen = 50

// Renderer writes the human-readable health report. Color is decided by the
// caller; the renderer itself never probes the terminal.
type Renderer struct {
	Out   io.Writer
	Color bool
}

func New(out io.Writer, color bool) *Renderer {
	return &Renderer{Out: out, Color: color}
}

// Report writes the full report for one snapshot.
func (r *Renderer) Report(snap *lvm.HealthSnapshot) {
	r.header(snap)
	r.physicalVolumes(snap.PhysicalVolumes)
	r.volumeGroups(snap.VolumeGroups)
	r.logicalVolumes(snap.LogicalVolumes)
	r.thinPools(snap.ThinPools)
	r.mounts(snap.Mounts)
	r.dmDevices(snap.DMDevices)
	r.metadataBackup(snap.MetadataBackup)
	r.findings(snap)
	r.summary(snap)
}

func (r *Renderer) paint(style lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return style.Render(text)
}

func (r *Renderer) paintStatus(status lvm.Status) string {
	return r.paint(statusStyle(status), string(status))
}

func (r *Renderer) section(name string) {
	fmt.Fprintln(r.Out, r.paint(titleStyle, name))
}

func (r *Renderer) noData() {
	fmt.Fprintln(r.Out, r.paint(dimStyle, "  No data available"))
	fmt.Fprintln(r.Out)
}

func (r *Renderer) header(snap *lvm.HealthSnapshot) {
	fmt.Fprintln(r.Out, r.paint(titleStyle, "LVM Health Report"))
	fmt.Fprintf(r.Out, "Report ID: %s\n", snap.ReportID)
	fmt.Fprintf(r.Out, "Generated: %s\n", snap.Timestamp.Format("2006-01-02 15:04:05"))
	if snap.LVMVersion != "" {
		fmt.Fprintf(r.Out, "Tooling:   %s\n", snap.LVMVersion)
	}
	fmt.Fprintln(r.Out)
}

func (r *Renderer) physicalVolumes(pvs []lvm.PhysicalVolume) {
	r.section("Physical Volumes")
	if len(pvs) == 0 {
		r.noData()
		return
	}
	w := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVG\tSIZE\tFREE\tUSED\tSTATE\tHEALTH")
	for _, pv := range pvs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f%%\t%s\t%s\n",
			pv.Name, pv.VGName, humanGiB(pv.SizeGB), humanGiB(pv.FreeGB),
			pv.UsedPercent, pv.Status, r.paintStatus(lvm.ClassifyPV(pv)))
	}
	w.Flush()
	fmt.Fprintln(r.Out)
}

func (r *Renderer) volumeGroups(vgs []lvm.VolumeGroup) {
	r.section("Volume Groups")
	if len(vgs) == 0 {
		r.noData()
		return
	}
	w := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPVS\tLVS\tSIZE\tFREE\tFREE%\tHEALTH")
	for _, vg := range vgs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%.1f%%\t%s\n",
			vg.Name, vg.PVCount, vg.LVCount, humanGiB(vg.SizeGB),
			humanGiB(vg.FreeGB), vg.FreePercent, r.paintStatus(lvm.ClassifyVG(vg)))
	}
	w.Flush()
	fmt.Fprintln(r.Out)
}

func (r *Renderer) logicalVolumes(lvs []lvm.LogicalVolume) {
	r.section("Logical Volumes")
	if len(lvs) == 0 {
		r.noData()
		return
	}
	w := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVG\tTYPE\tSIZE\tPOOL\tORIGIN\tSTATE\tHEALTH")
	for _, lv := range lvs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			lv.Name, lv.VGName, lv.Type, humanGiB(lv.SizeGB),
			orDash(lv.Pool), orDash(lv.Origin), lv.Status,
			r.paintStatus(lvm.ClassifyLV(lv)))
	}
	w.Flush()
	fmt.Fprintln(r.Out)
}

func (r *Renderer) thinPools(pools []lvm.ThinPool) {
	r.section("Thin Pools")
	if len(pools) == 0 {
		r.noData()
		return
	}
	w := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POOL\tVG\tDATA\tMETA\tVOLUMES\tHEALTH")
	for _, pool := range pools {
		fmt.Fprintf(w, "%s\t%s\t%.1f%%\t%.1f%%\t%d\t%s\n",
			pool.Name, pool.VGName, pool.DataPercent, pool.MetadataPercent,
			pool.ThinCount, r.paintStatus(lvm.ClassifyThinPool(pool)))
	}
	w.Flush()
	fmt.Fprintln(r.Out)
}

func (r *Renderer) mounts(mounts []lvm.Mount) {
	r.section("Mounted LVM Filesystems")
	if len(mounts) == 0 {
		r.noData()
		return
	}
	w := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tMOUNTPOINT\tTYPE")
	for _, m := range mounts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Device, m.MountPoint, m.FSType)
	}
	w.Flush()
	fmt.Fprintln(r.Out)
}

func (r *Renderer) dmDevices(devices []lvm.DMDevice) {
	r.section("Device Mapper Targets")
	if len(devices) == 0 {
		r.noData()
		return
	}
	w := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS")
	for _, dev := range devices {
		fmt.Fprintf(w, "%s\t%s\n", dev.Name, truncate(dev.Status, maxDMStatusLen))
	}
	w.Flush()
	fmt.Fprintln(r.Out)
}

func (r *Renderer) metadataBackup(mb lvm.MetadataBackup) {
	r.section("Metadata Backups")
	if len(mb.Directories) == 0 {
		r.noData()
		return
	}
	for _, dir := range mb.Directories {
		switch {
		case !dir.Exists:
			fmt.Fprintf(r.Out, "  - %s: not present\n", dir.Path)
		case !dir.Accessible:
			fmt.Fprintf(r.Out, "  %s %s: not accessible\n", r.paint(critStyle, "✗"), dir.Path)
		default:
			fmt.Fprintf(r.Out, "  %s %s: %d files\n", r.paint(okStyle, "✓"), dir.Path, dir.FileCount)
			if len(dir.Files) > 0 {
				fmt.Fprintf(r.Out, "      %s\n", r.paint(dimStyle, strings.Join(dir.Files, ", ")))
			}
		}
	}
	fmt.Fprintf(r.Out, "  Total backup files: %d\n", mb.TotalFiles)
	fmt.Fprintln(r.Out)
}

func (r *Renderer) findings(snap *lvm.HealthSnapshot) {
	if len(snap.Issues) > 0 {
		r.section("Issues")
		for _, issue := range snap.Issues {
			fmt.Fprintf(r.Out, "  %s %s\n", r.paint(critStyle, "✗"), issue)
		}
		fmt.Fprintln(r.Out)
	}
	if len(snap.Warnings) > 0 {
		r.section("Warnings")
		for _, warning := range snap.Warnings {
			fmt.Fprintf(r.Out, "  %s %s\n", r.paint(warnStyle, "⚠"), warning)
		}
		fmt.Fprintln(r.Out)
	}
}

func (r *Renderer) summary(snap *lvm.HealthSnapshot) {
	r.section("Summary")

	healthyPVs := 0
	for _, pv := range snap.PhysicalVolumes {
		if lvm.ClassifyPV(pv) == lvm.StatusHealthy {
			healthyPVs++
		}
	}
	healthyVGs := 0
	var totalGB, freeGB float64
	for _, vg := range snap.VolumeGroups {
		if lvm.ClassifyVG(vg) == lvm.StatusHealthy {
			healthyVGs++
		}
		totalGB += vg.SizeGB
		freeGB += vg.FreeGB
	}
	healthyLVs := 0
	for _, lv := range snap.LogicalVolumes {
		if lvm.ClassifyLV(lv) == lvm.StatusHealthy {
			healthyLVs++
		}
	}
	healthyPools := 0
	for _, pool := range snap.ThinPools {
		if lvm.ClassifyThinPool(pool) == lvm.StatusHealthy {
			healthyPools++
		}
	}

	freePercent := 0.0
	if totalGB > 0 {
		freePercent = freeGB / totalGB * 100
	}

	fmt.Fprintf(r.Out, "  Physical volumes: %d (%d healthy)\n", len(snap.PhysicalVolumes), healthyPVs)
	fmt.Fprintf(r.Out, "  Volume groups:    %d (%d healthy)\n", len(snap.VolumeGroups), healthyVGs)
	fmt.Fprintf(r.Out, "  Logical volumes:  %d (%d healthy)\n", len(snap.LogicalVolumes), healthyLVs)
	fmt.Fprintf(r.Out, "  Thin pools:       %d (%d healthy)\n", len(snap.ThinPools), healthyPools)
	fmt.Fprintf(r.Out, "  Mounted volumes:  %d\n", len(snap.Mounts))
	fmt.Fprintf(r.Out, "  DM devices:       %d\n", len(snap.DMDevices))
	fmt.Fprintf(r.Out, "  VG capacity:      %s total, %s free (%.1f%%)\n", humanGiB(totalGB), humanGiB(freeGB), freePercent)
	fmt.Fprintln(r.Out)

	overall := snap.OverallStatus()
	fmt.Fprintf(r.Out, "%s Overall status: %s\n",
		r.paint(statusStyle(overall), statusSymbol(overall)), r.paintStatus(overall))
}

// humanGiB renders a GiB quantity from the reports as a binary size string.
func humanGiB(gb float64) string {
	if gb <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(gb * humanize.GiByte))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to max characters, counting runes so a multibyte
// character is never cut in half.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
