package lvm

import "time"

// Status is the health classification of an entity or of the whole stack.
type Status string

const (
	StatusHealthy  Status = "HEALTHY"
	StatusWarning  Status = "WARNING"
	StatusCritical Status = "CRITICAL"
	// StatusUnknown is reserved for flag combinations no current rule
	// understands; no baseline classifier produces it.
	StatusUnknown Status = "UNKNOWN"
)

// Coarse device states derived from attribute flags. StateSnapshot replaces
// the activity state on snapshot volumes.
const (
	StateActive   = "ACTIVE"
	StateInactive = "INACTIVE"
	StateSnapshot = "SNAPSHOT"
	StateMissing  = "MISSING"
	StateUnknown  = "UNKNOWN"
)

// Logical volume type tags, derived from the lv_attr flag string.
const (
	TypeNormal   = "NORMAL"
	TypeThin     = "THIN"
	TypeSnapshot = "SNAPSHOT"
	TypeVirtual  = "VIRTUAL"
	TypeMirrored = "MIRRORED"
	TypeRAID     = "RAID"
	TypeCache    = "CACHE"
)

// OrphanVG marks a physical volume that is not assigned to any volume group.
const OrphanVG = "<orphan>"

// PhysicalVolume is one pvs record.
type PhysicalVolume struct {
	Name        string  `json:"name"`
	VGName      string  `json:"vg_name"`
	SizeGB      float64 `json:"size_gb"`
	FreeGB      float64 `json:"free_gb"`
	UsedPercent float64 `json:"used_percent"`
	Status      string  `json:"status"`
	Attrs       string  `json:"attributes"`
	UUID        string  `json:"uuid,omitempty"`
}

// VolumeGroup is one vgs record.
type VolumeGroup struct {
	Name        string  `json:"name"`
	SizeGB      float64 `json:"size_gb"`
	FreeGB      float64 `json:"free_gb"`
	FreePercent float64 `json:"free_percent"`
	PVCount     int     `json:"pv_count"`
	LVCount     int     `json:"lv_count"`
	Attrs       string  `json:"attributes"`
	UUID        string  `json:"uuid,omitempty"`
	ExtentSize  string  `json:"extent_size,omitempty"`
}

// LogicalVolume is one lvs record. Pool is set only for thin volumes and
// Origin only for snapshots; empty means not applicable.
type LogicalVolume struct {
	Name   string  `json:"name"`
	VGName string  `json:"vg_name"`
	SizeGB float64 `json:"size_gb"`
	Type   string  `json:"lv_type"`
	Pool   string  `json:"pool,omitempty"`
	Origin string  `json:"origin,omitempty"`
	Status string  `json:"status"`
	Attrs  string  `json:"attributes"`
	UUID   string  `json:"uuid,omitempty"`
}

// ThinPool is one thin pool row from the filtered lvs listing.
type ThinPool struct {
	Name            string  `json:"name"`
	VGName          string  `json:"vg_name"`
	DataPercent     float64 `json:"data_percent"`
	MetadataPercent float64 `json:"metadata_percent"`
	ThinCount       int     `json:"thin_count"`
	UUID            string  `json:"uuid,omitempty"`
}

// Mount is a mounted device-mapper backed filesystem.
type Mount struct {
	Device     string `json:"device"`
	MountPoint string `json:"mount_point"`
	FSType     string `json:"fs_type"`
}

// DMDevice is one dmsetup status entry. Status keeps the full target line;
// any shortening happens at render time only.
type DMDevice struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// BackupDir describes one LVM metadata directory.
type BackupDir struct {
	Path       string   `json:"path"`
	Name       string   `json:"name"`
	Exists     bool     `json:"exists"`
	Accessible bool     `json:"accessible"`
	FileCount  int      `json:"file_count"`
	Files      []string `json:"files,omitempty"`
}

// MetadataBackup aggregates the metadata directory inspection. Accessible is
// false when any existing directory could not be listed; a directory that is
// simply absent does not clear it.
type MetadataBackup struct {
	Directories []BackupDir `json:"directories"`
	TotalFiles  int         `json:"total_files"`
	Accessible  bool        `json:"accessible"`
}

// HealthSnapshot is the complete result of one check run. It is assembled
// once and never mutated; the overall verdict is derived, not stored.
type HealthSnapshot struct {
	ReportID        string           `json:"report_id"`
	Timestamp       time.Time        `json:"timestamp"`
	LVMVersion      string           `json:"lvm_version,omitempty"`
	PhysicalVolumes []PhysicalVolume `json:"physical_volumes"`
	VolumeGroups    []VolumeGroup    `json:"volume_groups"`
	LogicalVolumes  []LogicalVolume  `json:"logical_volumes"`
	ThinPools       []ThinPool       `json:"thin_pools"`
	Mounts          []Mount          `json:"mounts"`
	DMDevices       []DMDevice       `json:"dm_devices"`
	MetadataBackup  MetadataBackup   `json:"metadata_backup"`
	Issues          []string         `json:"issues"`
	Warnings        []string         `json:"warnings"`
}
