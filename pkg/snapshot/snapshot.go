package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// cpuSampleInterval is how long Capture samples CPU usage
const cpuSampleInterval = 200 * time.Millisecond

// Snapshot is a point-in-time description of the host
type Snapshot struct {
	Name      string
	Hostname  string
	Platform  string
	CPUUsage  float64
	MemUsage  float64
	DiskUsage float64
	TakenAt   time.Time
	Labels    map[string]string
}

// Capture samples the host and returns a fresh snapshot. Sampling CPU
// usage takes cpuSampleInterval, which is what makes cloning an existing
// snapshot worthwhile.
func Capture(ctx context.Context, name string) (*Snapshot, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("host info: %w", err)
	}

	snap := &Snapshot{
		Name:     name,
		Hostname: info.Hostname,
		Platform: fmt.Sprintf("%s/%s", info.OS, info.Platform),
		TakenAt:  time.Now(),
		Labels:   make(map[string]string),
	}

	if cpuPercent, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err == nil && len(cpuPercent) > 0 {
		snap.CPUUsage = cpuPercent[0]
	}
	if memStats, err := mem.VirtualMemoryWithContext(ctx); err == nil && memStats != nil {
		snap.MemUsage = memStats.UsedPercent
	}
	if diskStats, err := disk.UsageWithContext(ctx, "/"); err == nil && diskStats != nil {
		snap.DiskUsage = diskStats.UsedPercent
	}

	return snap, nil
}

// Clone returns a deep copy sharing no state with the original. Mutating
// the clone, including its labels, leaves the original untouched.
func (s *Snapshot) Clone() *Snapshot {
	clone := *s
	clone.Labels = make(map[string]string, len(s.Labels))
	for key, value := range s.Labels {
		clone.Labels[key] = value
	}
	return &clone
}

// WithLabel sets a label and returns the snapshot for chaining
func (s *Snapshot) WithLabel(key, value string) *Snapshot {
	if s.Labels == nil {
		s.Labels = make(map[string]string)
	}
	s.Labels[key] = value
	return s
}

// String returns a one-line summary for console output
func (s *Snapshot) String() string {
	return fmt.Sprintf("%s [%s on %s] cpu=%.1f%% mem=%.1f%% disk=%.1f%% labels=%d",
		s.Name, s.Hostname, s.Platform, s.CPUUsage, s.MemUsage, s.DiskUsage, len(s.Labels))
}
