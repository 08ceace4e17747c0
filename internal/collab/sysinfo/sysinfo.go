package sysinfo

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Stats 主机状态快照
type Stats struct {
	Hostname    string  `json:"hostname"`
	CPUPercent  float64 `json:"cpuPercent"`
	CPUCount    int     `json:"cpuCount"`
	MemPercent  float64 `json:"memPercent"`
	MemUsedGB   float64 `json:"memUsedGB"`
	MemTotalGB  float64 `json:"memTotalGB"`
	DiskPercent float64 `json:"diskPercent"`
	DiskUsedGB  float64 `json:"diskUsedGB"`
	DiskTotalGB float64 `json:"diskTotalGB"`
	OS          string  `json:"os"`
	Release     string  `json:"release"`
}

const gb = float64(1 << 30)

// Read 采集当前主机的 CPU、内存、磁盘状态
func Read(ctx context.Context) (*Stats, error) {
	percents, err := cpu.PercentWithContext(ctx, 500*time.Millisecond, false)
	if err != nil {
		return nil, fmt.Errorf("cpu stats failed: %w", err)
	}
	cpuPercent := 0.0
	if len(percents) > 0 {
		cpuPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("memory stats failed: %w", err)
	}

	du, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("disk stats failed: %w", err)
	}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("host info failed: %w", err)
	}

	return &Stats{
		Hostname:    info.Hostname,
		CPUPercent:  cpuPercent,
		CPUCount:    runtime.NumCPU(),
		MemPercent:  vm.UsedPercent,
		MemUsedGB:   float64(vm.Used) / gb,
		MemTotalGB:  float64(vm.Total) / gb,
		DiskPercent: du.UsedPercent,
		DiskUsedGB:  float64(du.Used) / gb,
		DiskTotalGB: float64(du.Total) / gb,
		OS:          info.OS,
		Release:     info.PlatformVersion,
	}, nil
}
