package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Info describes the machine the renderer runs on
type Info struct {
	CPUModel     string  `json:"cpuModel"`
	LogicalCores int     `json:"logicalCores"`
	ClockGHz     float64 `json:"clockGHz"`
	TotalMemory  uint64  `json:"totalMemory"` // Bytes
	GoMaxProcs   int     `json:"goMaxProcs"`
}

// Collect reads CPU and memory information from the host
func Collect() (Info, error) {
	cpuInfo, err := cpu.Info()
	if err != nil {
		return Info{}, fmt.Errorf("failed to read CPU info: %w", err)
	}
	if len(cpuInfo) == 0 {
		return Info{}, fmt.Errorf("no CPU information available")
	}

	cores, err := cpu.Counts(true)
	if err != nil {
		return Info{}, fmt.Errorf("failed to count CPU cores: %w", err)
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return Info{}, fmt.Errorf("failed to read memory info: %w", err)
	}

	return Info{
		CPUModel:     cpuInfo[0].ModelName,
		LogicalCores: cores,
		ClockGHz:     cpuInfo[0].Mhz / 1000, // Convert MHz to GHz
		TotalMemory:  memInfo.Total,
		GoMaxProcs:   runtime.GOMAXPROCS(0),
	}, nil
}

// DefaultWorkers returns the logical core count, falling back to
// runtime.NumCPU when the host cannot be probed
func DefaultWorkers() int {
	cores, err := cpu.Counts(true)
	if err != nil || cores <= 0 {
		return runtime.NumCPU()
	}
	return cores
}

// TotalMemoryGB returns total memory in whole gigabytes
func (i Info) TotalMemoryGB() uint64 {
	return i.TotalMemory / (1024 * 1024 * 1024)
}

// String summarizes the host on one line
func (i Info) String() string {
	return fmt.Sprintf("%s, %d logical cores @ %.2f GHz, %d GB RAM", i.CPUModel, i.LogicalCores, i.ClockGHz, i.TotalMemoryGB())
}
