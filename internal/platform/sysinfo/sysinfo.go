// Package sysinfo describes the host the service runs on.
package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

type Info struct {
	Platform  string `json:"platform"`
	CPU       string `json:"cpu"`
	Cores     int    `json:"cores"`
	RAM       string `json:"ram"`
	GoVersion string `json:"go_version"`
}

// Collect gathers what it can. Probes that fail leave their field empty.
func Collect() Info {
	info := Info{
		Cores:     runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}

	if hostStat, err := host.Info(); err == nil {
		info.Platform = fmt.Sprintf("%s %s", hostStat.Platform, hostStat.PlatformVersion)
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		info.CPU = cpuStat[0].ModelName
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.Cores = n
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", vmStat.Total/1024/1024/1024)
	}

	return info
}
