package sysinfo

import (
	"fmt"
	"log"

	"vehicle-route-optimizer/internal/domain"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// maxDefaultWorkers caps the default number of parallel searches.
const maxDefaultWorkers = 4

// Collect describes the host running the optimizer. Fields that cannot be
// read are left as "unknown" rather than failing the run.
func Collect() *domain.SysInfo {
	info := &domain.SysInfo{Platform: "unknown", CPU: "unknown", Memory: "unknown"}

	if h, err := host.Info(); err != nil {
		log.Printf("sysinfo: host info unavailable: %v", err)
	} else {
		info.Platform = fmt.Sprintf("%s %s", h.Platform, h.PlatformVersion)
	}

	if c, err := cpu.Info(); err != nil || len(c) == 0 {
		log.Printf("sysinfo: cpu info unavailable: %v", err)
	} else {
		info.CPU = c[0].ModelName
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Printf("sysinfo: memory info unavailable: %v", err)
	} else {
		info.Memory = fmt.Sprintf("%d GB", vm.Total/1024/1024/1024)
	}

	return info
}

// DefaultWorkers returns the logical CPU count capped at maxDefaultWorkers,
// or 1 when it cannot be determined.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return 1
	}
	return min(n, maxDefaultWorkers)
}
