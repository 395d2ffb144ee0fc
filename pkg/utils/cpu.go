package utils

import "github.com/shirou/gopsutil/cpu"

// GetCPUUsage reports the current total CPU utilization percentage.
func GetCPUUsage() (float64, error) {
	usage, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	return usage[0], nil
}
