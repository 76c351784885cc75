package util

import (
	"os"
	"strings"
)

const machineIDPath = "/etc/machine-id"

// GetMachineID identifies the host in exported metrics. MACHINE_ID wins over /etc/machine-id.
func GetMachineID() string {
	return machineIDFrom(machineIDPath)
}

func machineIDFrom(path string) string {
	machineID := strings.TrimSpace(os.Getenv("MACHINE_ID"))
	if machineID != "" {
		return machineID
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown-machine-id"
	}
	machineID = strings.TrimSpace(string(data))
	if machineID == "" {
		return "unknown-machine-id"
	}
	return machineID
}
