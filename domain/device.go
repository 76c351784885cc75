package domain

// CoreStatus reports whether a core is online.
type CoreStatus struct {
	Index   int  `json:"index"`
	Enabled bool `json:"enabled"`
}

// DeviceStatus is the snapshot returned by the device endpoint.
type DeviceStatus struct {
	Cores                []CoreStatus   `json:"cores"`
	Governor             GovernorKind   `json:"governor"`
	AvailableGovernors   []GovernorKind `json:"available_governors"`
	AvailableFrequencies []int64        `json:"available_frequencies"`
	MinFrequency         int64          `json:"min_frequency"`
	MaxFrequency         int64          `json:"max_frequency"`
	CurrentFrequency     int64          `json:"current_frequency"`
	Temperature          *float64       `json:"temperature,omitempty"` // °C
	MemoryUsedKB         uint64         `json:"memory_used_kb"`
	MemoryTotalKB        uint64         `json:"memory_total_kb"`
	OverallUsage         float64        `json:"overall_usage"`
}
