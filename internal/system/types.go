package system

// SystemInfo represents general system information
type SystemInfo struct {
	User   string `json:"user"`
	Host   string `json:"host"`
	OS     string `json:"os"`
	Kernel string `json:"kernel"`
	CPU    string `json:"cpu"`
}

// DiskUsage represents capacity of one mounted partition
type DiskUsage struct {
	Path        string  `json:"path"`
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// CoreCounts represents physical and logical CPU core counts
type CoreCounts struct {
	Physical uint `json:"physical"`
	Logical  uint `json:"logical"`
}

// CoreTemperatures represents native CPU temperature sensors
type CoreTemperatures struct {
	Cores   []float64 `json:"cores"`
	Package *float64  `json:"package,omitempty"`
}
