package smart

import (
	"path/filepath"
	"runtime"
)

// DefaultPath returns where smartctl is expected on this platform. Windows
// installs ship a bundled copy next to the agent.
func DefaultPath() string {
	if runtime.GOOS == "windows" {
		abs, err := filepath.Abs(filepath.Join("externals", "smartctl", "smartctl.exe"))
		if err != nil {
			return filepath.Join("externals", "smartctl", "smartctl.exe")
		}
		return abs
	}
	return "smartctl"
}
