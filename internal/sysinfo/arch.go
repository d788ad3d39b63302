package sysinfo

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// Arch reports the running machine architecture in uname -m style
// (x86_64, aarch64, armv7l, i686), the vocabulary release-asset names use.
// The kernel's own report wins; the Go toolchain target is the fallback when
// host information is unavailable.
func Arch() string {
	if info, err := host.Info(); err == nil && info.KernelArch != "" {
		return info.KernelArch
	}
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "arm":
		return "armv7l"
	case "386":
		return "i686"
	}
	return runtime.GOARCH
}
