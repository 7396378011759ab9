package runner

import (
	"context"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/host"
)

// HostInfo identifies the machine a run executed on.
type HostInfo struct {
	Hostname string
	Platform string
}

var (
	hostOnce sync.Once
	hostInfo HostInfo
)

// LocalHost returns the host identity, looked up once per process.
func LocalHost(ctx context.Context) HostInfo {
	hostOnce.Do(func() {
		hostInfo = lookupHost(ctx)
	})
	return hostInfo
}

func lookupHost(ctx context.Context) HostInfo {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		name, _ := os.Hostname()
		return HostInfo{Hostname: name, Platform: runtime.GOOS + "/" + runtime.GOARCH}
	}

	parts := []string{info.OS}
	if info.Platform != "" {
		parts = append(parts, info.Platform)
	}
	if info.PlatformVersion != "" {
		parts = append(parts, info.PlatformVersion)
	}
	arch := info.KernelArch
	if arch == "" {
		arch = runtime.GOARCH
	}
	return HostInfo{
		Hostname: info.Hostname,
		Platform: strings.Join(parts, " ") + " (" + arch + ")",
	}
}
