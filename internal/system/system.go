package system

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit so long renders with many
// section crops do not run out of descriptors.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Failed to read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Failed to raise file limit: %v", err)
	} else {
		fmt.Printf("[*] Open file limit raised to %d\n", rLimit.Cur)
	}
}

// Capabilities reports which encoders the local ffmpeg build offers.
type Capabilities struct {
	FFmpeg bool
	VP9    bool
	H264   bool
}

var (
	capsOnce sync.Once
	caps     Capabilities
)

// Probe detects ffmpeg and its encoder set once per process.
func Probe() Capabilities {
	capsOnce.Do(func() {
		out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
		if err != nil {
			return
		}
		caps.FFmpeg = true
		listing := string(out)
		caps.VP9 = strings.Contains(listing, "libvpx-vp9")
		caps.H264 = strings.Contains(listing, "libx264")
	})
	return caps
}

// AvailableMemory returns bytes of memory currently available to the
// process, or 0 when the platform reports nothing.
func AvailableMemory() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return vm.Available
}
