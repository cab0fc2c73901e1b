// Package system holds host-process helpers: worker sizing, file limits and
// the working directories the CLI expects.
package system

import (
	"os"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
)

// DefaultWorkers returns the number of physical cores, or the logical CPU
// count when physical cores cannot be read.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// InitResourceLimits raises the soft open-file limit so that batch runs with
// many workers don't run out of descriptors.
func InitResourceLimits(logger zerolog.Logger, want uint64) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn().Err(err).Msg("failed to read open file limit")
		return
	}
	if rLimit.Cur >= want {
		return
	}

	rLimit.Cur = min(want, rLimit.Max)
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn().Err(err).Msg("failed to raise open file limit")
		return
	}
	logger.Debug().Uint64("limit", rLimit.Cur).Msg("open file limit raised")
}

// EnsureDirs creates every directory in dirs, including parents.
func EnsureDirs(dirs ...string) error {
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
