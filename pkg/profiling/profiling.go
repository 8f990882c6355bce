// Package profiling writes CPU and heap profiles of a running chooser.
package profiling

import (
	"fmt"
	"os"
	"runtime/pprof"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	osCreate              = os.Create
	pprofStartCPUProfile  = pprof.StartCPUProfile
	pprofStopCPUProfile   = pprof.StopCPUProfile
	pprofWriteHeapProfile = pprof.WriteHeapProfile
)

var memProfilingInterval = 30 * time.Second

// DoCPUProfiling starts CPU profiling into path. The returned func stops it.
// Failures are logged and profiling is skipped.
func DoCPUProfiling(path string, logger *zap.Logger) (stop func()) {
	f, err := osCreate(path)
	if err != nil {
		logger.Error("could not create CPU profile", zap.String("path", path), zap.Error(err))
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		logger.Error("could not start CPU profile", zap.Error(err))
		_ = f.Close()
		return func() {}
	}
	return func() {
		pprofStopCPUProfile()
		if err := f.Close(); err != nil {
			logger.Warn("could not close CPU profile", zap.Error(err))
		}
	}
}

// DoMemProfiling rewrites the heap profile at path periodically and once more
// when the returned func is called.
func DoMemProfiling(path string, logger *zap.Logger) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(memProfilingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := writeHeapProfile(path); err != nil {
					logger.Warn("could not write heap profile", zap.Error(err))
				}
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
			if err := writeHeapProfile(path); err != nil {
				logger.Warn("could not write heap profile", zap.Error(err))
			}
		})
	}
}

func writeHeapProfile(path string) error {
	f, err := osCreate(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err = pprofWriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}
