/*
reloader.go - Preset file reloader

PURPOSE:
  Periodically re-reads the presets YAML file while the server runs, so
  scenarios can be added or revised without a restart.

DESIGN:
  - Runs a background goroutine with a configurable check interval
  - Skips the reload when the file's modification time has not moved
  - A file with any invalid preset is logged and ignored; the catalog
    keeps serving what it had

USAGE:
  reloader := NewPresetReloader(catalog, "presets.yaml", logger)
  reloader.CheckInterval = 30 * time.Second
  reloader.MarkCurrent() // the catalog already holds this file
  reloader.Start()
  // ... later
  reloader.Stop()

SEE ALSO:
  - factory/catalog.go: LoadYAML
*/
package api

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/warp/cashflow-lab/factory"
)

// PresetReloader keeps a catalog in step with a presets file.
type PresetReloader struct {
	Catalog       *factory.Catalog
	Path          string
	CheckInterval time.Duration
	Logger        *logrus.Logger

	ticker  *time.Ticker
	stop    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	checkMu sync.Mutex
	modTime time.Time
}

// NewPresetReloader creates a reloader checking once a minute.
func NewPresetReloader(catalog *factory.Catalog, path string, logger *logrus.Logger) *PresetReloader {
	return &PresetReloader{
		Catalog:       catalog,
		Path:          path,
		CheckInterval: time.Minute,
		Logger:        logger,
	}
}

// Start begins polling. A non-positive interval leaves the reloader idle.
func (pr *PresetReloader) Start() {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	if pr.CheckInterval <= 0 || pr.ticker != nil {
		return
	}

	pr.ticker = time.NewTicker(pr.CheckInterval)
	pr.stop = make(chan struct{})
	pr.wg.Add(1)
	go pr.run()

	pr.Logger.WithFields(logrus.Fields{
		"path":     pr.Path,
		"interval": pr.CheckInterval.String(),
	}).Info("preset reloader started")
}

// Stop halts polling and waits for an in-flight reload.
func (pr *PresetReloader) Stop() {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	if pr.ticker == nil {
		return
	}
	pr.ticker.Stop()
	close(pr.stop)
	pr.wg.Wait()
	pr.ticker = nil
	pr.Logger.Info("preset reloader stopped")
}

func (pr *PresetReloader) run() {
	defer pr.wg.Done()
	for {
		select {
		case <-pr.ticker.C:
			pr.RunNow()
		case <-pr.stop:
			return
		}
	}
}

// MarkCurrent records the file's present modification time as loaded, so
// the next check only reloads after a later change.
func (pr *PresetReloader) MarkCurrent() error {
	pr.checkMu.Lock()
	defer pr.checkMu.Unlock()

	info, err := os.Stat(pr.Path)
	if err != nil {
		return err
	}
	pr.modTime = info.ModTime()
	return nil
}

// RunNow checks the file once and reports whether the catalog was reloaded.
func (pr *PresetReloader) RunNow() bool {
	pr.checkMu.Lock()
	defer pr.checkMu.Unlock()

	log := pr.Logger.WithField("path", pr.Path)

	info, err := os.Stat(pr.Path)
	if err != nil {
		log.WithError(err).Warn("presets file unavailable")
		return false
	}
	if !info.ModTime().After(pr.modTime) {
		return false
	}

	n, err := pr.Catalog.LoadYAML(pr.Path)
	if err != nil {
		log.WithError(err).Error("presets reload rejected")
		return false
	}
	pr.modTime = info.ModTime()
	log.WithField("count", n).Info("presets reloaded")
	return true
}
