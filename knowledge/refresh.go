package knowledge

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/clinsafe/medreview-api/logging"
)

// Refresher performs the initial knowledge load and keeps the container
// fresh by re-reading the overlay directory on a schedule. Reloads swap
// atomically; a failed reload keeps the previous snapshot serving.
type Refresher struct {
	container *Container
	dir       string
	scheduler *gocron.Scheduler
}

// NewRefresher creates a refresher for the given container and overlay dir.
func NewRefresher(container *Container, dir string) *Refresher {
	return &Refresher{
		container: container,
		dir:       dir,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial load, then schedules reloads at 06:00 and 18:00
// and a staleness monitor. The initial load failing is fatal for the caller.
func (r *Refresher) Start() error {
	if err := r.reload(); err != nil {
		logging.Error("Failed to perform initial knowledge load", "error", err)
		return fmt.Errorf("initial knowledge load failed: %w", err)
	}

	_, err := r.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
		if err := r.reload(); err != nil {
			logging.Error("Failed to reload knowledge base", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule knowledge reloads", "error", err)
		return fmt.Errorf("failed to schedule knowledge reloads: %w", err)
	}

	r.scheduler.StartAsync()
	r.startStalenessMonitor()
	return nil
}

// Stop stops the scheduler.
func (r *Refresher) Stop() {
	r.scheduler.Stop()
}

// reload re-reads the overlay directory, validates the result and swaps it in.
func (r *Refresher) reload() error {
	if !r.container.BeginUpdate() {
		logging.Info("Knowledge reload already in progress, skipping...")
		return nil
	}
	defer r.container.EndUpdate()

	start := time.Now()
	kb, err := Load(r.dir)
	if err != nil {
		return err
	}

	report := Validate(kb)
	if len(report.ReversedDuplicatePairs) > 0 {
		logging.Warn("Interaction pairs recorded in both orders",
			"count", len(report.ReversedDuplicatePairs),
			"pairs", report.ReversedDuplicatePairs,
		)
	}
	if len(report.InvalidSeverities) > 0 {
		logging.Warn("Table entries with invalid severities",
			"count", len(report.InvalidSeverities),
			"entries", report.InvalidSeverities,
		)
	}
	if len(report.UnknownClassRefs) > 0 {
		logging.Warn("Class interactions referencing unknown classes",
			"count", len(report.UnknownClassRefs),
			"keys", report.UnknownClassRefs,
		)
	}
	if len(report.InvalidGuidelines) > 0 {
		logging.Warn("Dosing guidelines with inconsistent bounds",
			"count", len(report.InvalidGuidelines),
			"entries", report.InvalidGuidelines,
		)
	}
	if len(report.UnclassifiedPairDrugs) > 0 {
		logging.Warn("Pair-interaction drugs missing a drug class",
			"count", len(report.UnclassifiedPairDrugs),
			"drugs", report.UnclassifiedPairDrugs,
		)
	}

	r.container.Swap(kb, report)
	logging.Info("Knowledge base loaded",
		"duration", time.Since(start).String(),
		"pair_interactions", report.PairInteractionCount,
		"class_interactions", report.ClassInteractionCount,
		"guidelines", report.GuidelineCount,
	)
	return nil
}

// startStalenessMonitor warns when the snapshot has not been refreshed in
// over 25 hours, mirroring the scheduled twice-daily cadence.
func (r *Refresher) startStalenessMonitor() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if time.Since(r.container.LastUpdated()) > 25*time.Hour {
				logging.Warn("Knowledge base hasn't been reloaded in over 25 hours")
			}
		}
	}()
}
