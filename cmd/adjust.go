package cmd

import (
	"context"
	"fmt"
	"strings"

	"bootcamp/config"
	"bootcamp/events"
	"bootcamp/models"
	"bootcamp/service"

	log "github.com/sirupsen/logrus"
)

// AdjustPoints applies a one-off admin adjustment from the command line
func AdjustPoints(ctx context.Context, userID string, delta int64, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("reason is required")
	}

	cfg := config.Get()
	configureLogging(cfg)

	eventBus := events.NewBus()
	uowFactory, closeStore, err := openStore(ctx, cfg, eventBus)
	if err != nil {
		return err
	}
	defer closeStore()

	pointsService := service.NewPointsService(uowFactory, cfg.MaxAwardRetries)
	result, err := pointsService.AwardPoints(ctx, models.AwardRequest{
		UserID:       userID,
		PointsChange: delta,
		Source:       models.PointSourceAdminAdjustment,
		Reason:       reason,
	})
	if err != nil {
		return fmt.Errorf("failed to adjust points: %w", err)
	}
	eventBus.Wait()

	log.WithFields(log.Fields{
		"userID":         userID,
		"previousPoints": result.PreviousPoints,
		"newPoints":      result.NewPoints,
		"clamped":        result.Clamped(),
	}).Info("Points adjusted")

	return nil
}
