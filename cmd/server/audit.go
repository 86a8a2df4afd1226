package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/restaurant-ops/internal/config"
	"github.com/iliyamo/restaurant-ops/internal/queue"
)

func newAuditConsumerCommand() *cobra.Command {
	var logDir string
	cmd := &cobra.Command{
		Use:   "audit-consumer",
		Short: "Consume domain events from RabbitMQ and append them to the audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := config.Load()
			if logDir == "" {
				logDir = cfg.LogDir
			}
			log.Printf("audit-consumer: writing %s/audit.log", logDir)
			err := queue.StartAuditConsumer(ctx, cfg.RabbitURL, logDir)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for audit.log (default $LOG_DIR or ./logs)")
	return cmd
}
