package main

import (
	"context"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"clipflow/internal/blob"
	"clipflow/internal/bus"
	"clipflow/internal/config"
	"clipflow/internal/deps"
	"clipflow/internal/enhance"
	"clipflow/internal/logging"
	"clipflow/internal/metadata"
	"clipflow/internal/worker"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "clipflow-worker",
		Short:         "Clipflow processing worker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newEnhanceCommand(&configFlag))
	rootCmd.AddCommand(newMetadataCommand(&configFlag))
	return rootCmd
}

func newEnhanceCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "enhance",
		Short: "Consume tasks and write enhanced renditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRole(*configFlag, "clipflow-worker-enhance", func(cfg *config.Config, client *worker.Client, logger *slog.Logger) (worker.Job, error) {
				if err := deps.Verify(deps.EnhanceRequirements(cfg)); err != nil {
					return nil, err
				}
				source, err := blob.NewStore(cfg.Paths.VideosDir)
				if err != nil {
					return nil, err
				}
				output, err := blob.NewStore(cfg.Paths.ProcessedDir)
				if err != nil {
					return nil, err
				}
				return enhance.New(cfg, source, output, client, logger), nil
			})
		},
	}
}

func newMetadataCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Consume tasks and extract stream descriptors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRole(*configFlag, "clipflow-worker-metadata", func(cfg *config.Config, client *worker.Client, logger *slog.Logger) (worker.Job, error) {
				if err := deps.Verify(deps.MetadataRequirements(cfg)); err != nil {
					return nil, err
				}
				source, err := blob.NewStore(cfg.Paths.VideosDir)
				if err != nil {
					return nil, err
				}
				return metadata.New(cfg, source, client, logger), nil
			})
		},
	}
}

func runRole(configPath, component string, build func(*config.Config, *worker.Client, *slog.Logger) (worker.Job, error)) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(strings.TrimSpace(configPath))
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg, component)
	if err != nil {
		return err
	}

	taskBus, err := bus.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer taskBus.Close()

	client := worker.NewClient(cfg)
	job, err := build(cfg, client, logger)
	if err != nil {
		return err
	}

	runner, err := worker.NewRunner(taskBus, job, logger)
	if err != nil {
		return err
	}
	return runner.Run(ctx)
}
