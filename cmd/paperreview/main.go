package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"PaperReview/internal/app"
	"PaperReview/internal/config"
	"PaperReview/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paperreview",
		Short: "Review arXiv papers with staged model assistants",
	}
	root.AddCommand(newReviewCmd(), newBatchCmd(), newDailyReportCmd())
	return root
}

// buildApp loads configuration and wires the application.
func buildApp() (*app.Application, error) {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	return app.New(cfg, logger)
}

func newReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review <arxiv-id>",
		Short: "Review a single paper by arXiv id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}
			defer application.Close()

			scores, err := application.ReviewOne(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, weighted score %.2f (reviewer %s)\n",
				scores.PaperID, scores.ReviewStatus, scores.WeightedScore, scores.AIReviewer)
			return nil
		},
	}
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Review every unscored paper in the feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}
			defer application.Close()

			summary, err := application.ReviewBatch(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d papers, %d succeeded, %d failed\n",
				summary.RunID, summary.Total, summary.Succeeded, summary.Failed)
			return nil
		},
	}
}

func newDailyReportCmd() *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "daily-report",
		Short: "Generate and publish the digest for one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if dayFlag != "" {
				parsed, err := time.Parse("2006-01-02", dayFlag)
				if err != nil {
					return fmt.Errorf("parse --day: %w", err)
				}
				day = parsed
			}

			application, err := buildApp()
			if err != nil {
				return err
			}
			defer application.Close()

			report, err := application.DailyReport(cmd.Context(), day)
			if err != nil {
				return err
			}
			if report == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no finished reviews for that day")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVar(&dayFlag, "day", "", "report day as YYYY-MM-DD (default today)")
	return cmd
}
