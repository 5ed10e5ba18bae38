package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/jobtuner/internal/tuner"
	"github.com/GoSim-25-26J-441/jobtuner/pkg/config"
	"github.com/GoSim-25-26J-441/jobtuner/pkg/logger"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

const defaultConfigPath = "config/tuning.yaml"

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "jobtuner",
		Short: "Tune MapReduce job configuration parameters with recursive random search",
		Long: `jobtuner searches the joint configuration space of a MapReduce workflow
for the settings that minimize its predicted runtime.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.applyLogLevel(opts.logLevel)
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newTuneCmd(opts), newSpaceCmd(), newVersionCmd())
	return root
}

func (o *rootOptions) applyLogLevel(level string) error {
	if _, ok := logger.ParseLevel(level); !ok {
		return fmt.Errorf("invalid log level %q", level)
	}
	logger.SetDefault(logger.NewText(level, os.Stderr))
	return nil
}

func newTuneCmd(root *rootOptions) *cobra.Command {
	var (
		configPath string
		seed       int64
		output     string
		deadline   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Search for the best configuration of every job in a workflow",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "yaml" && output != "text" {
				return fmt.Errorf("invalid output format %q (must be yaml or text)", output)
			}

			cfg, err := config.LoadTuningConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
				if err := root.applyLogLevel(cfg.LogLevel); err != nil {
					return err
				}
			}

			t, err := tuner.New(cfg)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("deadline") {
				t.WithDeadline(deadline)
			}
			t.WithLogger(logger.Default)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := t.Run(ctx, seed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "text" {
				return res.WriteText(out)
			}
			data, err := config.MarshalTuningResultYAML(res.Report())
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the tuning config")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed; 0 uses the configured seed")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format (yaml, text)")
	cmd.Flags().DurationVar(&deadline, "deadline", 0, "wall-clock limit for the search; overrides the configured deadline")
	return cmd
}

func newSpaceCmd() *cobra.Command {
	var (
		configPath string
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "space",
		Short: "Describe the parameter space of every job in a workflow",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadTuningConfig(configPath)
			if err != nil {
				return err
			}
			t, err := tuner.New(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dimensions:  %d\n", t.Space().NumDimensions())
			fmt.Fprintf(out, "cardinality: %s\n", t.Space().NumUniquePoints())
			search := t.SearchConfig()
			fmt.Fprintf(out, "sample size: %d\n", search.SampleSize())
			fmt.Fprintf(out, "patience:    %d\n", search.Patience())

			for _, job := range t.Describe(seed) {
				name := job.Name
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(out, "\njob %d (%s): %d dimensions, %s points\n", job.ID, name, job.Dimensions, job.Cardinality)
				for _, p := range job.Parameters {
					fmt.Fprintf(out, "  %s\n", p)
				}
				fmt.Fprintf(out, "  sample: %s\n", job.Sample)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the tuning config")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for the sample point")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the jobtuner version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jobtuner %s\n", version)
		},
	}
}
