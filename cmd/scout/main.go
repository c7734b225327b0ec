package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vulnverified/scout/internal/engine"
	"github.com/vulnverified/scout/internal/output"
	"github.com/vulnverified/scout/internal/recon"
	"github.com/vulnverified/scout/pkg/ports"
)

// Set via ldflags at build time.
var version = "dev"

const httpFetchTimeout = 5 * time.Second

func main() {
	output.Version = version

	var (
		jsonOutput  bool
		portsList   string
		timeout     time.Duration
		concurrency int
		outputDir   string
		noColor     bool
		silent      bool
		verbose     bool
	)

	rootCmd := &cobra.Command{
		Use:   "scout <target>",
		Short: "Recon a single target",
		Long:  "Single-target reconnaissance — address resolution, WHOIS registration data, DNS record enumeration, common-port probing, and HTTP header capture, aggregated into one report.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.ToLower(strings.TrimSpace(args[0]))
			if target == "" {
				return fmt.Errorf("target is required")
			}

			// Respect NO_COLOR env var.
			if _, ok := os.LookupEnv("NO_COLOR"); ok {
				noColor = true
			}

			// Parse custom ports if provided.
			scanPorts := ports.Common
			if portsList != "" {
				parsed, err := parsePorts(portsList)
				if err != nil {
					return fmt.Errorf("invalid --ports: %w", err)
				}
				scanPorts = parsed
			}

			userAgent := fmt.Sprintf("scout/%s (+https://github.com/vulnverified/scout)", version)

			cfg := engine.Config{
				Target:      target,
				Ports:       scanPorts,
				Timeout:     timeout,
				HTTPTimeout: httpFetchTimeout,
				Concurrency: concurrency,
			}

			// Set up context with signal handling for clean Ctrl+C.
			// In-flight probe connections are abandoned, not awaited.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)
			go func() {
				<-sigCh
				fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
				cancel()
			}()

			// Wire up stages.
			stages := engine.Stages{
				Resolver: &recon.Resolver{},
				Whois:    &recon.WhoisCollector{},
				Records:  &recon.RecordCollector{},
				Scanner:  &recon.Scanner{},
				Headers:  &recon.HeaderFetcher{UserAgent: userAgent},
			}

			// Progress output.
			showProgress := !jsonOutput && !silent
			progress := output.NewProgress(os.Stderr, verbose, !showProgress)

			// Print header.
			if showProgress {
				output.WriteHeader(os.Stderr, noColor)
			}

			// Run the pipeline. Collector failures never abort the run.
			report, err := engine.Run(ctx, cfg, stages, progress)
			if err != nil {
				return err
			}

			if showProgress {
				progress.Complete()
			}

			// Persist the artifact. This is the one failure that changes
			// the exit status.
			path, err := output.SaveReport(outputDir, report)
			if err != nil {
				return err
			}

			// Output results.
			if jsonOutput {
				return output.WriteJSON(os.Stdout, report)
			}

			output.WritePorts(os.Stdout, report.Ports, noColor)
			output.WriteSummary(os.Stdout, report, path, noColor)

			return nil
		},
	}

	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON to stdout")
	rootCmd.Flags().StringVar(&portsList, "ports", "", "Comma-separated port list (default: common 20)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", time.Second, "Per-connection probe timeout")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 10, "Max concurrent connection attempts")
	rootCmd.Flags().StringVar(&outputDir, "output", ".", "Directory for the report artifact")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable terminal colors")
	rootCmd.Flags().BoolVar(&silent, "silent", false, "Results only, no progress")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose per-step detail")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("scout {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parsePorts parses a comma-separated list of port numbers.
func parsePorts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	var result []int
	seen := make(map[int]bool)

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q", p)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("port %d out of range (1-65535)", port)
		}
		if !seen[port] {
			seen[port] = true
			result = append(result, port)
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no valid ports specified")
	}
	return result, nil
}
