package main

import (
	"delivery-simulation-service/internal/adapters/csvsource"
	"delivery-simulation-service/internal/adapters/decision"
	"delivery-simulation-service/internal/config"
	"delivery-simulation-service/internal/platform/logger"
	"delivery-simulation-service/internal/ports"
	"delivery-simulation-service/internal/services"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	dataDir      string
	scenarioPath string
	correct      string
	start        string
	end          string
	packageID    int
	logLevel     string
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()

	opts := options{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate the day's truck deliveries and report package statuses",
		Long: "simulate runs every scheduled truck over its nearest-neighbor route, " +
			"prints each truck's delivery log and the combined mileage, and can " +
			"report package statuses for a time window.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.dataDir, "data-dir", config.Get("DATA_DIR", "data"), "directory holding packages.csv, addresses.csv and distances.csv")
	f.StringVar(&opts.scenarioPath, "scenario", config.Get("SCENARIO_PATH", "data/scenario.yaml"), "scenario file (built-in scenario when missing)")
	f.StringVar(&opts.correct, "correct-address", "ask", "answer to the address correction: yes, no or ask")
	f.StringVar(&opts.start, "start", "", "status window start, HH:MM or HH:MM:SS")
	f.StringVar(&opts.end, "end", "", "status window end, HH:MM or HH:MM:SS (defaults to start)")
	f.IntVar(&opts.packageID, "package", 0, "limit the status report to one package id")
	f.StringVar(&opts.logLevel, "log-level", config.Get("LOG_LEVEL", "warn"), "log level written to stderr")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	log := logger.Init(logger.Options{Level: opts.logLevel, Pretty: true, Output: cmd.ErrOrStderr()})
	out := cmd.OutOrStdout()

	decider, err := newDecider(opts.correct, cmd.InOrStdin(), out)
	if err != nil {
		return err
	}
	start, end, report, err := parseWindow(opts.start, opts.end)
	if err != nil {
		return err
	}

	sc, err := config.LoadScenario(opts.scenarioPath)
	if err != nil {
		return err
	}

	src := csvsource.New(opts.dataDir)
	res, err := services.RunFleet(cmd.Context(), sc, src, src, decider, log)
	if err != nil {
		return err
	}

	writeRun(out, res)

	if report || opts.packageID > 0 {
		if !report {
			start, end = 0, 24*time.Hour-time.Second
		}
		if err := writeStatusReport(out, res, sc.At(start), sc.At(end), opts.packageID); err != nil {
			return err
		}
	}

	return res.Err
}

func newDecider(answer string, in io.Reader, out io.Writer) (ports.AddressDecider, error) {
	switch strings.ToLower(answer) {
	case "yes":
		return decision.Fixed(true), nil
	case "no":
		return decision.Fixed(false), nil
	case "ask":
		return &decision.Prompt{In: in, Out: out}, nil
	default:
		return nil, fmt.Errorf("--correct-address must be yes, no or ask, got %q", answer)
	}
}

// parseWindow reports whether a window was requested. An omitted end equals
// start, which asks for the statuses at that instant.
func parseWindow(start, end string) (time.Duration, time.Duration, bool, error) {
	if start == "" && end == "" {
		return 0, 0, false, nil
	}

	var s, e time.Duration
	if start != "" {
		d, err := config.ParseClock(start)
		if err != nil {
			return 0, 0, false, fmt.Errorf("--start: %w", err)
		}
		s = d
	}
	e = s
	if end != "" {
		d, err := config.ParseClock(end)
		if err != nil {
			return 0, 0, false, fmt.Errorf("--end: %w", err)
		}
		e = d
	}
	if e < s {
		return 0, 0, false, fmt.Errorf("--end %s is before --start %s", end, start)
	}
	return s, e, true, nil
}
