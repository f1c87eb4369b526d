package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"metareflect/internal/meta"
	"metareflect/internal/observ"
	"metareflect/internal/trace"
	"metareflect/internal/ui"
)

func init() {
	benchCmd.Flags().String("lanes", "u8,u32,i32,f64,bool", "comma-separated lane names, each gets its own pool-backed probe type")
	benchCmd.Flags().Int("cycles", 64, "alloc/deref round trips per lane")
	benchCmd.Flags().Bool("no-ui", false, "print plain lane results instead of the bubbletea progress view")
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Exercise the Pool's LIFO slot reuse across several lanes",
	Long:  `bench registers one probe type per lane and runs alloc/deref cycles against its Pool, reporting how often the freed slot was immediately reused.`,
	RunE:  runBench,
}

type benchOutcome struct {
	result meta.BenchResult
	err    error
}

func runBench(cmd *cobra.Command, args []string) error {
	laneStr, err := cmd.Flags().GetString("lanes")
	if err != nil {
		return fmt.Errorf("failed to get lanes flag: %w", err)
	}
	cyclesFlag, err := cmd.Flags().GetInt("cycles")
	if err != nil {
		return fmt.Errorf("failed to get cycles flag: %w", err)
	}
	noUI, err := cmd.Flags().GetBool("no-ui")
	if err != nil {
		return fmt.Errorf("failed to get no-ui flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	// safecast catches a negative --cycles before it reaches RunBench, which
	// trusts Cycles as an already-validated loop bound.
	if _, err := safecast.Conv[uint32](cyclesFlag); err != nil {
		return fmt.Errorf("invalid cycles value: %w", err)
	}
	cycles := cyclesFlag

	var lanes []string
	for _, lane := range strings.Split(laneStr, ",") {
		lane = strings.TrimSpace(lane)
		if lane != "" {
			lanes = append(lanes, lane)
		}
	}
	if len(lanes) == 0 {
		return fmt.Errorf("at least one lane is required")
	}

	cleanupProfile, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanupProfile()

	cleanupTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanupTrace()

	reg := meta.NewRegistry()
	reg.SetTracer(trace.FromContext(cmd.Context()))

	timer := observ.NewTimer()
	idx := timer.Begin("bench")

	req := &meta.BenchRequest{Reg: reg, Lanes: lanes, Cycles: cycles}

	var (
		result meta.BenchResult
		runErr error
	)
	if noUI || !isTerminal(os.Stdout) {
		result, runErr = meta.RunBench(cmd.Context(), req)
	} else {
		result, runErr = runBenchWithUI(cmd.Context(), lanes, req)
	}
	timer.End(idx, "")

	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "allocations: %d\n", result.Allocations)
	fmt.Fprintf(cmd.OutOrStdout(), "lifo reuses: %d/%d lanes\n", result.LIFOReuses, len(lanes))
	if showTimings {
		fmt.Fprint(cmd.OutOrStdout(), timer.Summary())
	}
	return nil
}

func runBenchWithUI(ctx context.Context, lanes []string, req *meta.BenchRequest) (meta.BenchResult, error) {
	events := make(chan meta.BenchEvent, 256)
	outcomeCh := make(chan benchOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = meta.ChannelSink{Ch: events}
		res, err := meta.RunBench(ctx, &reqCopy)
		outcomeCh <- benchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("bench", lanes, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
