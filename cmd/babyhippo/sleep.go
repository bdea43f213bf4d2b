package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sleepDynamic bool

var sleepCmd = &cobra.Command{
	Use:   "sleep <cycles>",
	Short: "Run consolidation cycles over the store's learned words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cycles, err := parsePositiveInt(args[0])
		if err != nil {
			return err
		}
		e, err := loadOrCreate()
		if err != nil {
			return err
		}
		report, err := e.Sleep(cycles, sleepDynamic)
		if err != nil {
			return err
		}
		if err := persistEngine(e); err != nil {
			return err
		}
		fmt.Printf("cycles=%d replays=%d unique_replays=%d consolidations=%d sws_cycles=%d rem_cycles=%d\n",
			report.Cycles, report.Replays, report.UniqueReplays, report.Consolidations, report.SWSCycles, report.REMCycles)
		return nil
	},
}

var decayCmd = &cobra.Command{
	Use:   "decay <rate>",
	Short: "Apply one time-dependent decay step at the given rate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rate float64
		if _, err := fmt.Sscanf(args[0], "%g", &rate); err != nil {
			return fmt.Errorf("invalid rate %q", args[0])
		}
		e, err := loadOrCreate()
		if err != nil {
			return err
		}
		if err := e.Decay(rate); err != nil {
			return err
		}
		if err := persistEngine(e); err != nil {
			return err
		}
		fmt.Printf("decayed at rate %g\n", rate)
		return nil
	},
}

func init() {
	sleepCmd.Flags().BoolVar(&sleepDynamic, "dynamic", false, "use the six-stage dynamic sleep pipeline instead of classical replay")
	rootCmd.AddCommand(sleepCmd)
	rootCmd.AddCommand(decayCmd)
}

func parsePositiveInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return n, nil
}
