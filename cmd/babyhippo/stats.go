package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show population and plasticity summary statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadOrCreate()
		if err != nil {
			return err
		}
		s := e.GetStats()
		fmt.Printf("words:              %d/%d\n", s.WordCount, s.Capacity)
		fmt.Printf("neurons:            %d\n", s.NeuronCount)
		fmt.Printf("synapses:           %d\n", s.SynapseCount)
		fmt.Printf("mean weight:        %.4f\n", s.MeanWeight)
		fmt.Printf("mean consolidation: %.4f\n", s.MeanConsolidation)
		fmt.Printf("persistent words:   %d (%.1f%%)\n", s.PersistentCount, s.PersistenceRatio*100)
		fmt.Printf("estimated memory:   %.4f MB\n", s.MemoryEstimateMB)
		return nil
	},
}

var topMemoriesN int

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the most important words by MemoryRank",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadOrCreate()
		if err != nil {
			return err
		}
		for i, m := range e.GetTopMemories(topMemoriesN) {
			fmt.Printf("%d. %-20s importance=%.4f\n", i+1, m.Word, m.Importance)
		}
		return nil
	},
}

var noveltyCmd = &cobra.Command{
	Use:   "novelty <word>",
	Short: "Report whether a word has ever been learned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadOrCreate()
		if err != nil {
			return err
		}
		fmt.Println(e.Novelty(args[0]))
		return nil
	},
}

var persistenceCmd = &cobra.Command{
	Use:   "persistence <word>",
	Short: "Show the consolidation/persistence estimate for a learned word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadOrCreate()
		if err != nil {
			return err
		}
		p, err := e.GetPersistence(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("weight:            %.4f\n", p.Weight)
		fmt.Printf("importance:        %.4f\n", p.Importance)
		fmt.Printf("consolidation:     %.4f\n", p.Consolidation)
		fmt.Printf("peak weight:       %.4f\n", p.PeakWeight)
		fmt.Printf("replay count:      %d\n", p.ReplayCount)
		fmt.Printf("estimated floor:   %.4f\n", p.EstimatedFloor)
		fmt.Printf("persistence score: %.4f\n", p.PersistenceScore)
		fmt.Printf("will persist:      %v\n", p.WillPersist)
		return nil
	},
}

func init() {
	topCmd.Flags().IntVar(&topMemoriesN, "n", 10, "number of top memories to list")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(noveltyCmd)
	rootCmd.AddCommand(persistenceCmd)
}
