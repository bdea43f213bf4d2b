package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnjz/babyhippo/engine"
)

var (
	recallContext string
	recallTopN    int
)

var recallCmd = &cobra.Command{
	Use:   "recall <cue>",
	Short: "Recall the words best associated with a cue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadOrCreate()
		if err != nil {
			return err
		}

		if recallTopN == 1 {
			word, ok, err := e.RecallBest(args[0], recallContext)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("(no memory)")
				return nil
			}
			fmt.Println(word)
			return nil
		}

		results, err := e.Recall(args[0], recallContext, recallTopN)
		if err != nil {
			if errors.Is(err, engine.ErrEmptyStore) {
				fmt.Println("(store is empty)")
				return nil
			}
			return err
		}
		for i, r := range results {
			fmt.Printf("%d. %-20s score=%.4f\n", i+1, r.Word, r.Score)
		}
		return nil
	},
}

func init() {
	recallCmd.Flags().StringVar(&recallContext, "context", "", "optional context gate to filter recall by")
	recallCmd.Flags().IntVar(&recallTopN, "top", 5, "number of candidates to return (1 returns the single best word)")
	rootCmd.AddCommand(recallCmd)
}
