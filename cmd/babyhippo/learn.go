package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var learnContext string

var learnCmd = &cobra.Command{
	Use:   "learn <word>",
	Short: "Teach the store a word, optionally under a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadOrCreate()
		if err != nil {
			return err
		}
		if err := e.Learn(args[0], learnContext); err != nil {
			return err
		}
		if err := persistEngine(e); err != nil {
			return err
		}
		fmt.Printf("learned %q\n", args[0])
		return nil
	},
}

func init() {
	learnCmd.Flags().StringVar(&learnContext, "context", "", "optional context label for this word")
	rootCmd.AddCommand(learnCmd)
}
