package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnjz/babyhippo/engine"
)

var saveCmd = &cobra.Command{
	Use:   "save <path>",
	Short: "Copy the current store to another file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadOrCreate()
		if err != nil {
			return err
		}
		out, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating %s: %w", args[0], err)
		}
		defer out.Close()
		if err := e.Save(out); err != nil {
			return err
		}
		fmt.Printf("saved to %s\n", args[0])
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <path>",
	Short: "Replace the current store with the contents of another file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer in.Close()

		e, err := engine.Load(in, seed)
		if err != nil {
			return err
		}
		if err := persistEngine(e); err != nil {
			return err
		}
		fmt.Printf("loaded %s into %s\n", args[0], storePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
}
