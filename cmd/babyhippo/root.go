/*
Command babyhippo is a demonstration command-line front end for the
babyhippo hippocampal memory engine. It exercises engine.Engine only
through its exported operation set - learn, recall, novelty, sleep, decay,
persistence and stats queries, save and load - the same operation set any
external collaborator (a dialogue layer, a personality/DNA front-end, a
server) is expected to go through.

State lives in a single JSON store file between invocations (default
./babyhippo.json): a mutating subcommand loads it, applies the operation,
and saves it back; a read-only subcommand just loads and reports.
*/
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gnjz/babyhippo/engine"
)

var (
	storePath string
	capacity  int
	seed      int64
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "babyhippo",
	Short: "A bio-inspired spiking-neuron memory engine",
	Long: `babyhippo stores words as populations of spiking neurons wired by
plastic STDP synapses, learns their associations, consolidates them during
simulated sleep, ranks them by importance, and recalls them by cue.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "babyhippo.json", "path to the engine's save file")
	rootCmd.PersistentFlags().IntVar(&capacity, "capacity", 1000, "word capacity for a newly created store")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "deterministic random seed for a newly created store")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// loadOrCreate opens the engine store at storePath, or creates a fresh one
// at the configured capacity and seed if the file does not exist yet.
func loadOrCreate() (*engine.Engine, error) {
	f, err := os.Open(storePath)
	if os.IsNotExist(err) {
		e := engine.New(capacity, seed)
		e.SetLogger(newLogger())
		return e, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	defer f.Close()

	e, err := engine.Load(f, seed)
	if err != nil {
		return nil, fmt.Errorf("loading store: %w", err)
	}
	e.SetLogger(newLogger())
	return e, nil
}

// persistEngine writes e back to storePath, replacing its previous contents.
func persistEngine(e *engine.Engine) error {
	f, err := os.Create(storePath)
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer f.Close()
	if err := e.Save(f); err != nil {
		return fmt.Errorf("saving store: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
