package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pets/internal/graph"
	"github.com/vovakirdan/tui-pets/internal/spritepack"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check sprite pack files",
	Long: `Check sprite pack files against the pack schema and build their
behavior graphs. Each problem is reported with its error code.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	loader := spritepack.NewLoader("")
	failed := 0
	for _, path := range args {
		pack, err := loader.LoadFile(path)
		if err != nil {
			failed++
			var cfgErr *graph.ConfigError
			if errors.As(err, &cfgErr) {
				fmt.Printf("FAIL %s\n  code:    %s\n  problem: %s\n", path, cfgErr.Code, cfgErr.Message)
			} else {
				fmt.Printf("FAIL %s\n  %v\n", path, err)
			}
			continue
		}
		g, _ := pack.Graph()
		fmt.Printf("ok   %s (%s: %d actions, %d behaviors)\n", path, pack.ID, g.NumActions(), g.NumBehaviors())
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(args))
		os.Exit(1)
	}
}
