package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pets/internal/config"
	"github.com/vovakirdan/tui-pets/internal/registry"
	"github.com/vovakirdan/tui-pets/internal/spritepack"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available sprite packs",
	Long: `List the built-in sprite packs and any packs found in the packs directory.
Files in the packs directory that fail to load are listed with their error.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	s, err := loadSetup()
	if err != nil {
		fail("%v", err)
	}

	fmt.Println("Built-in packs:")
	for _, info := range registry.List() {
		marker := " "
		if info.ID == s.pack {
			marker = "*"
		}
		fmt.Printf(" %s %-14s %s\n", marker, info.ID, info.Title)
	}

	dir := config.ExpandHome(s.cfg.Simulation.PacksDir)
	if dir == "" {
		return
	}
	packs, invalid, err := spritepack.NewLoader(dir).LoadAll()
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("\nPacks in %s:\n", dir)
	if len(packs) == 0 && len(invalid) == 0 {
		fmt.Println("  (none)")
	}
	for _, p := range packs {
		fmt.Printf("   %-14s %-24s %s\n", p.ID, p.Title, p.FilePath)
	}

	if len(invalid) > 0 {
		paths := make([]string, 0, len(invalid))
		for path := range invalid {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		fmt.Println("\nInvalid files:")
		for _, path := range paths {
			fmt.Printf("  %s\n    %v\n", path, invalid[path])
		}
	}
}
