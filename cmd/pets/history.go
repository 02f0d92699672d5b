package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pets/internal/platform/tui"
	"github.com/vovakirdan/tui-pets/internal/storage"
)

var flagAllPacks bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved pets and the behavior journal",
	Run:   runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagAllPacks, "all", false, "Show every pack instead of the selected one")
}

func runHistory(_ *cobra.Command, _ []string) {
	s, err := loadSetup()
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(s.dbPath)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	pack := s.pack
	if flagAllPacks {
		pack = ""
	}
	if err := tui.RunHistory(store, pack, width, height); err != nil {
		fail("%v", err)
	}
}
