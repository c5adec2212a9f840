package main

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/zusim/internal/domain"
	"github.com/rgehrsitz/zusim/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [input-file]",
	Short: "Interactive pension simulator",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp(cmd)
		defer a.cleanup()

		var initial *domain.SimulationInput
		if len(args) == 1 {
			in, err := a.loadInput(args[0])
			if err != nil {
				log.Fatal(err)
			}
			initial = in
		}

		p := tea.NewProgram(tui.NewModel(a.engine, initial), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatal(fmt.Errorf("error running TUI: %w", err))
		}
	},
}
