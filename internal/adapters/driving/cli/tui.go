package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for linkcard.

Type or paste text and a preview card for its first link appears once typing
pauses. Edits to the config file are picked up while the TUI runs.

Controls:
  Enter    - Fetch now
  Ctrl+O   - Open the link
  Ctrl+P   - Switch policy
  Tab      - History
  Esc      - Clear / Back
  F1       - Help
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

// programRunner is the part of tea.Program the command uses.
type programRunner interface {
	Run() (tea.Model, error)
}

// newProgram creates the bubbletea program. Replaced in tests.
var newProgram = func(model tea.Model, opts ...tea.ProgramOption) programRunner {
	return tea.NewProgram(model, opts...)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Preview:    previewService,
		History:    historyService,
		Settings:   settingsService,
		Opener:     urlOpener,
		ConfigPath: configPath,
	}

	// Create the TUI app
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer app.Close()

	// Set up context from command
	if ctx := cmd.Context(); ctx != nil {
		app.WithContext(ctx)
	}

	p := newProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
