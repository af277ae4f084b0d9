package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"keepnotes/internal/config"
	"keepnotes/internal/logs"
	"keepnotes/internal/notes/data"
	"keepnotes/internal/notes/service"
	"keepnotes/internal/tui"
)

// app carries what every command needs once the root has set it up.
type app struct {
	flags   config.CLIFlags
	verbose bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg     *config.Config
	storage data.Storage
	svc     service.NoteService

	openStorage func(cfg *config.Config) (data.Storage, error)
	runTUI      func(cfg *config.Config, svc service.NoteService, storage data.Storage) error
}

func newApp() *app {
	return &app{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		openStorage: func(cfg *config.Config) (data.Storage, error) {
			return data.OpenStorage(cfg.Backend, cfg.DataDir)
		},
		runTUI: tui.Run,
	}
}

// Run executes the command line and returns the process exit code.
// Without a subcommand it launches the TUI.
func Run(args []string) int {
	return run(newApp(), args)
}

func run(a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.Execute()
	a.shutdown()
	if err != nil {
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "keepnotes",
		Short: "Pin, color and search short notes from the terminal",
		Long: `keepnotes keeps short text notes in a single local store.

Running keepnotes without a command opens the interactive card grid.
Ids may be shortened to any unique prefix.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logs.Logger.Println("Starting app in TUI mode")
			return a.runTUI(a.cfg, a.svc, a.storage)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.DataDir, "data-dir", "d", "", "Directory holding the notes store")
	pf.StringVar(&a.flags.Backend, "backend", "", "Storage backend: file, sqlite or memory")
	pf.BoolVar(&a.flags.Ephemeral, "ephemeral", false, "Keep notes in memory only for this run")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Mirror the debug log to stderr")

	root.AddCommand(
		newNewCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newPinCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
	)
	return root
}

// setup loads configuration, the logger and the store.
func (a *app) setup() error {
	logs.SetVerbose(a.verbose)

	cfg, err := config.Load(a.flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.EnsureConfigFile(); err != nil {
		logs.Logger.Printf("Warning: could not create config file: %v", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if cfg.Backend != config.BackendMemory {
		if err := logs.Initialize(cfg.DataDir); err != nil {
			fmt.Fprintf(a.errOut, "Warning: Could not initialize logger: %v\n", err)
		}
	}

	storage, err := a.openStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}

	a.cfg = cfg
	a.storage = storage
	a.svc = service.NewNoteService(storage)
	logs.Logger.Printf("Opened %s storage in %s (%d notes)", cfg.Backend, cfg.DataDir, a.svc.Count())
	return nil
}

func (a *app) shutdown() {
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			logs.Logger.Printf("Error closing storage: %v", err)
		}
		a.storage = nil
	}
	logs.Close()
}

// saveErr turns a failed write into a command error.
func (a *app) saveErr() error {
	if err := a.svc.LastSaveError(); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	return nil
}
