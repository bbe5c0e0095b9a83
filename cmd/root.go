package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/DoubleTimeOnly/daybrief/internal/config"
	"github.com/DoubleTimeOnly/daybrief/internal/logging"
	"github.com/DoubleTimeOnly/daybrief/internal/notify"
)

var (
	flagVerbose  bool
	flagMetrics  bool
	flagSettings string
)

// rootCmd represents the base command for the daybrief application
var rootCmd = &cobra.Command{
	Use:   "daybrief",
	Short: "Merges one day of Google Calendar events into a daily note",
	Long: `daybrief fetches the events of one UTC calendar day from all configured
Google calendars, merges them into a single deterministically ordered text
block and appends it to a notes file (or prints it to stdout).

Authentication uses your own Google OAuth client: run 'daybrief auth url',
visit the printed URL, then 'daybrief auth exchange <code>'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	if err := execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// execute runs the root command and makes sure a failing command is never
// silent: cobra's own error printing is suppressed, so the returned error is
// reported through the notification channel before control goes back to
// Execute for the exit code.
func execute(args []string) error {
	rootCmd.SetVersionTemplate(`{{printf "daybrief version %s\n" .Version}}`)

	// If no subcommand is provided, run the brief command by default
	if len(args) == 0 {
		args = []string{"brief"}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err != nil {
		notify.NewConsoleWriter(rootCmd.ErrOrStderr()).Errorf("Error: %v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagMetrics, "metrics", false, "Emit OpenTelemetry metrics to stderr on exit")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Settings file path (default: XDG config dir)")

	rootCmd.AddCommand(newBriefCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newSourcesCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("daybrief version %s\n", version)
		},
	}
}

// newLogger builds the process logger honoring the --verbose flag. Logs go
// to stderr so the rendered brief on stdout stays clean.
func newLogger() *slog.Logger {
	return logging.New(os.Stderr, flagVerbose)
}

// newNotifier builds the user-facing notification channel.
func newNotifier() notify.Notifier {
	return notify.NewConsole()
}

// loadSettings opens the settings store and loads the persisted state.
// Client credentials absent from the settings fall back to the
// GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET environment.
func loadSettings() (*config.Settings, config.Store, error) {
	store := config.NewFileStore(flagSettings)
	settings, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if settings.ClientID == "" {
		settings.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if settings.ClientSecret == "" {
		settings.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	return settings, store, nil
}
