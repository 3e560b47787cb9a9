package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/splitledger/splitledger/internal/buildinfo"
	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/logging"
)

var headingStyle = lipgloss.NewStyle().Bold(true)

// env carries per-invocation state resolved before any subcommand runs.
type env struct {
	settings config.Settings
	logger   *zap.Logger
	now      func() time.Time
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	e := &env{logger: zap.NewNop(), now: time.Now}

	rootCmd := &cobra.Command{
		Use:     "splitledger",
		Short:   "Split group expenses and settle up with the fewest payments",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}
			e.settings = settings
			e.logger = logging.New(settings.LogLevel, settings.LogFormat, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = e.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("group", "g", ".", "group directory")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("locale", "", "display locale, e.g. en-US or de-DE (default: group setting)")

	rootCmd.AddCommand(
		newInitCommand(e),
		newParticipantCommand(e),
		newAddCommand(e),
		newListCommand(e),
		newBalancesCommand(e),
		newSettleCommand(e),
		newConvertCommand(e),
		newCheckCommand(e),
		newImportCommand(e),
		newLogCommand(e),
		newRatesCommand(e),
	)

	return rootCmd
}

func heading(w io.Writer, s string) {
	fmt.Fprintln(w, headingStyle.Render(s))
}
