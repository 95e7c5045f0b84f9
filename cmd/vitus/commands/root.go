// ABOUTME: Root CLI command with global flags and subcommand wiring
// ABOUTME: Entry point invoked by cmd/vitus/main.go
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vitus",
		Short: "Personal medication and cure tracker",
		Long: `
██╗   ██╗██╗████████╗██╗   ██╗███████╗
██║   ██║██║╚══██╔══╝██║   ██║██╔════╝
██║   ██║██║   ██║   ██║   ██║███████╗
╚██╗ ██╔╝██║   ██║   ██║   ██║╚════██║
 ╚████╔╝ ██║   ██║   ╚██████╔╝███████║
  ╚═══╝  ╚═╝   ╚═╝    ╚═════╝ ╚══════╝

Vitus tracks your home medicine cabinet: medications with remaining
quantities, treatment cycles ("cures") with daily dose schedules,
dose-taking, missed doses and adherence history.

Data lives locally in a Charm KV database and syncs across your
devices automatically. Vitus is not a substitute for a doctor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	cmd.AddCommand(NewMedsCmd())
	cmd.AddCommand(NewCuresCmd())
	cmd.AddCommand(NewDosesCmd())
	cmd.AddCommand(NewArchiveCmd())
	cmd.AddCommand(NewEnrichCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
