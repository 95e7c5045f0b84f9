// ABOUTME: CLI commands for the daily dose plan
// ABOUTME: list slots, mark taken, sweep yesterday for misses, report misses
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDosesCmd creates the doses command group.
func NewDosesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doses",
		Short: "Today's dose plan and dose logging",
		Long: `Work with the daily dose plan built from active cures.

Examples:
  vitus doses list
  vitus doses list --date 2026-01-15
  vitus doses take med_1a2b3c4d 2026-01-15 08:00
  vitus doses check
  vitus doses missed`,
	}

	cmd.AddCommand(newDosesListCmd())
	cmd.AddCommand(newDosesTakeCmd())
	cmd.AddCommand(newDosesCheckCmd())
	cmd.AddCommand(newDosesMissedCmd())

	return cmd
}

func newDosesListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show dose slots for a day (default today)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if date == "" {
				date = svc.Today()
			}

			slots := svc.DoseSlotsForDay(date)
			if len(slots) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No doses scheduled for %s.\n", date)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Doses for %s:\n", date)
			for _, slot := range slots {
				mark := "[ ]"
				if slot.Taken {
					mark = "[x]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s (%s)  %s\n", mark, slot.Time, slot.MedName, slot.MedID, slot.CureName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show, YYYY-MM-DD (default today)")

	return cmd
}

func newDosesTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <med-id> <date> <time>",
		Short: "Mark a scheduled dose as taken",
		Long: `Mark a dose slot as taken. This logs the dose and decrements the
medication's remaining quantity.

Example:
  vitus doses take med_1a2b3c4d 2026-01-15 08:00`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if err := svc.MarkDoseTaken(args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dose logged: %s %s %s\n", args[1], args[2], args[0])
			return nil
		},
	}
}

func newDosesCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Record yesterday's untaken doses as missed",
		Long: `Sweep yesterday's dose plan and record every slot that was never
marked as taken. Already-recorded misses are not duplicated, so the
command is safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			yesterday := svc.Yesterday()
			recorded := 0
			for _, slot := range svc.DoseSlotsForDay(yesterday) {
				if slot.Taken {
					continue
				}
				if svc.RecordMissedDose(slot.MedID, slot.MedName, slot.Date, slot.Time) {
					recorded++
				}
			}

			if recorded == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No new missed doses for %s.\n", yesterday)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d missed dose(s) for %s.\n", recorded, yesterday)
			return nil
		},
	}
}

func newDosesMissedCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "missed",
		Short: "Show (or clear) recorded missed doses",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if clear {
				svc.ClearMissedDoses()
				fmt.Fprintln(cmd.OutOrStdout(), "Missed doses cleared.")
				return nil
			}

			report := svc.MissedDosesReport()
			if report == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No missed doses recorded.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the missed-dose list")

	return cmd
}
