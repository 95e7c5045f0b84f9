// ABOUTME: CLI commands for managing cures (treatment cycles)
// ABOUTME: list, add/update, delete and per-medication schedule editing
package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/vitus/internal/models"
)

var (
	cureID     string
	cureStart  string
	cureEnd    string
	cureMedIDs []string
)

// NewCuresCmd creates the cures command group.
func NewCuresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cures",
		Short: "Manage cures (treatment cycles)",
		Long: `Manage treatment cycles that group medications over a date range.

Examples:
  vitus cures list
  vitus cures add "Winter boost" --start 2026-01-01 --end 2026-01-31 --med med_1a2b3c4d
  vitus cures schedule cure_9f8e7d6c med_1a2b3c4d 08:00,20:00
  vitus cures delete cure_9f8e7d6c`,
	}

	cmd.AddCommand(newCuresListCmd())
	cmd.AddCommand(newCuresAddCmd())
	cmd.AddCommand(newCuresDeleteCmd())
	cmd.AddCommand(newCuresScheduleCmd())

	return cmd
}

func newCuresListCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cures",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if activeOnly {
				active := svc.ListActiveCures()
				if len(active) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No active cures today.")
					return nil
				}
				for _, ac := range active {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d day(s) left\n", ac.Cure.ID, ac.Cure.Name, ac.DaysLeft)
					printCureDetail(cmd, ac.Cure)
				}
				return nil
			}

			cures := svc.ListCures()
			if len(cures) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cures yet. Add one with 'vitus cures add'.")
				return nil
			}
			for _, c := range cures {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s .. %s\n", c.ID, c.Name, c.Start, c.End)
				printCureDetail(cmd, c)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Show only cures active today")

	return cmd
}

func printCureDetail(cmd *cobra.Command, c models.Cure) {
	if len(c.MedIDs) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  meds: %s\n", strings.Join(c.MedIDs, ", "))
	}
	if len(c.Schedule) == 0 {
		return
	}
	medIDs := make([]string, 0, len(c.Schedule))
	for id := range c.Schedule {
		medIDs = append(medIDs, id)
	}
	sort.Strings(medIDs)
	for _, id := range medIDs {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s at %s\n", id, strings.Join(c.Schedule[id], ", "))
	}
}

func newCuresAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add or update a cure",
		Long: `Add a cure, or update one by passing --id. Start and end dates are
inclusive and use the YYYY-MM-DD format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			cure := models.Cure{
				ID:     cureID,
				Name:   args[0],
				Start:  cureStart,
				End:    cureEnd,
				MedIDs: cureMedIDs,
			}

			// Keep an existing schedule on update.
			if cure.ID != "" {
				for _, existing := range svc.ListCures() {
					if existing.ID == cure.ID {
						cure.Schedule = existing.Schedule
						break
					}
				}
			}

			stored, err := svc.UpsertCure(cure)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", stored.Name, stored.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&cureID, "id", "", "Cure id to update (omit to create)")
	cmd.Flags().StringVar(&cureStart, "start", "", "Start date YYYY-MM-DD")
	cmd.Flags().StringVar(&cureEnd, "end", "", "End date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringArrayVar(&cureMedIDs, "med", nil, "Medication id to include (repeatable)")

	return cmd
}

func newCuresDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <cure-id>",
		Short: "Delete a cure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if err := svc.DeleteCure(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newCuresScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <cure-id> <med-id> <times>",
		Short: "Set daily dose times for a medication within a cure",
		Long: `Set the daily dose times for one medication in a cure. Times are a
comma- or space-separated list of HH:MM values. Medications without a
schedule fall back to 08:00 and 20:00.

Example:
  vitus cures schedule cure_9f8e7d6c med_1a2b3c4d 08:00,14:00,20:00`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			times := splitTimes(args[2])
			if err := svc.SetCureSchedule(args[0], args[1], times); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s at %s\n", args[0], args[1], strings.Join(times, ", "))
			return nil
		},
	}
}
