// ABOUTME: CLI commands for managing medications
// ABOUTME: list, add/update, delete and take-dose operations
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/vitus/internal/models"
)

var (
	medID         string
	medType       string
	medTotal      float64
	medRemaining  float64
	medDoseAmount float64
	medDoseText   string
	medExpiration string
	medPurpose    string
	medCategory   string
	medNotes      string
)

// NewMedsCmd creates the meds command group.
func NewMedsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meds",
		Short: "Manage medications",
		Long: `Manage the medicine cabinet.

Examples:
  vitus meds list
  vitus meds add "Vitamin D" --total 30 --remaining 30
  vitus meds take med_1a2b3c4d
  vitus meds delete med_1a2b3c4d`,
	}

	cmd.AddCommand(newMedsListCmd())
	cmd.AddCommand(newMedsAddCmd())
	cmd.AddCommand(newMedsDeleteCmd())
	cmd.AddCommand(newMedsTakeCmd())

	return cmd
}

func newMedsListCmd() *cobra.Command {
	var byCategory bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all medications",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if byCategory {
				for category, meds := range svc.GroupMedsByCategory() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", category)
					for _, m := range meds {
						printMed(cmd, m, "  ")
					}
				}
				return nil
			}

			meds := svc.ListMeds()
			if len(meds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No medications yet. Add one with 'vitus meds add'.")
				return nil
			}
			for _, m := range meds {
				printMed(cmd, m, "")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&byCategory, "by-category", false, "Group by category")

	return cmd
}

func printMed(cmd *cobra.Command, m models.Medication, indent string) {
	line := fmt.Sprintf("%s%s  %s", indent, m.ID, m.Name)
	if m.Type != "" {
		line += fmt.Sprintf(" (%s)", m.Type)
	}
	if m.TotalQuantity > 0 {
		line += fmt.Sprintf("  %s/%s left", formatQuantity(m.RemainingQuantity), formatQuantity(m.TotalQuantity))
	}
	if m.Expiration != "" {
		line += "  exp " + m.Expiration
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
	if verbose && m.Purpose != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s    %s\n", indent, truncate(m.Purpose, 100))
	}
}

func newMedsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add or update a medication",
		Long: `Add a medication, or update one by passing --id.

Examples:
  vitus meds add "Vitamin D" --total 30 --remaining 30 --dose-amount 1
  vitus meds add "Melatonin" --category Sleep --dose-text "one before bed"
  vitus meds add "Vitamin D" --id med_1a2b3c4d --remaining 12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			med := models.Medication{
				ID:                medID,
				Name:              args[0],
				Type:              medType,
				TotalQuantity:     medTotal,
				RemainingQuantity: medRemaining,
				Dosage:            models.Dosage{Amount: medDoseAmount, Text: medDoseText},
				Expiration:        medExpiration,
				Purpose:           medPurpose,
				Category:          medCategory,
				Notes:             medNotes,
			}

			stored, err := svc.UpsertMed(med)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", stored.Name, stored.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&medID, "id", "", "Medication id to update (omit to create)")
	cmd.Flags().StringVar(&medType, "type", "", "Form, e.g. tablets, drops")
	cmd.Flags().Float64Var(&medTotal, "total", 0, "Nominal pack size")
	cmd.Flags().Float64Var(&medRemaining, "remaining", 0, "Doses left in the pack")
	cmd.Flags().Float64Var(&medDoseAmount, "dose-amount", 1, "Quantity consumed per dose")
	cmd.Flags().StringVar(&medDoseText, "dose-text", "", "Free-form dosing instructions")
	cmd.Flags().StringVar(&medExpiration, "expiration", "", "Expiration date YYYY-MM-DD")
	cmd.Flags().StringVar(&medPurpose, "purpose", "", "What it is for")
	cmd.Flags().StringVar(&medCategory, "category", "", "Category, e.g. Heart, Sleep")
	cmd.Flags().StringVar(&medNotes, "notes", "", "Free-form notes")

	return cmd
}

func newMedsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <med-id>",
		Short: "Delete a medication and detach it from every cure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if err := svc.DeleteMed(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newMedsTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <med-id>",
		Short: "Take one dose, decrementing the remaining quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			med, err := svc.TakeDose(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s left\n", med.Name, formatQuantity(med.RemainingQuantity))
			return nil
		},
	}
}
