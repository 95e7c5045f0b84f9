// ABOUTME: CLI command for AI enrichment of medication records
// ABOUTME: Fills purpose, category, prescription, notes and warning via OpenAI
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/vitus/internal/config"
	"github.com/harper/vitus/internal/llm"
)

// NewEnrichCmd creates the enrich command.
func NewEnrichCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "enrich <med-id>",
		Short: "Fill in medication details with AI",
		Long: `Ask OpenAI for the purpose, category, prescription, notes and warning
of a medication and merge the answer into the stored record. Existing
field values are only replaced when the suggestion has something to say.

Requires OPENAI_API_KEY in the environment or a .env file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.OpenAIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is not set")
			}

			client, err := llm.NewClientWithConfig(&llm.ClientConfig{
				APIKey:     cfg.OpenAIKey,
				ChatModel:  cfg.ChatModel,
				Timeout:    cfg.Timeout,
				MaxRetries: cfg.MaxRetries,
				RetryDelay: cfg.RetryDelay,
			})
			if err != nil {
				return err
			}

			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			med, err := svc.GetMed(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Enriching %s...\n", med.Name)
			suggestion, err := client.EnrichMedication(med.Name, med.Type)
			if err != nil {
				return err
			}

			printSuggestion(cmd, suggestion)

			if dryRun {
				return nil
			}

			if _, err := svc.UpsertMed(suggestion.Apply(med)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the suggestion without saving it")

	return cmd
}

func printSuggestion(cmd *cobra.Command, sug *llm.MedicationSuggestion) {
	fields := []struct{ label, value string }{
		{"Purpose", sug.Purpose},
		{"Category", sug.Category},
		{"Prescription", sug.Prescription},
		{"Notes", sug.Notes},
		{"Warning", sug.Warning},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", f.label+":", truncate(f.value, 200))
		}
	}
}
