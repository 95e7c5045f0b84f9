// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to manage the medicine cabinet via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/vitus/internal/config"
	"github.com/harper/vitus/internal/core"
	"github.com/harper/vitus/internal/llm"
	"github.com/harper/vitus/internal/mcp"
	"github.com/harper/vitus/internal/storage"
)

// NewMCPCmd creates the MCP command.
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Vitus as an MCP (Model Context Protocol) server, enabling LLM
agents like Claude to manage medications, cures and dose logs via
stdio.

Configure in Claude Desktop's config file to enable the tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  vitus mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "vitus": {
  #       "command": "vitus",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server.
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.OpenCharm(storage.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	svc := core.New(store, core.WithLogger(newLogger()))
	svc.Load()
	svc.AutoArchive()

	// Enrichment is optional; the tool reports its absence at call time
	var llmClient *llm.Client
	if cfg.OpenAIKey != "" {
		client, err := llm.NewClientWithConfig(&llm.ClientConfig{
			APIKey:     cfg.OpenAIKey,
			ChatModel:  cfg.ChatModel,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		} else {
			llmClient = client
		}
	} else {
		log.Println("Warning: OPENAI_API_KEY not set - enrich_medication will not work")
	}

	server := mcpserver.NewMCPServer(
		"Vitus Medication Tracker",
		"0.1.0",
	)

	mcp.RegisterTools(server, svc, llmClient)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Vitus MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		if err := store.Close(); err != nil {
			log.Printf("Warning: Error closing storage: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
