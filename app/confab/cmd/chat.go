package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfoley/confab/internal/auditlog"
	"github.com/rfoley/confab/internal/chat"
	"github.com/rfoley/confab/internal/console"
	"github.com/rfoley/confab/internal/history"
	"github.com/rfoley/confab/internal/model"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts an interactive chat session. You will be prompted for a conversation
title; history is loaded from and saved to a file named after it, so reusing a
title resumes the conversation.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&config.Provider, "provider", "anthropic", "Model API to use: 'anthropic' or 'openai'")
	chatCmd.Flags().StringVar(&config.Model, "model", "claude-sonnet-4-0", "Identifier of the model variant")
	chatCmd.Flags().IntVar(&config.Questions, "questions", 100, "Maximum number of turns per session")
	chatCmd.Flags().IntVar(&config.ContextWindow, "context-window", 15, "Number of recent turns sent as context")
	chatCmd.Flags().StringVar(&config.HistoryDir, "history-dir", "chat/history", "Directory conversation histories are stored in")
	chatCmd.Flags().StringVar(&config.ResponseFile, "response-file", "chat/response.csv", "File the latest response is written to")
	chatCmd.Flags().StringVar(&config.AuditLogFile, "audit-log", "log/confab_log.csv", "CSV audit log file")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := setupContext()

	auditLog, err := auditlog.New(config.AuditLogFile)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() {
		if err := auditLog.Close(); err != nil {
			log.Printf("Failed to close audit log: %v", err)
		}
	}()

	auditLog.Info("Starting Confab Client...")

	tel, err := createTelemetryProvider(ctx)
	if err != nil {
		return fmt.Errorf("failed to create telemetry provider: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(ctx); err != nil {
			log.Printf("Failed to shut down telemetry provider: %v", err)
		}
	}()

	gen, err := createGenerator()
	if err != nil {
		return err
	}

	session := chat.NewSession(
		chat.Config{
			ModelID:           config.Model,
			QuestionLimit:     config.Questions,
			ContextWindowSize: config.ContextWindow,
			ResponsePath:      config.ResponseFile,
		},
		gen,
		history.NewFileSystemStore(config.HistoryDir),
		console.New(os.Stdin, os.Stdout),
		tel,
	)

	err = session.Run(ctx)
	if errors.Is(err, chat.ErrSessionEnded) {
		auditLog.Info("Chat ended successfully.")
		return nil
	}
	auditLog.Critical("", err)
	return err
}

func createGenerator() (model.Generator, error) {
	switch config.Provider {
	case "anthropic":
		if config.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("missing required environment variable: ANTHROPIC_API_KEY")
		}
		return model.NewAnthropicGenerator(createAnthropicClient(config.AnthropicAPIKey), maxOutputTokens), nil
	case "openai":
		if config.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("missing required environment variable: OPENAI_API_KEY")
		}
		return model.NewOpenAIGenerator(createOpenAIClient(config.OpenAIAPIKey, config.OpenAIBaseURL)), nil
	default:
		return nil, fmt.Errorf("unknown provider '%s', expected 'anthropic' or 'openai'", config.Provider)
	}
}
