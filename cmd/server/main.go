package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/legal-assistant-api/internal/analyzer"
	"github.com/BerylCAtieno/legal-assistant-api/internal/config"
	"github.com/BerylCAtieno/legal-assistant-api/internal/extractor"
	"github.com/BerylCAtieno/legal-assistant-api/internal/handlers"
	"github.com/BerylCAtieno/legal-assistant-api/internal/prompts"
	"github.com/BerylCAtieno/legal-assistant-api/internal/router"
	"github.com/BerylCAtieno/legal-assistant-api/internal/services"
	"github.com/BerylCAtieno/legal-assistant-api/internal/storage"
	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "legal-assistant",
		Short:         "Legal document analysis API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})

	cmd.AddCommand(extractCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", handlers.ServiceName, handlers.Version)
		},
	})

	return cmd
}

func extractCmd() *cobra.Command {
	var maxLength int

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Print the text the server would extract from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, ok := extractor.FormatOf(filepath.Base(path))
			if !ok {
				return fmt.Errorf("unsupported file type %q", filepath.Ext(path))
			}

			if maxLength <= 0 {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				maxLength = cfg.MaxTextLength
			}

			text, err := extractor.New().Extract(path, format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), extractor.Truncate(text, maxLength))
			return err
		},
	}

	cmd.Flags().IntVar(&maxLength, "max-length", 0, "Truncate to this many characters (default MAX_TEXT_LENGTH)")
	return cmd
}

func serve() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	if !cfg.OpenAIConfigured() {
		logger.Warn("OPENAI_API_KEY is not set; model calls will fail")
	}

	catalog, err := prompts.Load()
	if err != nil {
		logger.Fatal("Failed to load analysis catalog", "error", err)
	}

	store, err := storage.NewLocalTempStorage(cfg.UploadDir)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", "error", err, "dir", cfg.UploadDir)
	}

	llm := analyzer.NewOpenAIAnalyzer(analyzer.Config{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.OpenAIModel,
		Timeout:     cfg.OpenAITimeout,
		MaxTokens:   cfg.ChatMaxTokens,
		Temperature: cfg.Temperature,
		BufferSize:  cfg.StreamBufferSize,
	}, logger.With("component", "analyzer"))

	chatService := services.NewChatService(catalog, llm, cfg.ChatMaxTokens, logger.With("component", "chat"))
	docService := services.NewDocumentService(catalog, llm, extractor.New(), store, services.DocumentConfig{
		MaxFileSize:   cfg.MaxFileSize,
		MaxTextLength: cfg.MaxTextLength,
		MaxTokens:     cfg.DocumentMaxTokens,
		Temperature:   cfg.DocumentTemp,
	}, logger.With("component", "documents"))

	// Setup HTTP router
	handler := router.NewRouter(cfg, chatService, docService, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"api_prefix", cfg.APIPrefix,
			"model", cfg.OpenAIModel,
			"environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	logger.Info("Server exited")
	return nil
}
