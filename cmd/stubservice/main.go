package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srinijamadireddy19/Blog-Digest/config"
	"github.com/srinijamadireddy19/Blog-Digest/internal/clients"
	"github.com/srinijamadireddy19/Blog-Digest/internal/db"
	"github.com/srinijamadireddy19/Blog-Digest/internal/logging"
	"github.com/srinijamadireddy19/Blog-Digest/internal/processing"
	"github.com/srinijamadireddy19/Blog-Digest/internal/stubservice"
)

func main() {
	config.LoadEnv(config.AppEnv())
	logging.InitLogger(os.Getenv("LOG_LEVEL"))

	settings := config.LoadStubSettings()

	results, closeStore := resultRepository(settings)
	defer closeStore()

	var summarizer *processing.Summarizer
	var translation *processing.TranslationService
	if settings.OpenAIAPIKey != "" {
		llm, err := clients.NewOpenAIClient(settings.OpenAIAPIKey, settings.OpenAIModel, settings.OpenAIBaseURL)
		if err != nil {
			slog.Error("[StubService] Failed to create OpenAI client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		summarizer = processing.NewSummarizer(llm)
		translation = processing.NewTranslationService(processing.NewLLMTranslator(llm), settings.TranslationTargets)
	} else {
		slog.Warn("[StubService] OPENAI_API_KEY not set, using extractive summaries and no translations")
	}

	processor := processing.NewProcessor(processing.NewLinkExtractor(settings.FetchTimeout), summarizer, translation)
	handler := stubservice.NewHandler(processor, results, settings.MaxUploadBytes)

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           stubservice.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("[StubService] Listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[StubService] Server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	<-stopChan

	slog.Info("[StubService] Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("[StubService] Shutdown incomplete", slog.String("error", err.Error()))
	}
}

func resultRepository(settings config.StubSettings) (db.ResultRepository, func()) {
	if settings.StoreBackend != "valkey" {
		slog.Info("[StubService] Using in-memory result store", slog.Duration("ttl", settings.ResultTTL))
		return db.NewMemoryRepository(settings.ResultTTL), func() {}
	}

	for {
		client, err := clients.NewValkeyClient(settings.Valkey)
		if err == nil {
			return db.NewValkeyRepository(client, settings.ResultTTL), client.Close
		}
		slog.Warn("[StubService] Valkey init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
}
