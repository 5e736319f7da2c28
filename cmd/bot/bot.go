package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abelzeko/fishing-bot/internal/api"
	"github.com/abelzeko/fishing-bot/internal/config"
	"github.com/abelzeko/fishing-bot/internal/integration"
	"github.com/abelzeko/fishing-bot/internal/integration/openai"
	"github.com/abelzeko/fishing-bot/internal/repository"
	"github.com/abelzeko/fishing-bot/internal/usecases"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Fishing Bot...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN environment variable is not set")
	}
	if cfg.Weather.APIKey == "" {
		log.Fatal("WEATHERAPI_KEY environment variable is not set")
	}
	if cfg.AdminID == 0 {
		log.Println("ADMIN_ID is not set, admin commands are disabled")
	}
	if cfg.OpenAI.APIKey == "" {
		log.Println("OPENAI_API_KEY is not set, free-text interpretation is limited to name matching")
	}

	// Initialize OpenAI Service (optional)
	var aiService openai.OpenAIService
	if cfg.OpenAI.APIKey != "" {
		aiService, err = openai.NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI service: %v", err)
		}
	}

	// Initialize repository
	journal, err := repository.NewSQLiteJournalRepository(cfg.Journal.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}
	defer journal.Close()

	// Initialize weather client
	weather := integration.NewWeatherAPIClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Lang, cfg.Weather.Timeout)

	useCase := usecases.NewFishingUseCase(weather, journal, aiService)

	// Initialize Telegram bot
	telegramBot, err := api.NewTelegramBot(cfg, useCase)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the bot; returns on SIGINT/SIGTERM or an admin /stop
	telegramBot.Start(ctx)
}
