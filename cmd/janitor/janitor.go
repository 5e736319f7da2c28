package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abelzeko/fishing-bot/internal/config"
	"github.com/abelzeko/fishing-bot/internal/repository"
	"github.com/abelzeko/fishing-bot/internal/usecases"
	"github.com/robfig/cron/v3"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Fishing Bot Janitor...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize repository
	journal, err := repository.NewSQLiteJournalRepository(cfg.Journal.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}
	defer journal.Close()

	// The janitor never fetches weather or talks to OpenAI
	useCase := usecases.NewFishingUseCase(nil, journal, nil)

	// Run cleanup immediately on startup
	if err := useCase.PruneJournal(cfg.Journal.Retention); err != nil {
		log.Printf("Initial journal cleanup failed: %v", err)
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Journal.JanitorSchedule, func() {
		if err := useCase.PruneJournal(cfg.Journal.Retention); err != nil {
			log.Printf("Scheduled journal cleanup failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to set up cron job: %v", err)
	}

	log.Printf("Journal cleanup scheduled with '%s', keeping %s of history", cfg.Journal.JanitorSchedule, cfg.Journal.Retention)
	c.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down janitor...")
	<-c.Stop().Done()
}
