// Package usecases contains the application's business logic
package usecases

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/abelzeko/fishing-bot/internal/advisory"
	"github.com/abelzeko/fishing-bot/internal/entities"
	"github.com/abelzeko/fishing-bot/internal/integration"
	"github.com/abelzeko/fishing-bot/internal/integration/openai"
	"github.com/abelzeko/fishing-bot/internal/repository"
)

var (
	// ErrUnknownWaterBody is returned for names that are not in the catalog
	ErrUnknownWaterBody = errors.New("unknown water body")
	// ErrNoReport is returned when weather could not be obtained
	ErrNoReport = errors.New("no report available")
	// ErrJournalDisabled is returned by journal operations when no journal is configured
	ErrJournalDisabled = errors.New("report journal is not configured")
)

// WeatherProvider supplies current weather for a location
type WeatherProvider interface {
	CurrentObservation(ctx context.Context, lat, lon float64) (*entities.WeatherObservation, error)
}

// QueryResult is the interpretation of a free-text message.
// WaterBody is empty when no water body was identified.
type QueryResult struct {
	WaterBody string
	Message   string
}

// FishingUseCase handles business logic related to fishing reports
type FishingUseCase struct {
	weather       WeatherProvider
	journal       repository.JournalRepository
	openAIService openai.OpenAIService
	now           func() time.Time
}

// NewFishingUseCase creates a new fishing use case. journal and openAIService may be nil.
func NewFishingUseCase(weather WeatherProvider, journal repository.JournalRepository, openAIService openai.OpenAIService) *FishingUseCase {
	return &FishingUseCase{
		weather:       weather,
		journal:       journal,
		openAIService: openAIService,
		now:           time.Now,
	}
}

// HasWeather reports whether a weather provider is configured
func (uc *FishingUseCase) HasWeather() bool {
	return uc.weather != nil
}

// ListWaterBodies returns the catalog in display order
func (uc *FishingUseCase) ListWaterBodies() []entities.WaterBody {
	return repository.WaterBodies()
}

// GetReport fetches the weather for a water body and builds its report.
// Fetch failures are logged here, once, with their cause.
func (uc *FishingUseCase) GetReport(ctx context.Context, name string) (*advisory.Report, error) {
	wb, ok := repository.FindWaterBody(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWaterBody, name)
	}
	if uc.weather == nil {
		return nil, fmt.Errorf("%w: no weather provider configured", ErrNoReport)
	}

	log.Printf("Building report for %s", wb.Name)
	obs, err := uc.weather.CurrentObservation(ctx, wb.Latitude, wb.Longitude)
	report, ok := advisory.BuildReport(wb, obs, err)
	if !ok {
		if err == nil {
			err = errors.New("weather provider returned no observation")
		}
		log.Printf("Error fetching weather for %s: %v", wb.Name, err)
		uc.record(wb.Name, outcomeOf(err))
		return nil, fmt.Errorf("%w: %w", ErrNoReport, err)
	}

	uc.record(wb.Name, entities.OutcomeOK)
	return report, nil
}

// InterpretQuery works out which water body a free-text message refers to.
// A direct name match is tried first; the AI agent is consulted only if configured.
func (uc *FishingUseCase) InterpretQuery(ctx context.Context, text string) QueryResult {
	if wb, ok := repository.MatchWaterBody(text); ok {
		log.Printf("Matched water body %s in free text", wb.Name)
		return QueryResult{WaterBody: wb.Name}
	}

	if uc.openAIService == nil {
		return QueryResult{}
	}

	agentResp, err := uc.openAIService.InterpretUserQuery(ctx, text, repository.WaterBodyNames())
	if err != nil {
		log.Printf("Error interpreting user query via OpenAI: %v", err)
		return QueryResult{}
	}

	log.Printf("Agent response: Command='%s', WaterBody='%s', Message='%s'",
		agentResp.CommandName, agentResp.WaterBodyName, agentResp.UserMessage)

	switch agentResp.CommandName {
	case openai.CommandGetWaterBodyReport:
		if wb, ok := repository.FindWaterBody(agentResp.WaterBodyName); ok {
			return QueryResult{WaterBody: wb.Name, Message: agentResp.UserMessage}
		}
		// Agent identified the intent but not a known water body
		return QueryResult{Message: agentResp.UserMessage}
	case openai.CommandGeneralQuery:
		return QueryResult{Message: agentResp.UserMessage}
	default:
		log.Printf("Agent returned unexpected command: %s", agentResp.CommandName)
		return QueryResult{}
	}
}

// GetStats returns journal statistics since the given time
func (uc *FishingUseCase) GetStats(since time.Time) ([]entities.OutcomeStat, error) {
	if uc.journal == nil {
		return nil, ErrJournalDisabled
	}
	return uc.journal.GetOutcomeStats(since)
}

// PruneJournal removes journal entries older than the retention period
func (uc *FishingUseCase) PruneJournal(retention time.Duration) error {
	if uc.journal == nil {
		return ErrJournalDisabled
	}
	log.Println("Starting journal cleanup...")
	removed, err := uc.journal.PruneBefore(uc.now().Add(-retention))
	if err != nil {
		return fmt.Errorf("failed to prune journal: %v", err)
	}
	log.Printf("Journal cleanup completed, removed %d entries", removed)
	return nil
}

// record writes an outcome to the journal; journal problems never block a report
func (uc *FishingUseCase) record(waterBody string, outcome entities.Outcome) {
	if uc.journal == nil {
		return
	}
	err := uc.journal.RecordOutcome(entities.ReportOutcome{
		WaterBody: waterBody,
		Outcome:   outcome,
		CreatedAt: uc.now(),
	})
	if err != nil {
		log.Printf("Warning: failed to record report outcome: %v", err)
	}
}

func outcomeOf(err error) entities.Outcome {
	if errors.Is(err, integration.ErrMalformedResponse) {
		return entities.OutcomeMalformedResponse
	}
	return entities.OutcomeFetchFailed
}
