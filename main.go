// Command fishing-bot prints a fishing-conditions report to the terminal.
//
// Usage:
//
//	fishing-bot                 list the known water bodies
//	fishing-bot <water body>    print the report for one of them
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/abelzeko/fishing-bot/internal/config"
	"github.com/abelzeko/fishing-bot/internal/integration"
	"github.com/abelzeko/fishing-bot/internal/markup"
	"github.com/abelzeko/fishing-bot/internal/usecases"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var weather usecases.WeatherProvider
	if cfg.Weather.APIKey != "" {
		weather = integration.NewWeatherAPIClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Lang, cfg.Weather.Timeout)
	}
	useCase := usecases.NewFishingUseCase(weather, nil, nil)

	if err := run(context.Background(), os.Stdout, useCase, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run prints the catalog when args is empty, otherwise the report for the
// water body named by args.
func run(ctx context.Context, w io.Writer, uc *usecases.FishingUseCase, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(w, "Known water bodies:")
		for _, wb := range uc.ListWaterBodies() {
			fmt.Fprintf(w, "  %s\n", wb.Name)
		}
		return nil
	}

	name := strings.Join(args, " ")
	if !uc.HasWeather() {
		return errors.New("WEATHERAPI_KEY environment variable is not set")
	}

	report, err := uc.GetReport(ctx, name)
	if err != nil {
		if errors.Is(err, usecases.ErrUnknownWaterBody) {
			return fmt.Errorf("unknown water body %q, run without arguments to list them", name)
		}
		return fmt.Errorf("could not fetch weather for %s", name)
	}
	fmt.Fprintln(w, markup.PlainText(report.Text))
	return nil
}
