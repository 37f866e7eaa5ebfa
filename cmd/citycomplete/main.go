// Command citycomplete drives the city autocomplete from a terminal.
//
// Each line read from stdin is typed into the city input. Suggestions are
// printed as a numbered list whenever it changes.
//
//	:N       select suggestion N
//	:submit  look up the weather for the current input
//	:quit    exit
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"weatherlookup/internal/config"
	"weatherlookup/internal/forecast"
	"weatherlookup/internal/geocoding"
	"weatherlookup/internal/logger"
	"weatherlookup/internal/model"
	"weatherlookup/internal/service"
	"weatherlookup/internal/widget"
)

func main() {
	last := flag.String("last", "", "last searched city to preselect")
	hours := flag.Int("hours", 6, "forecast hours to print on submit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	log := logger.NewWithWriter(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Stdin, os.Stdout, *last, *hours); err != nil {
		log.Error("citycomplete failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, in io.Reader, out io.Writer, last string, hours int) error {
	geo, err := geocoding.NewClient(geocoding.Options{
		BaseURL:  cfg.Geocoding.BaseURL,
		Language: cfg.Geocoding.Language,
		Timeout:  cfg.Geocoding.Timeout,
		RPS:      cfg.Geocoding.RPS,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	weather := service.NewWeatherService(
		geo,
		forecast.NewClient(cfg.Forecast.BaseURL, cfg.Forecast.Hourly, cfg.Forecast.Timeout, log),
		nil,
		log,
	)

	input := widget.NewMemoryInput(last)
	list := widget.NewMemoryList(func(items []model.Suggestion) { printSuggestions(out, items) })
	form := widget.FormFunc(func(ctx context.Context, city string) error {
		res, err := weather.Lookup(ctx, "", city)
		if err != nil {
			return err
		}
		printForecast(out, res, hours)
		return nil
	})

	w, err := widget.New(input, list, form,
		service.NewSuggestService(geo, cfg.Geocoding.SuggestCount, cfg.Geocoding.MinQueryLength),
		widget.WithTimeout(cfg.Geocoding.Timeout),
		widget.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	if city := w.PreselectLastCity(); city != "" {
		fmt.Fprintf(out, "> %s\n", city)
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()

		switch cmd := strings.TrimSpace(line); {
		case cmd == ":quit":
			return nil

		case cmd == ":submit":
			if err := w.Submit(ctx); err != nil {
				fmt.Fprintln(out, "error:", err)
			}

		case strings.HasPrefix(cmd, ":"):
			n, err := strconv.Atoi(cmd[1:])
			if err != nil || !w.Select(list.ItemLabel(n-1)) {
				fmt.Fprintf(out, "no suggestion %s\n", cmd[1:])
				continue
			}
			fmt.Fprintf(out, "> %s\n", input.Value())

		default:
			input.Type(line)
			w.OnInput(ctx)
			w.Wait()
		}
	}
	return scanner.Err()
}

func printSuggestions(out io.Writer, items []model.Suggestion) {
	for i, s := range items {
		fmt.Fprintf(out, "  %d. %s\n", i+1, s.Label)
	}
}

func printForecast(out io.Writer, res *model.WeatherResult, hours int) {
	fmt.Fprintf(out, "%s (%.2f, %.2f)\n", res.City, res.Place.Latitude, res.Place.Longitude)
	for _, row := range res.Forecast.Rows(hours) {
		fmt.Fprintf(out, "  %s  %5.1f°C  code %-3d  %4.1f mm  %4.1f km/h\n",
			row.Time, row.Temperature, row.WeatherCode, row.Precipitation, row.WindSpeed)
	}
}
