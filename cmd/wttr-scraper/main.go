package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/diwise/context-broker/pkg/ngsild/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	weathersvc "github.com/diwise/wttr-scraper/internal/pkg/application/services/weather"
	"github.com/diwise/wttr-scraper/internal/pkg/presentation/console"
)

const serviceName string = "wttr-scraper"

const defaultTimeout = 10 * time.Second

type arguments struct {
	location string
	format   weathersvc.Format
	debug    bool
}

type config struct {
	baseURL          string
	timeout          time.Duration
	contextBrokerURL string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return 1
	}

	a := parseArguments(args)

	ctx, logger := newLogger(ctx, stderr, a.debug)
	logger.Debug("starting up", "service", serviceName, "version", version())

	cfg := loadConfig(ctx)

	svc := weathersvc.NewWeatherService(ctx, cfg.baseURL, cfg.timeout)

	report, err := svc.Fetch(ctx, a.location, a.format)
	if err != nil {
		logFailure(ctx, err)

		if errors.Is(err, weathersvc.ErrNotFound) {
			console.Error(stdout, a.location, err)
			return 0
		}

		console.Error(stderr, a.location, err)
		return 1
	}

	console.Report(stdout, report)

	if cfg.contextBrokerURL != "" && report.Current != nil {
		publisher := weathersvc.NewObservationPublisher(client.NewContextBrokerClient(cfg.contextBrokerURL))

		err = publisher.Publish(ctx, *report.Current, time.Now().UTC())
		if err != nil {
			logFailure(ctx, err)
			console.Error(stderr, a.location, err)
			return 1
		}
	}

	return 0
}

// parseArguments treats every argument starting with -- as a flag and joins the rest
// into the location. Unknown flags are ignored.
func parseArguments(args []string) arguments {
	flags := map[string]bool{}
	words := []string{}

	for _, arg := range args {
		if strings.HasPrefix(arg, "--") {
			flags[arg] = true
			continue
		}
		words = append(words, arg)
	}

	a := arguments{
		location: strings.Join(words, " "),
		debug:    flags["--debug"],
	}

	switch {
	case flags["--simple"]:
		a.format = weathersvc.Simple
	case flags["--plain"]:
		a.format = weathersvc.Plain
	case flags["--custom"]:
		a.format = weathersvc.Custom
	case flags["--json"]:
		a.format = weathersvc.JSON
	default:
		a.format = weathersvc.Full
	}

	return a
}

func newLogger(ctx context.Context, w io.Writer, debugMode bool) (context.Context, *slog.Logger) {
	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logging.NewContextWithLogger(ctx, logger), logger
}

func loadConfig(ctx context.Context) config {
	cfg := config{
		baseURL:          env.GetVariableOrDefault(ctx, "WTTR_URL", weathersvc.DefaultBaseURL),
		timeout:          defaultTimeout,
		contextBrokerURL: env.GetVariableOrDefault(ctx, "CONTEXT_BROKER_URL", ""),
	}

	timeout := env.GetVariableOrDefault(ctx, "WTTR_TIMEOUT", defaultTimeout.String())
	if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
		cfg.timeout = d
	} else {
		logging.GetFromContext(ctx).Warn("ignoring invalid timeout", "WTTR_TIMEOUT", timeout)
	}

	return cfg
}

func logFailure(ctx context.Context, err error) {
	kind := "UnknownError"

	var fe *weathersvc.FetchError
	if errors.As(err, &fe) {
		kind = fe.KindName()
	}

	logging.GetFromContext(ctx).Debug("request failed", "kind", kind, "causes", weathersvc.Causes(err, 3))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "\nUsage: wttr-scraper <city_name> [options]")
	fmt.Fprintln(w, "\nExamples:")
	fmt.Fprintln(w, "  wttr-scraper Mumbai")
	fmt.Fprintln(w, `  wttr-scraper "New York" --simple`)
	fmt.Fprintln(w, "  wttr-scraper Tokyo --json")
	fmt.Fprintln(w, "  wttr-scraper London --debug")
	fmt.Fprintln(w, "\nFormat Options:")
	fmt.Fprintln(w, "  --full     Full ASCII art weather (default)")
	fmt.Fprintln(w, "  --simple   One-line simple format")
	fmt.Fprintln(w, "  --plain    Plain text detailed format")
	fmt.Fprintln(w, "  --custom   Custom format with specific fields")
	fmt.Fprintln(w, "  --json     JSON format with detailed data")
	fmt.Fprintln(w, "  --debug    Show debug information")
	fmt.Fprintln(w, "\nEnvironment:")
	fmt.Fprintln(w, "  WTTR_URL            weather service base url (default https://wttr.in)")
	fmt.Fprintln(w, "  WTTR_TIMEOUT        http timeout (default 10s)")
	fmt.Fprintln(w, "  CONTEXT_BROKER_URL  publish --json observations as WeatherObserved")
	fmt.Fprintln(w)
}

func version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	buildSettings := buildInfo.Settings
	infoMap := map[string]string{}
	for _, s := range buildSettings {
		infoMap[s.Key] = s.Value
	}

	sha := infoMap["vcs.revision"]
	if infoMap["vcs.modified"] == "true" {
		sha += "+"
	}

	return sha
}
