package weathersvc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

const DefaultBaseURL string = "https://wttr.in"

// WeatherService fetches and parses a single weather report from wttr.in
type WeatherService interface {
	Fetch(ctx context.Context, location string, format Format) (*Report, error)
}

func NewWeatherService(ctx context.Context, baseURL string, timeout time.Duration) WeatherService {
	return &weatherSvc{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}
}

type weatherSvc struct {
	baseURL    string
	httpClient *http.Client
}

var tracer = otel.Tracer("wttr-weather-client")

func (ws *weatherSvc) Fetch(ctx context.Context, location string, format Format) (*Report, error) {
	var err error

	ctx, span := tracer.Start(ctx, "fetch-weather")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(
		span, logging.GetFromContext(ctx), ctx,
	)

	requestURL := RequestURL(ws.baseURL, location, format)
	log.Debug("fetching weather", "url", requestURL, "format", format.String())

	body, err := ws.getWeather(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Format:   format,
		Location: location,
	}

	switch format {
	case Simple, Plain, Custom:
		report.Body = string(body)
	case JSON:
		var current *Conditions
		current, err = parseConditions(body)
		if err != nil {
			return nil, err
		}
		report.Current = current
	case Full:
		var doc *document
		doc, err = parseDocument(body)
		if err != nil {
			return nil, err
		}

		log.Debug("parsed document", "title", doc.title, "pre_elements", doc.preCount)

		if strings.TrimSpace(doc.pre) == "" {
			err = &FetchError{Kind: ErrNotFound, Err: fmt.Errorf("no weather data found for %q", location)}
			return nil, err
		}

		report.Body = doc.pre
		report.Temperatures = extractTemperatures(doc.pre, maxTemperatureReadings)
	default:
		err = fmt.Errorf("unsupported format %d", format)
		return nil, err
	}

	return report, nil
}

// RequestURL builds the upstream URL with the location escaped as a single path segment.
func RequestURL(baseURL, location string, format Format) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + url.PathEscape(location) + format.query()
}
