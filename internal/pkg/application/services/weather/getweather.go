package weathersvc

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

// wttr.in answers curl-like clients with ANSI text, so we have to look like a browser
// to get the HTML document with the <pre> block.
const userAgent string = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"

func (ws *weatherSvc) getWeather(ctx context.Context, requestURL string) ([]byte, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-weather")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	apiReq, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		err = &FetchError{Kind: ErrNetwork, Err: fmt.Errorf("failed to create http request: %w", err)}
		return nil, err
	}
	apiReq.Header.Set("User-Agent", userAgent)

	apiResponse, err := ws.httpClient.Do(apiReq)
	if err != nil {
		err = &FetchError{Kind: ErrNetwork, Err: fmt.Errorf("failed to retrieve weather: %w", err)}
		return nil, err
	}
	defer apiResponse.Body.Close()

	if apiResponse.StatusCode < http.StatusOK || apiResponse.StatusCode >= http.StatusMultipleChoices {
		err = &FetchError{
			Kind:       ErrHTTPStatus,
			StatusCode: apiResponse.StatusCode,
			Err:        fmt.Errorf("expected status code %d, but got %d", http.StatusOK, apiResponse.StatusCode),
		}
		return nil, err
	}

	responseBody, err := io.ReadAll(apiResponse.Body)
	if err != nil {
		err = &FetchError{Kind: ErrNetwork, Err: fmt.Errorf("failed to read response body: %w", err)}
		return nil, err
	}

	log.Debug("received response", "status", apiResponse.StatusCode, "bytes", len(responseBody))

	return responseBody, nil
}
