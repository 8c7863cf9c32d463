// Package console renders weather reports and fetch failures as framed terminal text.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	weathersvc "github.com/diwise/wttr-scraper/internal/pkg/application/services/weather"
)

const separatorWidth int = 60

var separator = strings.Repeat("=", separatorWidth)

func Report(w io.Writer, r *weathersvc.Report) {
	switch r.Format {
	case weathersvc.Simple, weathersvc.Plain:
		frame(w, "Weather for: "+Capitalize(r.Location), r.Body)
	case weathersvc.Custom:
		frame(w, "Weather Details", r.Body)
	case weathersvc.JSON:
		c := r.Current
		if c == nil {
			c = &weathersvc.Conditions{}
		}
		frame(w, fmt.Sprintf("Weather for: %s, %s", c.AreaName, c.Country), conditions(c))
	case weathersvc.Full:
		frame(w, "Weather for: "+Capitalize(r.Location), r.Body)
		details(w, r.Temperatures)
	}
}

func Error(w io.Writer, location string, err error) {
	switch {
	case errors.Is(err, weathersvc.ErrNotFound):
		fmt.Fprintf(w, "\n❌ Could not find weather data for '%s'.\n", location)
		fmt.Fprintln(w, "The city name might be incorrect or not recognized.")
	case errors.Is(err, weathersvc.ErrHTTPStatus):
		fmt.Fprintf(w, "❌ HTTP Error: %s\n", err.Error())
		fmt.Fprintln(w, "The city name might be invalid or the service is unavailable.")
	case errors.Is(err, weathersvc.ErrParse):
		fmt.Fprintf(w, "❌ Error parsing JSON: %s\n", err.Error())
	default:
		fmt.Fprintf(w, "❌ Error: %s\n", err.Error())
	}
}

// Capitalize upper cases the first letter and lower cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func frame(w io.Writer, heading, body string) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", separator, heading, separator)
	fmt.Fprint(w, body)
	if !strings.HasSuffix(body, "\n") {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, separator)
}

func conditions(c *weathersvc.Conditions) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🌡️  Temperature: %s°C (%s°F)\n", c.TemperatureC, c.TemperatureF)
	fmt.Fprintf(&sb, "☁️  Condition: %s\n", c.Description)
	fmt.Fprintf(&sb, "💨 Wind: %s km/h %s\n", c.WindSpeedKmph, c.WindDirection)
	fmt.Fprintf(&sb, "💧 Humidity: %s%%\n", c.Humidity)
	fmt.Fprintf(&sb, "👁️  Visibility: %s km\n", c.Visibility)
	fmt.Fprintf(&sb, "🌡️  Feels Like: %s°C\n", c.FeelsLikeC)
	return sb.String()
}

func details(w io.Writer, temperatures []string) {
	if len(temperatures) == 0 {
		return
	}

	fmt.Fprintln(w, "\n📊 Extracted Details:")
	for i, t := range temperatures {
		fmt.Fprintf(w, "  Temperature reading %d: %s°C\n", i+1, t)
	}
}
