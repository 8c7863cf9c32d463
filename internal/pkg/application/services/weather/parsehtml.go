package weathersvc

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const maxTemperatureReadings int = 3

var celsiusPattern = regexp.MustCompile(`(\d+)°C`)

type document struct {
	title    string
	pre      string
	preCount int
}

func parseDocument(body []byte) (*document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Kind: ErrParse, Err: fmt.Errorf("failed to parse html: %w", err)}
	}

	doc := &document{}
	titleFound := false

	for n := range root.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}

		switch n.DataAtom {
		case atom.Title:
			if !titleFound {
				doc.title = textContent(n)
				titleFound = true
			}
		case atom.Pre:
			if doc.preCount == 0 {
				doc.pre = textContent(n)
			}
			doc.preCount++
		}
	}

	return doc, nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
	}
	return sb.String()
}

// extractTemperatures returns the distinct integer readings directly followed by °C,
// in the order they first appear, keeping at most limit of them.
func extractTemperatures(text string, limit int) []string {
	temperatures := []string{}
	seen := map[string]struct{}{}

	for _, match := range celsiusPattern.FindAllStringSubmatch(text, -1) {
		if len(temperatures) == limit {
			break
		}

		if _, ok := seen[match[1]]; ok {
			continue
		}

		seen[match[1]] = struct{}{}
		temperatures = append(temperatures, match[1])
	}

	return temperatures
}
