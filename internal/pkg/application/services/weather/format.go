package weathersvc

import "fmt"

// Format selects which of the wttr.in response shapes to request and how to parse it.
type Format int

const (
	Full Format = iota
	Simple
	Plain
	Custom
	JSON
)

func (f Format) String() string {
	switch f {
	case Full:
		return "full"
	case Simple:
		return "simple"
	case Plain:
		return "plain"
	case Custom:
		return "custom"
	case JSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func (f Format) query() string {
	switch f {
	case Simple:
		return "?format=3"
	case Plain:
		return "?format=4"
	case Custom:
		// %l location, %c condition, %t temperature, %w wind, %h humidity
		return "?format=%l:+%c+%t+%w+%h"
	case JSON:
		return "?format=j1"
	}
	return ""
}
