package weathersvc

// Report is the parsed result of a single fetch.
type Report struct {
	Format   Format
	Location string

	// Body is the raw response for the text formats and the <pre> text for Full.
	Body string
	// Temperatures holds up to three distinct °C readings found in Body (Full only).
	Temperatures []string
	// Current is only set for the JSON format.
	Current *Conditions
}

// Conditions is the flattened first current_condition and nearest_area of a j1 payload.
// wttr.in encodes every value as a string and so do we.
type Conditions struct {
	AreaName  string
	Country   string
	Latitude  string
	Longitude string

	TemperatureC  string
	TemperatureF  string
	Description   string
	WindSpeedKmph string
	WindDirection string
	Humidity      string
	Visibility    string
	FeelsLikeC    string
	ObservedAt    string
}

type valueField struct {
	Value string `json:"value"`
}

type currentCondition struct {
	TempC            string       `json:"temp_C"`
	TempF            string       `json:"temp_F"`
	WeatherDesc      []valueField `json:"weatherDesc"`
	WindspeedKmph    string       `json:"windspeedKmph"`
	Winddir16Point   string       `json:"winddir16Point"`
	Humidity         string       `json:"humidity"`
	Visibility       string       `json:"visibility"`
	FeelsLikeC       string       `json:"FeelsLikeC"`
	LocalObsDateTime string       `json:"localObsDateTime"`
}

type nearestArea struct {
	AreaName  []valueField `json:"areaName"`
	Country   []valueField `json:"country"`
	Latitude  string       `json:"latitude"`
	Longitude string       `json:"longitude"`
}

type weatherPayload struct {
	CurrentCondition []currentCondition `json:"current_condition"`
	NearestArea      []nearestArea      `json:"nearest_area"`
}

func firstValue(values []valueField) string {
	if len(values) == 0 {
		return ""
	}
	return values[0].Value
}
