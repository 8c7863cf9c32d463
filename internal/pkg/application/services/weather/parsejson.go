package weathersvc

import (
	"encoding/json"
	"errors"
	"fmt"
)

func parseConditions(body []byte) (*Conditions, error) {
	payload := &weatherPayload{}

	err := json.Unmarshal(body, payload)
	if err != nil {
		return nil, &FetchError{Kind: ErrParse, Err: fmt.Errorf("failed to decode weather payload: %w", err)}
	}

	if len(payload.CurrentCondition) == 0 {
		return nil, &FetchError{Kind: ErrParse, Err: errors.New("payload contains no current_condition")}
	}

	if len(payload.NearestArea) == 0 {
		return nil, &FetchError{Kind: ErrParse, Err: errors.New("payload contains no nearest_area")}
	}

	current := payload.CurrentCondition[0]
	area := payload.NearestArea[0]

	return &Conditions{
		AreaName:      firstValue(area.AreaName),
		Country:       firstValue(area.Country),
		Latitude:      area.Latitude,
		Longitude:     area.Longitude,
		TemperatureC:  current.TempC,
		TemperatureF:  current.TempF,
		Description:   firstValue(current.WeatherDesc),
		WindSpeedKmph: current.WindspeedKmph,
		WindDirection: current.Winddir16Point,
		Humidity:      current.Humidity,
		Visibility:    current.Visibility,
		FeelsLikeC:    current.FeelsLikeC,
		ObservedAt:    current.LocalObsDateTime,
	}, nil
}
