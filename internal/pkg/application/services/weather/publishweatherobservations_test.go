package weathersvc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/diwise/context-broker/pkg/ngsild"
	ngsierrors "github.com/diwise/context-broker/pkg/ngsild/errors"
	"github.com/diwise/context-broker/pkg/ngsild/types"
	test "github.com/diwise/context-broker/pkg/test"
	"github.com/matryer/is"
)

func TestPublishCreatesEntityWhenMergeReportsNotFound(t *testing.T) {
	is, ctxBroker, op := setupMockPublisher(t, ngsierrors.ErrNotFound)

	err := op.Publish(context.Background(), londonConditions(), observedAt)
	is.NoErr(err)

	is.Equal(len(ctxBroker.MergeEntityCalls()), 1)  // should first attempt to merge
	is.Equal(len(ctxBroker.CreateEntityCalls()), 1) // on failure to merge due to not found error, should create instead
	is.Equal(ctxBroker.MergeEntityCalls()[0].EntityID, "urn:ngsi-ld:WeatherObserved:wttr:london")

	e := ctxBroker.CreateEntityCalls()[0].Entity
	eBytes, _ := e.MarshalJSON()
	json := string(eBytes)

	is.True(strings.Contains(json, `"dateObserved":{"type":"Property","value":{"@type":"DateTime","@value":"2024-05-01T12:00:00Z"}}`))
	is.True(strings.Contains(json, `"temperature"`))
	is.True(strings.Contains(json, `"humidity"`))
	is.True(strings.Contains(json, `"location"`))
}

func TestPublishOnlyMergesKnownEntity(t *testing.T) {
	is, ctxBroker, op := setupMockPublisher(t, nil)

	err := op.Publish(context.Background(), londonConditions(), observedAt)
	is.NoErr(err)

	is.Equal(len(ctxBroker.MergeEntityCalls()), 1)
	is.Equal(len(ctxBroker.CreateEntityCalls()), 0)
}

func TestPublishFailsWhenMergeFailsForOtherReasons(t *testing.T) {
	is, ctxBroker, op := setupMockPublisher(t, errors.New("broker unavailable"))

	err := op.Publish(context.Background(), londonConditions(), observedAt)

	is.True(err != nil)
	is.Equal(len(ctxBroker.CreateEntityCalls()), 0)
}

func TestPublishRequiresAreaName(t *testing.T) {
	is, ctxBroker, op := setupMockPublisher(t, nil)

	err := op.Publish(context.Background(), Conditions{TemperatureC: "3"}, observedAt)

	is.True(err != nil)
	is.Equal(len(ctxBroker.MergeEntityCalls()), 0)
}

func TestEntityIDIsLowerCasedAndHyphenated(t *testing.T) {
	is := is.New(t)
	is.Equal(EntityID(" New York "), "urn:ngsi-ld:WeatherObserved:wttr:new-york")
}

func TestUnparsableValuesAreSkipped(t *testing.T) {
	is := is.New(t)

	c := londonConditions()
	c.Humidity = ""
	c.Latitude = "n/a"

	attributes := convertConditionsToFiwareEntity(c, observedAt)
	is.Equal(len(attributes), 5) // name, dateObserved, temperature, feelsLike and windSpeed
}

var observedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func londonConditions() Conditions {
	return Conditions{
		AreaName:      "London",
		Country:       "UK",
		Latitude:      "51.517",
		Longitude:     "-0.106",
		TemperatureC:  "15",
		TemperatureF:  "59",
		Description:   "Clear",
		WindSpeedKmph: "10",
		WindDirection: "N",
		Humidity:      "50",
		Visibility:    "10",
		FeelsLikeC:    "14",
	}
}

func setupMockPublisher(t *testing.T, mergeErr error) (*is.I, *test.ContextBrokerClientMock, ObservationPublisher) {
	is := is.New(t)

	ctxBroker := &test.ContextBrokerClientMock{
		CreateEntityFunc: func(ctx context.Context, entity types.Entity, headers map[string][]string) (*ngsild.CreateEntityResult, error) {
			return nil, nil
		},
		MergeEntityFunc: func(ctx context.Context, entityID string, fragment types.EntityFragment, headers map[string][]string) (*ngsild.MergeEntityResult, error) {
			return nil, mergeErr
		},
	}

	return is, ctxBroker, NewObservationPublisher(ctxBroker)
}
