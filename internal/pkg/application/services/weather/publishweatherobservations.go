package weathersvc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/context-broker/pkg/datamodels/fiware"
	"github.com/diwise/context-broker/pkg/ngsild/client"
	ngsierrors "github.com/diwise/context-broker/pkg/ngsild/errors"
	"github.com/diwise/context-broker/pkg/ngsild/types"
	"github.com/diwise/context-broker/pkg/ngsild/types/entities"
	"github.com/diwise/context-broker/pkg/ngsild/types/entities/decorators"
	"github.com/diwise/context-broker/pkg/ngsild/types/properties"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

// ObservationPublisher stores current conditions as WeatherObserved entities in a context broker
type ObservationPublisher interface {
	Publish(ctx context.Context, current Conditions, observedAt time.Time) error
}

func NewObservationPublisher(ctxBrokerClient client.ContextBrokerClient) ObservationPublisher {
	return &observationPublisher{
		ctxBrokerClient: ctxBrokerClient,
	}
}

type observationPublisher struct {
	ctxBrokerClient client.ContextBrokerClient
}

var entityIDPrefix string = fiware.WeatherObservedIDPrefix + "wttr:"

func (op *observationPublisher) Publish(ctx context.Context, current Conditions, observedAt time.Time) (err error) {
	ctx, span := tracer.Start(ctx, "publish-weatherobserved")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if current.AreaName == "" {
		err = errors.New("unable to publish weather observation without an area name")
		return
	}

	attributes := convertConditionsToFiwareEntity(current, observedAt)

	fragment, _ := entities.NewFragment(attributes...)
	entityID := EntityID(current.AreaName)

	headers := map[string][]string{"Content-Type": {"application/ld+json"}}

	_, err = op.ctxBrokerClient.MergeEntity(ctx, entityID, fragment, headers)
	if err != nil {
		if !errors.Is(err, ngsierrors.ErrNotFound) {
			err = fmt.Errorf("failed to merge entity: %s", err.Error())
			return
		}

		var entity types.Entity
		entity, err = entities.New(entityID, fiware.WeatherObservedTypeName, attributes...)
		if err != nil {
			err = fmt.Errorf("entities.New failed: %s", err.Error())
			return
		}

		_, err = op.ctxBrokerClient.CreateEntity(ctx, entity, headers)
		if err != nil {
			err = fmt.Errorf("failed to post weather observed to context broker: %s", err.Error())
			return
		}
	}

	logging.GetFromContext(ctx).Debug("published weather observation", "entityID", entityID)

	return nil
}

func EntityID(areaName string) string {
	return entityIDPrefix + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(areaName)), " ", "-")
}

func convertConditionsToFiwareEntity(current Conditions, observedAt time.Time) []entities.EntityDecoratorFunc {
	utcTime := observedAt.UTC().Format(time.RFC3339)

	attributes := append(
		make([]entities.EntityDecoratorFunc, 0, 8),
		decorators.Name(current.AreaName),
		decorators.DateObserved(utcTime),
	)

	lat, latErr := strconv.ParseFloat(current.Latitude, 64)
	lon, lonErr := strconv.ParseFloat(current.Longitude, 64)
	if latErr == nil && lonErr == nil {
		attributes = append(attributes, decorators.Location(lat, lon))
	}

	if v, ok := parseNumber(current.TemperatureC); ok {
		attributes = append(attributes, number("temperature", v, utcTime))
	}

	if v, ok := parseNumber(current.FeelsLikeC); ok {
		attributes = append(attributes, number("feelsLikeTemperature", v, utcTime))
	}

	if v, ok := parseNumber(current.Humidity); ok {
		attributes = append(attributes, number("humidity", v/100.0, utcTime))
	}

	if v, ok := parseNumber(current.WindSpeedKmph); ok {
		attributes = append(attributes, number("windSpeed", v/3.6, utcTime))
	}

	return attributes
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func number(property string, value float64, at string) entities.EntityDecoratorFunc {
	return decorators.Number(property, value, properties.ObservedAt(at))
}
