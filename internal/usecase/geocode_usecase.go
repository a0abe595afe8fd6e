package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/pkg/utils"
	"github.com/clinic-directory/internal/usecase/dto"
)

// Geocode cache key prefixes. Reverse keys round coordinates to 5 decimal
// places, roughly one meter, so nearby repeat lookups share an entry.
const (
	geocodeKeyPrefix = "geocode:addr:"
	reverseKeyPrefix = "geocode:rev:"
)

// GeocodeUseCase resolves addresses and coordinates through the provider with
// a Redis cache-aside layer in front.
type GeocodeUseCase struct {
	placesRepo repository.PlacesRepository
	cacheRepo  repository.CacheRepository
	logger     *zap.Logger
	cacheTTL   time.Duration
}

func NewGeocodeUseCase(
	placesRepo repository.PlacesRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *GeocodeUseCase {
	return &GeocodeUseCase{
		placesRepo: placesRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
		cacheTTL:   cacheTTL,
	}
}

// Resolve dispatches on the request shape: address present means forward
// geocoding, a lat/lng pair means reverse. Exactly one of the two is required.
func (uc *GeocodeUseCase) Resolve(ctx context.Context, req dto.GeocodeRequest) (*dto.GeocodeResponse, error) {
	hasAddress := strings.TrimSpace(req.Address) != ""
	hasPoint := req.Lat != nil && req.Lng != nil

	switch {
	case hasAddress && hasPoint:
		return nil, errors.NewValidation("provide either address or lat/lng, not both")
	case hasAddress:
		result, err := uc.geocode(ctx, strings.TrimSpace(req.Address))
		if err != nil {
			return nil, err
		}
		return &dto.GeocodeResponse{Mode: "forward", Result: result}, nil
	case hasPoint:
		if !utils.ValidateCoordinates(*req.Lat, *req.Lng) {
			return nil, errors.ErrInvalidCoordinates
		}
		result, err := uc.reverseGeocode(ctx, *req.Lat, *req.Lng)
		if err != nil {
			return nil, err
		}
		return &dto.GeocodeResponse{Mode: "reverse", Result: result}, nil
	default:
		return nil, errors.NewValidation("address or lat/lng required")
	}
}

// Directions returns the best route summary between two points. Routes are not
// cached: traffic-dependent durations go stale too fast to be worth a TTL.
func (uc *GeocodeUseCase) Directions(ctx context.Context, req dto.DirectionsRequest) (*domain.DirectionsResult, error) {
	if !utils.ValidateCoordinates(req.Origin.Lat, req.Origin.Lng) ||
		!utils.ValidateCoordinates(req.Destination.Lat, req.Destination.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	result, err := uc.placesRepo.GetDirections(ctx,
		req.Origin.Lat, req.Origin.Lng,
		req.Destination.Lat, req.Destination.Lng)
	if err != nil {
		uc.logger.Error("Directions fetch failed", zap.Error(err))
		return nil, errors.NewProviderError(err)
	}
	return result, nil
}

func (uc *GeocodeUseCase) geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	key := geocodeKeyPrefix + strings.ToLower(address)

	if cached := uc.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := uc.placesRepo.Geocode(ctx, address)
	if err != nil {
		uc.logger.Error("Geocoding failed",
			zap.String("address", address),
			zap.Error(err))
		return nil, errors.NewProviderError(err)
	}

	uc.toCache(ctx, key, result)
	return result, nil
}

func (uc *GeocodeUseCase) reverseGeocode(ctx context.Context, lat, lng float64) (*domain.GeocodeResult, error) {
	key := fmt.Sprintf("%s%.5f:%.5f", reverseKeyPrefix, lat, lng)

	if cached := uc.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := uc.placesRepo.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		uc.logger.Error("Reverse geocoding failed",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Error(err))
		return nil, errors.NewProviderError(err)
	}

	uc.toCache(ctx, key, result)
	return result, nil
}

// fromCache is best effort: a cache error is logged and treated as a miss.
func (uc *GeocodeUseCase) fromCache(ctx context.Context, key string) *domain.GeocodeResult {
	if uc.cacheRepo == nil {
		return nil
	}
	result, err := uc.cacheRepo.GetGeocode(ctx, key)
	if err != nil {
		uc.logger.Warn("Geocode cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return result
}

func (uc *GeocodeUseCase) toCache(ctx context.Context, key string, result *domain.GeocodeResult) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.SetGeocode(ctx, key, result, uc.cacheTTL); err != nil {
		uc.logger.Warn("Geocode cache write failed", zap.String("key", key), zap.Error(err))
	}
}
