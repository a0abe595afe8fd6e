package usecase

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/pkg/utils"
	"github.com/clinic-directory/internal/usecase/dto"
)

// operationalStatus is the provider's business status for an open place.
const operationalStatus = "OPERATIONAL"

// DiscoveryUseCase orchestrates the cache-vs-provider decision for nearby
// clinic searches: serve from the store when it holds enough matches, otherwise
// fetch from the places provider and upsert the results back.
type DiscoveryUseCase struct {
	clinicRepo repository.ClinicRepository
	placesRepo repository.PlacesRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger

	// minCachedResults is the smallest cached match count considered useful
	// enough to skip the provider. Tunable via DISCOVERY_MIN_CACHED_RESULTS.
	minCachedResults int
}

func NewDiscoveryUseCase(
	clinicRepo repository.ClinicRepository,
	placesRepo repository.PlacesRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	minCachedResults int,
) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		clinicRepo:       clinicRepo,
		placesRepo:       placesRepo,
		streamRepo:       streamRepo,
		logger:           logger,
		minCachedResults: minCachedResults,
	}
}

// DiscoverNearby runs the discovery algorithm for one normalized query.
//
// A store failure propagates before any provider call is attempted: masking a
// broken store by always hitting the provider would mean unbounded API cost. A
// provider failure likewise propagates; it is never replaced with an empty or
// stale success.
func (uc *DiscoveryUseCase) DiscoverNearby(
	ctx context.Context,
	query domain.GeoQuery,
) (*dto.NearbyResponse, error) {
	bypass := query.BypassCache()

	var cached []*domain.Clinic
	if !bypass {
		var err error
		cached, err = uc.clinicRepo.FindNearby(ctx, query.Lat, query.Lng, query.RadiusKm, query.Types)
		if err != nil {
			uc.logger.Error("Clinic store lookup failed", zap.Error(err))
			return nil, err
		}
		uc.logger.Debug("Cache checked",
			zap.Int("cached_count", len(cached)),
			zap.Int("min_required", uc.minCachedResults))
	}

	// Enough cached matches and no bypass: serve from the store unchanged.
	if !bypass && len(cached) >= uc.minCachedResults {
		count := len(cached)
		uc.logger.Info("Nearby search served from cache",
			zap.Float64("lat", query.Lat),
			zap.Float64("lng", query.Lng),
			zap.Float64("radius_km", query.RadiusKm),
			zap.Int("count", count))

		return &dto.NearbyResponse{
			Clinics: cached,
			Debug: dto.NearbyDebug{
				Source:      dto.SourceCache,
				Query:       dto.EchoQuery(query),
				CachedCount: &count,
			},
		}, nil
	}

	ranking := query.Ranking
	if ranking == "" {
		// Proximity ordering by default for map consumption
		ranking = domain.RankingDistance
	}

	result, err := uc.placesRepo.SearchNearby(ctx, domain.NearbySearchRequest{
		Latitude:     query.Lat,
		Longitude:    query.Lng,
		RadiusMeters: query.RadiusMeters(),
		Types:        query.Types,
		MaxResults:   query.MaxResults,
		Ranking:      ranking,
	})
	if err != nil {
		uc.logger.Error("Places provider search failed", zap.Error(err))
		return nil, errors.NewProviderError(err)
	}

	clinics, err := uc.clinicRepo.Upsert(ctx, normalizePlaces(result.Places))
	if err != nil {
		uc.logger.Error("Failed to upsert discovered clinics", zap.Error(err))
		return nil, err
	}

	sortByDistance(clinics, query.Lat, query.Lng)
	uc.publishDetailEvents(ctx, clinics)

	placeCount := len(result.Places)
	uc.logger.Info("Nearby search served from provider",
		zap.Float64("lat", query.Lat),
		zap.Float64("lng", query.Lng),
		zap.Float64("radius_km", query.RadiusKm),
		zap.Bool("bypass", bypass),
		zap.Int("place_count", placeCount),
		zap.Int("upserted", len(clinics)))

	return &dto.NearbyResponse{
		Clinics: clinics,
		Debug: dto.NearbyDebug{
			Source:     dto.SourceProvider,
			Query:      dto.EchoQuery(query),
			PlaceCount: &placeCount,
			PlacesMeta: result.Meta,
		},
	}, nil
}

// GetCachedClinics reads from the store only, never touching the provider.
func (uc *DiscoveryUseCase) GetCachedClinics(
	ctx context.Context,
	lat, lng, radiusKm float64,
	types []string,
) (*dto.CachedClinicsResponse, error) {
	clinics, err := uc.clinicRepo.FindNearby(ctx, lat, lng, radiusKm, types)
	if err != nil {
		uc.logger.Error("Clinic store lookup failed", zap.Error(err))
		return nil, err
	}

	return &dto.CachedClinicsResponse{
		Clinics: clinics,
		Source:  dto.SourceCache,
		Count:   len(clinics),
	}, nil
}

// GetPlaceDetails fetches provider details for one place and queues a refresh
// of the stored clinic record.
func (uc *DiscoveryUseCase) GetPlaceDetails(
	ctx context.Context,
	placeID string,
) (*domain.PlaceDetails, error) {
	if placeID == "" {
		return nil, errors.ErrValidation
	}

	details, err := uc.placesRepo.GetPlaceDetails(ctx, placeID)
	if err != nil {
		uc.logger.Error("Place details fetch failed",
			zap.String("place_id", placeID),
			zap.Error(err))
		return nil, errors.NewProviderError(err)
	}

	if uc.streamRepo != nil {
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamClinicDetails,
			domain.ClinicDetailsEvent{PlaceID: placeID}); err != nil {
			uc.logger.Warn("Failed to queue clinic details refresh",
				zap.String("place_id", placeID),
				zap.Error(err))
		}
	}

	return details, nil
}

// publishDetailEvents queues freshly discovered places for background detail
// enrichment. Best effort: a publish failure never fails the request.
func (uc *DiscoveryUseCase) publishDetailEvents(ctx context.Context, clinics []*domain.Clinic) {
	if uc.streamRepo == nil {
		return
	}
	for _, c := range clinics {
		event := domain.ClinicDetailsEvent{PlaceID: c.GooglePlaceID}
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamClinicDetails, event); err != nil {
			uc.logger.Warn("Failed to publish clinic details event",
				zap.String("google_place_id", c.GooglePlaceID),
				zap.Error(err))
			return
		}
	}
}

// normalizePlaces maps provider results onto the canonical clinic shape. The
// provider's place id becomes the upsert key.
func normalizePlaces(places []domain.Place) []domain.ClinicInput {
	inputs := make([]domain.ClinicInput, 0, len(places))
	for _, p := range places {
		var address *string
		if p.FormattedAddress != "" {
			addr := p.FormattedAddress
			address = &addr
		}

		var services *string
		if len(p.Types) > 0 {
			joined := strings.Join(p.Types, ", ")
			services = &joined
		}

		inputs = append(inputs, domain.ClinicInput{
			GooglePlaceID: p.ID,
			Name:          p.DisplayName.Text,
			Address:       address,
			Latitude:      p.Location.Latitude,
			Longitude:     p.Location.Longitude,
			Services:      services,
			Rating:        p.Rating,
			IsActive:      p.BusinessStatus == "" || p.BusinessStatus == operationalStatus,
		})
	}
	return inputs
}

func sortByDistance(clinics []*domain.Clinic, lat, lng float64) {
	sort.SliceStable(clinics, func(i, j int) bool {
		di := utils.HaversineDistance(lat, lng, clinics[i].Latitude, clinics[i].Longitude)
		dj := utils.HaversineDistance(lat, lng, clinics[j].Latitude, clinics[j].Longitude)
		return di < dj
	})
}
