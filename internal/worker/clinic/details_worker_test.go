package clinic_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/worker/clinic"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
	mu sync.Mutex

	// messages are handed out once, then the stream reads empty
	messages []domain.StreamMessage
	consumed bool
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.consumed {
		return nil, nil
	}
	m.consumed = true
	return m.messages, nil
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockPlacesRepository is a mock of PlacesRepository
type MockPlacesRepository struct {
	mock.Mock
}

func (m *MockPlacesRepository) SearchNearby(ctx context.Context, req domain.NearbySearchRequest) (*domain.NearbySearchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NearbySearchResult), args.Error(1)
}

func (m *MockPlacesRepository) GetPlaceDetails(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaceDetails), args.Error(1)
}

func (m *MockPlacesRepository) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockPlacesRepository) ReverseGeocode(ctx context.Context, lat, lng float64) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockPlacesRepository) GetDirections(ctx context.Context, originLat, originLng, destLat, destLng float64) (*domain.DirectionsResult, error) {
	args := m.Called(ctx, originLat, originLng, destLat, destLng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectionsResult), args.Error(1)
}

// MockClinicRepository covers only what the worker touches
type MockClinicRepository struct {
	mock.Mock
}

func (m *MockClinicRepository) FindNearby(ctx context.Context, lat, lng, radiusKm float64, types []string) ([]*domain.Clinic, error) {
	args := m.Called(ctx, lat, lng, radiusKm, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Clinic), args.Error(1)
}

func (m *MockClinicRepository) Upsert(ctx context.Context, inputs []domain.ClinicInput) ([]*domain.Clinic, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Clinic), args.Error(1)
}

func (m *MockClinicRepository) UpdateDetails(ctx context.Context, placeID string, contact *string, rating float64) error {
	args := m.Called(ctx, placeID, contact, rating)
	return args.Error(0)
}

func (m *MockClinicRepository) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}

func (m *MockClinicRepository) List(ctx context.Context, service string, limit int) ([]*domain.Clinic, error) {
	args := m.Called(ctx, service, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Clinic), args.Error(1)
}

func (m *MockClinicRepository) Create(ctx context.Context, c *domain.Clinic) (*domain.Clinic, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}

func (m *MockClinicRepository) Update(ctx context.Context, c *domain.Clinic) (*domain.Clinic, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}

func (m *MockClinicRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClinicRepository) SetRating(ctx context.Context, id int64, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func encodeEvent(t *testing.T, event domain.ClinicDetailsEvent) string {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return string(data)
}

func runWorkerBriefly(t *testing.T, w *clinic.DetailsWorker) {
	t.Helper()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	time.Sleep(300 * time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop in time")
	}
}

func TestDetailsWorker_EnrichesAndAcks(t *testing.T) {
	logger := zap.NewNop()

	mockStream := &MockStreamRepository{
		messages: []domain.StreamMessage{
			{ID: "1-0", Data: encodeEvent(t, domain.ClinicDetailsEvent{PlaceID: "ChIJabc"})},
		},
	}
	mockPlaces := &MockPlacesRepository{}
	mockClinic := &MockClinicRepository{}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamClinicDetails, "test-group").
		Return(nil)
	mockPlaces.On("GetPlaceDetails", mock.Anything, "ChIJabc").
		Return(&domain.PlaceDetails{ID: "ChIJabc", PhoneNumber: "020 1234567", Rating: 4.5}, nil)
	mockClinic.On("UpdateDetails", mock.Anything, "ChIJabc", mock.MatchedBy(func(contact *string) bool {
		return contact != nil && *contact == "020 1234567"
	}), 4.5).Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamClinicDetails, "test-group", "1-0").
		Return(nil)

	w := clinic.NewDetailsWorker(mockStream, mockPlaces, mockClinic, "test-group", 3, logger)
	runWorkerBriefly(t, w)

	mockPlaces.AssertExpectations(t)
	mockClinic.AssertExpectations(t)
	mockStream.AssertExpectations(t)
}

func TestDetailsWorker_BrokenMessageAckedAndSkipped(t *testing.T) {
	logger := zap.NewNop()

	mockStream := &MockStreamRepository{
		messages: []domain.StreamMessage{
			{ID: "1-0", Data: "not json"},
		},
	}
	mockPlaces := &MockPlacesRepository{}
	mockClinic := &MockClinicRepository{}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamClinicDetails, "test-group").
		Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamClinicDetails, "test-group", "1-0").
		Return(nil)

	w := clinic.NewDetailsWorker(mockStream, mockPlaces, mockClinic, "test-group", 3, logger)
	runWorkerBriefly(t, w)

	// Broken payloads are acked away, never enriched
	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamClinicDetails, "test-group", "1-0")
	mockPlaces.AssertNotCalled(t, "GetPlaceDetails", mock.Anything, mock.Anything)
}

func TestDetailsWorker_FetchFailureLeavesMessagePending(t *testing.T) {
	logger := zap.NewNop()

	mockStream := &MockStreamRepository{
		messages: []domain.StreamMessage{
			{ID: "1-0", Data: encodeEvent(t, domain.ClinicDetailsEvent{PlaceID: "ChIJbad"})},
		},
	}
	mockPlaces := &MockPlacesRepository{}
	mockClinic := &MockClinicRepository{}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamClinicDetails, "test-group").
		Return(nil)
	mockPlaces.On("GetPlaceDetails", mock.Anything, "ChIJbad").
		Return(nil, errors.New("provider unavailable"))

	w := clinic.NewDetailsWorker(mockStream, mockPlaces, mockClinic, "test-group", 3, logger)
	runWorkerBriefly(t, w)

	// No ack: the pending entry stays claimable for retry
	mockStream.AssertNotCalled(t, "AckMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockClinic.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
