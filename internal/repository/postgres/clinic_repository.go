package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/pkg/errors"
	"github.com/clinic-directory/internal/pkg/utils"
)

// findNearbyLimit caps the bounding-box prefilter before the exact distance check.
const findNearbyLimit = 50

const clinicColumns = `
	id, google_place_id, name, address, latitude, longitude,
	services, consultation_fee, contact, rating, is_active,
	created_at, updated_at
`

type clinicRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewClinicRepository(db *DB) repository.ClinicRepository {
	return &clinicRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// FindNearby uses a bounding-box prefilter (1° of latitude is roughly 111 km),
// then re-checks each candidate with the exact great-circle distance.
func (r *clinicRepository) FindNearby(
	ctx context.Context,
	lat, lng, radiusKm float64,
	types []string,
) ([]*domain.Clinic, error) {
	latDelta, lngDelta := utils.BoundingBox(lat, radiusKm)

	query := `
		SELECT ` + clinicColumns + `
		FROM clinics
		WHERE latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
		  AND is_active = true
	`
	args := []interface{}{lat - latDelta, lat + latDelta, lng - lngDelta, lng + lngDelta}
	argIdx := 5

	if len(types) > 0 {
		patterns := make([]string, len(types))
		for i, t := range types {
			patterns[i] = "%" + t + "%"
		}
		query += fmt.Sprintf(" AND services ILIKE ANY($%d)", argIdx)
		args = append(args, pq.Array(patterns))
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY rating DESC LIMIT $%d", argIdx)
	args = append(args, findNearbyLimit)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query nearby clinics", zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}
	defer rows.Close()

	clinics := make([]*domain.Clinic, 0)
	for rows.Next() {
		var c domain.Clinic
		if err := rows.StructScan(&c); err != nil {
			r.logger.Error("Failed to scan clinic", zap.Error(err))
			return nil, errors.NewStoreUnavailable(err)
		}
		if utils.HaversineDistance(lat, lng, c.Latitude, c.Longitude) <= radiusKm {
			clinics = append(clinics, &c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}

	return clinics, nil
}

// Upsert writes each input in its own statement. ON CONFLICT on the external
// place id keeps re-discovery idempotent: one row per place, mutable fields
// refreshed in place.
func (r *clinicRepository) Upsert(
	ctx context.Context,
	inputs []domain.ClinicInput,
) ([]*domain.Clinic, error) {
	if len(inputs) == 0 {
		return []*domain.Clinic{}, nil
	}

	query := `
		INSERT INTO clinics (
			google_place_id, name, address, latitude, longitude,
			services, rating, is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		ON CONFLICT (google_place_id) DO UPDATE SET
			name       = EXCLUDED.name,
			address    = EXCLUDED.address,
			latitude   = EXCLUDED.latitude,
			longitude  = EXCLUDED.longitude,
			services   = EXCLUDED.services,
			rating     = EXCLUDED.rating,
			is_active  = EXCLUDED.is_active,
			updated_at = now()
		RETURNING ` + clinicColumns

	clinics := make([]*domain.Clinic, 0, len(inputs))
	for _, in := range inputs {
		var c domain.Clinic
		err := r.db.QueryRowxContext(ctx, query,
			in.GooglePlaceID, in.Name, in.Address, in.Latitude, in.Longitude,
			in.Services, in.Rating, in.IsActive,
		).StructScan(&c)
		if err != nil {
			r.logger.Error("Failed to upsert clinic",
				zap.String("google_place_id", in.GooglePlaceID),
				zap.Error(err))
			return nil, errors.NewStoreUnavailable(err)
		}
		clinics = append(clinics, &c)
	}

	return clinics, nil
}

func (r *clinicRepository) UpdateDetails(
	ctx context.Context,
	placeID string,
	contact *string,
	rating float64,
) error {
	query := `
		UPDATE clinics
		SET contact = COALESCE($2, contact),
		    rating = $3,
		    updated_at = now()
		WHERE google_place_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, placeID, contact, rating)
	if err != nil {
		r.logger.Error("Failed to update clinic details",
			zap.String("google_place_id", placeID),
			zap.Error(err))
		return errors.NewStoreUnavailable(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrClinicNotFound
	}
	return nil
}

func (r *clinicRepository) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinics WHERE id = $1`

	var c domain.Clinic
	err := r.db.GetContext(ctx, &c, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrClinicNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get clinic by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}

	return &c, nil
}

func (r *clinicRepository) List(ctx context.Context, service string, limit int) ([]*domain.Clinic, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinics WHERE is_active = true`
	args := []interface{}{}
	argIdx := 1

	if service != "" {
		query += fmt.Sprintf(" AND services ILIKE $%d", argIdx)
		args = append(args, "%"+service+"%")
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY rating DESC LIMIT $%d", argIdx)
	args = append(args, limit)

	clinics := make([]*domain.Clinic, 0)
	if err := r.db.SelectContext(ctx, &clinics, query, args...); err != nil {
		r.logger.Error("Failed to list clinics", zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}

	return clinics, nil
}

func (r *clinicRepository) Create(ctx context.Context, clinic *domain.Clinic) (*domain.Clinic, error) {
	query := `
		INSERT INTO clinics (
			google_place_id, name, address, latitude, longitude,
			services, consultation_fee, contact, rating, is_active,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING ` + clinicColumns

	var c domain.Clinic
	err := r.db.QueryRowxContext(ctx, query,
		clinic.GooglePlaceID, clinic.Name, clinic.Address,
		clinic.Latitude, clinic.Longitude, clinic.Services,
		clinic.ConsultationFee, clinic.Contact, clinic.Rating, clinic.IsActive,
	).StructScan(&c)
	if err != nil {
		r.logger.Error("Failed to create clinic", zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}

	return &c, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *domain.Clinic) (*domain.Clinic, error) {
	query := `
		UPDATE clinics
		SET name = $2, address = $3, latitude = $4, longitude = $5,
		    services = $6, consultation_fee = $7, contact = $8,
		    is_active = $9, updated_at = now()
		WHERE id = $1
		RETURNING ` + clinicColumns

	var c domain.Clinic
	err := r.db.QueryRowxContext(ctx, query,
		clinic.ID, clinic.Name, clinic.Address,
		clinic.Latitude, clinic.Longitude, clinic.Services,
		clinic.ConsultationFee, clinic.Contact, clinic.IsActive,
	).StructScan(&c)
	if err == sql.ErrNoRows {
		return nil, errors.ErrClinicNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update clinic", zap.Int64("id", clinic.ID), zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}

	return &c, nil
}

func (r *clinicRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clinics WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete clinic", zap.Int64("id", id), zap.Error(err))
		return errors.NewStoreUnavailable(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrClinicNotFound
	}
	return nil
}

func (r *clinicRepository) SetRating(ctx context.Context, id int64, rating float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clinics SET rating = $2, updated_at = now() WHERE id = $1`,
		id, rating,
	)
	if err != nil {
		r.logger.Error("Failed to set clinic rating", zap.Int64("id", id), zap.Error(err))
		return errors.NewStoreUnavailable(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrClinicNotFound
	}
	return nil
}
