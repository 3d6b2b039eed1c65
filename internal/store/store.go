// Package store persists moving-request records keyed by their 6-digit
// request id. Writes commit immediately; there are no transactions spanning
// calls. Schema constraints (enumerated values, bedroom count, the car-detail
// triple) are checked here before anything reaches the database.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vanlineshq/moveline/internal/events"
	"github.com/vanlineshq/moveline/internal/metrics"
)

type Store struct {
	db     *gorm.DB
	logger *slog.Logger
	broker *events.Broker
}

type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithBroker attaches an event broker; the store publishes a change event
// after every successful write so the dashboard can refresh live.
func WithBroker(b *events.Broker) Option {
	return func(s *Store) { s.broker = b }
}

// Open connects to the database named by dsn and migrates the
// moving_requests table. The dsn must be supplied by the caller; an empty
// value is a configuration error, not something to default here.
func Open(dsn string, opts ...Option) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("store: database url is required")
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return NewWithDB(db, opts...)
}

// NewWithDB wraps a pre-configured *gorm.DB (useful for testing) and runs
// the migration.
func NewWithDB(db *gorm.DB, opts ...Option) (*Store, error) {
	s := &Store{db: db, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if err := db.AutoMigrate(&MovingRequest{}); err != nil {
		return nil, fmt.Errorf("migrate moving_requests: %w", err)
	}
	return s, nil
}

// validate normalizes the enumerated fields in place and checks the schema
// constraints. Returns a *ValidationError naming the offending field.
func validate(rec *MovingRequest) error {
	rec.PhoneType = strings.ToLower(strings.TrimSpace(rec.PhoneType))
	rec.FromBuildingType = strings.ToLower(strings.TrimSpace(rec.FromBuildingType))

	switch rec.PhoneType {
	case PhoneCell, PhoneHome, PhoneWork:
	default:
		return &ValidationError{Field: "phone_type", Value: rec.PhoneType}
	}
	switch rec.FromBuildingType {
	case BuildingHouse, BuildingApartment:
	default:
		return &ValidationError{Field: "from_building_type", Value: rec.FromBuildingType}
	}
	if rec.FromBedrooms <= 0 {
		return &ValidationError{Field: "from_bedrooms", Value: fmt.Sprintf("%d", rec.FromBedrooms)}
	}
	if rec.AssistCar {
		if strings.TrimSpace(rec.CarYear) == "" {
			return &ValidationError{Field: "car_year", Value: rec.CarYear}
		}
		if strings.TrimSpace(rec.CarMake) == "" {
			return &ValidationError{Field: "car_make", Value: rec.CarMake}
		}
		if strings.TrimSpace(rec.CarModel) == "" {
			return &ValidationError{Field: "car_model", Value: rec.CarModel}
		}
	}
	return nil
}

// Create inserts a new record. When a row with the same request id already
// exists the call becomes a full update of that row (upsert-by-id); the
// conversational flow reuses one id per session and re-creates freely as
// fields are collected.
func (s *Store) Create(rec *MovingRequest) (*MovingRequest, error) {
	if err := validate(rec); err != nil {
		metrics.StoreOperations.WithLabelValues("create", "invalid").Inc()
		return nil, err
	}

	existing, err := s.Get(rec.RequestID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.Info("create on existing id, updating instead",
			slog.String("request_id", rec.RequestID))
		return s.Update(rec.RequestID, rec)
	}

	if err := s.db.Create(rec).Error; err != nil {
		metrics.StoreOperations.WithLabelValues("create", "error").Inc()
		return nil, fmt.Errorf("create request %s: %w: %v", rec.RequestID, ErrStorageUnavailable, err)
	}
	metrics.StoreOperations.WithLabelValues("create", "ok").Inc()
	s.logger.Info("created moving request", slog.String("request_id", rec.RequestID))
	s.notify("create", rec.RequestID)
	return s.Get(rec.RequestID)
}

// Get returns the record with the given id, or nil when no row matches.
// Not found is a normal outcome, not an error.
func (s *Store) Get(requestID string) (*MovingRequest, error) {
	var rec MovingRequest
	err := s.db.Where("request_id = ?", requestID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.StoreOperations.WithLabelValues("get", "miss").Inc()
		return nil, nil
	}
	if err != nil {
		metrics.StoreOperations.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("get request %s: %w: %v", requestID, ErrStorageUnavailable, err)
	}
	metrics.StoreOperations.WithLabelValues("get", "ok").Inc()
	return &rec, nil
}

// Update replaces every field of an existing row. Returns nil when no row
// with that id exists; it never inserts.
func (s *Store) Update(requestID string, rec *MovingRequest) (*MovingRequest, error) {
	if err := validate(rec); err != nil {
		metrics.StoreOperations.WithLabelValues("update", "invalid").Inc()
		return nil, err
	}

	result := s.db.Model(&MovingRequest{}).
		Where("request_id = ?", requestID).
		Updates(map[string]interface{}{
			"customer_name":      rec.CustomerName,
			"email":              rec.Email,
			"phone_number":       rec.PhoneNumber,
			"phone_type":         rec.PhoneType,
			"from_address":       rec.FromAddress,
			"from_building_type": rec.FromBuildingType,
			"from_bedrooms":      rec.FromBedrooms,
			"to_address":         rec.ToAddress,
			"move_date":          rec.MoveDate,
			"flexible_date":      rec.FlexibleDate,
			"assist_car":         rec.AssistCar,
			"car_year":           rec.CarYear,
			"car_make":           rec.CarMake,
			"car_model":          rec.CarModel,
		})
	if result.Error != nil {
		metrics.StoreOperations.WithLabelValues("update", "error").Inc()
		return nil, fmt.Errorf("update request %s: %w: %v", requestID, ErrStorageUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		metrics.StoreOperations.WithLabelValues("update", "miss").Inc()
		return nil, nil
	}
	metrics.StoreOperations.WithLabelValues("update", "ok").Inc()
	s.logger.Info("updated moving request", slog.String("request_id", requestID))
	s.notify("update", requestID)
	return s.Get(requestID)
}

// Delete removes a row. True when a row was removed, false when none existed.
// Used by the administrative path only, never by the conversational flow.
func (s *Store) Delete(requestID string) (bool, error) {
	result := s.db.Where("request_id = ?", requestID).Delete(&MovingRequest{})
	if result.Error != nil {
		metrics.StoreOperations.WithLabelValues("delete", "error").Inc()
		return false, fmt.Errorf("delete request %s: %w: %v", requestID, ErrStorageUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		metrics.StoreOperations.WithLabelValues("delete", "miss").Inc()
		return false, nil
	}
	metrics.StoreOperations.WithLabelValues("delete", "ok").Inc()
	s.logger.Info("deleted moving request", slog.String("request_id", requestID))
	s.notify("delete", requestID)
	return true, nil
}

// ListAll returns every record, newest first. Consumed by the dashboard.
func (s *Store) ListAll() ([]MovingRequest, error) {
	var recs []MovingRequest
	if err := s.db.Order("created_at DESC").Find(&recs).Error; err != nil {
		metrics.StoreOperations.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("list requests: %w: %v", ErrStorageUnavailable, err)
	}
	metrics.StoreOperations.WithLabelValues("list", "ok").Inc()
	return recs, nil
}

// TestConnection reports whether the database answers a ping. It never
// returns an error; failures come back as false.
func (s *Store) TestConnection() bool {
	sqlDB, err := s.db.DB()
	if err != nil {
		s.logger.Warn("connection test failed", slog.String("error", err.Error()))
		return false
	}
	if err := sqlDB.Ping(); err != nil {
		s.logger.Warn("connection test failed", slog.String("error", err.Error()))
		return false
	}
	return true
}

func (s *Store) notify(op, requestID string) {
	if s.broker != nil {
		s.broker.Publish(op, requestID)
	}
}
