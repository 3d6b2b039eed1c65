package store

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens an in-memory SQLite store.
func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	s, err := NewWithDB(db, opts...)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return s
}

// validRequest returns a complete record without car transport.
func validRequest(requestID string) *MovingRequest {
	return &MovingRequest{
		RequestID:        requestID,
		CustomerName:     "John Smith",
		Email:            "john@example.com",
		PhoneNumber:      "555-1234",
		PhoneType:        "cell",
		FromAddress:      "123 Main St",
		FromBuildingType: "house",
		FromBedrooms:     3,
		ToAddress:        "456 Oak Ave",
		MoveDate:         "2024-03-15",
		FlexibleDate:     true,
		AssistCar:        false,
	}
}
