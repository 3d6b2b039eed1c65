package store

import "time"

// Phone type values accepted for MovingRequest.PhoneType.
const (
	PhoneCell = "cell"
	PhoneHome = "home"
	PhoneWork = "work"
)

// Building type values accepted for MovingRequest.FromBuildingType.
const (
	BuildingHouse     = "house"
	BuildingApartment = "apartment"
)

// MovingRequest is one row in the moving_requests table. RequestID is a
// 6-digit numeric string minted once per conversational session; it is the
// primary key rather than an auto-increment id so lookups by the spoken
// request id hit the key directly.
type MovingRequest struct {
	RequestID        string    `json:"request_id" gorm:"column:request_id;primaryKey"`
	CustomerName     string    `json:"customer_name" gorm:"not null"`
	Email            string    `json:"email" gorm:"not null"`
	PhoneNumber      string    `json:"phone_number" gorm:"not null"`
	PhoneType        string    `json:"phone_type" gorm:"not null"`
	FromAddress      string    `json:"from_address" gorm:"not null"`
	FromBuildingType string    `json:"from_building_type" gorm:"not null"`
	FromBedrooms     int       `json:"from_bedrooms" gorm:"not null"`
	ToAddress        string    `json:"to_address" gorm:"not null"`
	MoveDate         string    `json:"move_date" gorm:"not null"`
	FlexibleDate     bool      `json:"flexible_date" gorm:"not null"`
	AssistCar        bool      `json:"assist_car" gorm:"not null"`
	CarYear          string    `json:"car_year"`
	CarMake          string    `json:"car_make"`
	CarModel         string    `json:"car_model"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (MovingRequest) TableName() string {
	return "moving_requests"
}
