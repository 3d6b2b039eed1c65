package request

import (
	"strings"

	"github.com/vanlineshq/moveline/internal/store"
)

// FieldSpec describes one collectible field of a moving request. The ordered
// Fields table is the single source of truth for collection order, the
// completeness check, and the missing-field list in the collect prompt.
type FieldSpec struct {
	Name  string
	Label string

	// Present reports whether the field holds a usable value.
	Present func(r *store.MovingRequest) bool

	// needed reports whether the field is required for this record.
	// Nil means always required.
	needed func(r *store.MovingRequest) bool
}

// Needed reports whether the field must be present for rec to be complete.
func (f FieldSpec) Needed(rec *store.MovingRequest) bool {
	if f.needed == nil {
		return true
	}
	return f.needed(rec)
}

func nonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

func carNeeded(r *store.MovingRequest) bool {
	return r.AssistCar
}

// Fields lists every collectible field in the order the agent asks for them.
// The flexible-date and car-transport flags are yes/no questions rather than
// values that can be missing, so they do not appear here.
var Fields = []FieldSpec{
	{Name: "customer_name", Label: "Customer name", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.CustomerName) }},
	{Name: "email", Label: "Email address", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.Email) }},
	{Name: "phone_number", Label: "Phone number", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.PhoneNumber) }},
	{Name: "phone_type", Label: "Phone type (cell, home, or work)", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.PhoneType) }},
	{Name: "from_address", Label: "Current address", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.FromAddress) }},
	{Name: "from_building_type", Label: "Building type (house or apartment)", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.FromBuildingType) }},
	{Name: "from_bedrooms", Label: "Number of bedrooms", Present: func(r *store.MovingRequest) bool { return r.FromBedrooms > 0 }},
	{Name: "to_address", Label: "Destination address", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.ToAddress) }},
	{Name: "move_date", Label: "Preferred move date", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.MoveDate) }},
	{Name: "car_year", Label: "Car year", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.CarYear) }, needed: carNeeded},
	{Name: "car_make", Label: "Car make", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.CarMake) }, needed: carNeeded},
	{Name: "car_model", Label: "Car model", Present: func(r *store.MovingRequest) bool { return nonEmpty(r.CarModel) }, needed: carNeeded},
}
