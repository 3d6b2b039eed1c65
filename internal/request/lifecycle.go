// Package request derives the conversational state of a moving request:
// whether enough fields are collected to answer general questions, which
// fields are still missing, and how a record reads back to the customer.
package request

import (
	"fmt"
	"strings"

	"github.com/vanlineshq/moveline/internal/store"
)

// NotFoundMessage is spoken when a lookup misses.
const NotFoundMessage = "Moving request not found. Please check your request ID and try again."

// IsComplete reports whether the record has every required field: the eight
// required strings non-empty, a positive bedroom count, and the full car
// triple when car transport is requested. A nil record is incomplete.
func IsComplete(rec *store.MovingRequest) bool {
	if rec == nil {
		return false
	}
	for _, f := range Fields {
		if f.Needed(rec) && !f.Present(rec) {
			return false
		}
	}
	return true
}

// MissingFields returns the labels of required fields not yet collected, in
// collection order. Empty for a complete record, every label for a nil one.
func MissingFields(rec *store.MovingRequest) []string {
	var missing []string
	for _, f := range Fields {
		if rec == nil {
			if f.needed == nil {
				missing = append(missing, f.Label)
			}
			continue
		}
		if f.Needed(rec) && !f.Present(rec) {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// FormatSummary renders the record for read-back to the customer, one field
// per line. The field order, the Yes/No booleans, the single optional car
// line, and the trailing change prompt are a display contract consumed by
// the conversation transcript; do not reorder.
func FormatSummary(rec *store.MovingRequest) string {
	var b strings.Builder
	b.WriteString("Here are your moving request details:\n")
	fmt.Fprintf(&b, "Request ID: %s\n", rec.RequestID)
	fmt.Fprintf(&b, "Customer Name: %s\n", rec.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", rec.Email)
	fmt.Fprintf(&b, "Phone number: %s\n", rec.PhoneNumber)
	fmt.Fprintf(&b, "From Address: %s\n", rec.FromAddress)
	fmt.Fprintf(&b, "Number of Bedrooms: %d\n", rec.FromBedrooms)
	fmt.Fprintf(&b, "To Address: %s\n", rec.ToAddress)
	fmt.Fprintf(&b, "Move Date: %s\n", rec.MoveDate)
	fmt.Fprintf(&b, "Flexible Date: %s\n", yesNo(rec.FlexibleDate))
	fmt.Fprintf(&b, "Car Transport: %s\n", yesNo(rec.AssistCar))

	if rec.AssistCar && rec.CarYear != "" && rec.CarMake != "" && rec.CarModel != "" {
		fmt.Fprintf(&b, "Car Details: %s %s %s\n", rec.CarYear, rec.CarMake, rec.CarModel)
	}

	b.WriteString("\nWould you like to make any changes to these details?")
	return b.String()
}

// AdditionalDetail returns the fields deliberately left out of the default
// summary. Unknown field names get a not-available message, never an error.
func AdditionalDetail(rec *store.MovingRequest, field string) string {
	if rec == nil {
		return NotFoundMessage
	}
	switch strings.ToLower(field) {
	case "phone_type":
		return fmt.Sprintf("Phone type: %s", rec.PhoneType)
	case "building_type":
		return fmt.Sprintf("Building Type: %s", rec.FromBuildingType)
	case "car_details":
		if !rec.AssistCar {
			return "Car transport is not needed for this request."
		}
		if rec.CarYear == "" || rec.CarMake == "" || rec.CarModel == "" {
			return "Car transport is needed but car details are incomplete."
		}
		return fmt.Sprintf("Car Year: %s\nCar Make: %s\nCar Model: %s", rec.CarYear, rec.CarMake, rec.CarModel)
	default:
		return fmt.Sprintf("Field %q not found or not available.", field)
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
