package webserver

import (
	"encoding/csv"
	"net/http"
	"strconv"
)

var csvHeader = []string{
	"Request ID", "Customer Name", "Email", "Phone Number", "Phone Type",
	"From Address", "Building Type", "Bedrooms", "To Address",
	"Move Date", "Flexible Date", "Car Transport", "Car Year",
	"Car Make", "Car Model",
}

// handleExportCSV streams every record as a CSV download, matching the
// column headings shown on the dashboard table.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListAll()
	if err != nil {
		s.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="moving_requests.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeader)
	for _, rec := range recs {
		_ = cw.Write([]string{
			rec.RequestID,
			rec.CustomerName,
			rec.Email,
			rec.PhoneNumber,
			rec.PhoneType,
			rec.FromAddress,
			rec.FromBuildingType,
			strconv.Itoa(rec.FromBedrooms),
			rec.ToAddress,
			rec.MoveDate,
			yesNo(rec.FlexibleDate),
			yesNo(rec.AssistCar),
			rec.CarYear,
			rec.CarMake,
			rec.CarModel,
		})
	}
	cw.Flush()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
