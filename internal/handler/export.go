// Package handler — export.go implements GET /vacation/{id}/export.
// Returns every leg of one vacation as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"vacation_id", "vacation_name", "start_date", "leg",
	"city", "accommodation_name", "accommodation_type", "accommodation_cost",
	"days", "accommodation_booked",
	"destination", "transportation_type", "transportation_cost", "transportation_booked",
}

// exportRow is the JSON shape of a domain.ExportRow.
// Empty optional strings are omitted.
type exportRow struct {
	VacationID           string `json:"vacation_id"`
	VacationName         string `json:"vacation_name"`
	StartDate            string `json:"start_date,omitempty"`
	Leg                  int    `json:"leg"`
	City                 string `json:"city,omitempty"`
	AccommodationName    string `json:"accommodation_name,omitempty"`
	AccommodationType    string `json:"accommodation_type,omitempty"`
	AccommodationCost    string `json:"accommodation_cost"`
	Days                 int    `json:"days"`
	AccommodationBooked  bool   `json:"accommodation_booked"`
	Destination          string `json:"destination,omitempty"`
	TransportationType   string `json:"transportation_type,omitempty"`
	TransportationCost   string `json:"transportation_cost"`
	TransportationBooked bool   `json:"transportation_booked"`
}

// getExport handles GET /vacation/{id}/export.
// A vacation that cannot be exported for the user redirects to /profile,
// like the detail page.
func (s *Server) getExport(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		redirect(w, r, "/profile")
		return
	}

	user, _ := currentUser(r.Context())
	rows, err := s.export.Export(r.Context(), user, id)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrNotFound) {
			redirect(w, r, "/profile")
			return
		}
		s.serverError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, id.String(), rows)
		return
	}
	writeJSON(w, rows)
}

// writeJSON encodes domain rows as a JSON array. An empty export is [].
func writeJSON(w http.ResponseWriter, rows []domain.ExportRow) {
	out := make([]exportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRow(r))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// writeCSV encodes domain rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, name string, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="vacation-%s.csv"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.VacationID,
		r.VacationName,
		r.StartDate,
		strconv.Itoa(r.Leg),
		r.City,
		r.AccommodationName,
		r.AccommodationType,
		r.AccommodationCost,
		strconv.Itoa(r.Days),
		strconv.FormatBool(r.AccommodationBooked),
		r.Destination,
		r.TransportationType,
		r.TransportationCost,
		strconv.FormatBool(r.TransportationBooked),
	}
}
