package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"tripbook/internal/domain"
	"tripbook/internal/repositories"
	"tripbook/internal/store"
	"tripbook/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable passenger manifest for a trip.
type DocsService struct {
	Store     *store.Store
	RequestID string
}

type manifestData struct {
	Trip       repositories.TripSummary
	Passengers []passengerLine
	FareAC     *int64
	FareNonAC  *int64
}

type passengerLine struct {
	Name   string
	Phone  string
	Gender string
}

func (s DocsService) GenerateManifest(ctx context.Context, code string) ([]byte, string, error) {
	data, err := s.loadManifestData(ctx, code)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_manifest", "code="+code)
	return buildManifestPDF(data)
}

func (s DocsService) loadManifestData(ctx context.Context, code string) (manifestData, error) {
	var out manifestData
	trips := repositories.TripRepository{R: s.Store}

	trip, found, err := trips.GetByCode(ctx, strings.ToUpper(utils.TrimOrEmpty(code)))
	if err != nil {
		return out, err
	}
	if !found {
		return out, domain.NotFoundError{Resource: "trip " + code}
	}

	summaries, err := trips.List(ctx)
	if err != nil {
		return out, err
	}
	for _, sm := range summaries {
		if sm.ID == trip.ID {
			out.Trip = sm
			break
		}
	}

	routes := repositories.RouteRepository{R: s.Store}
	if rt, ok, err := routes.GetByID(ctx, trip.RouteID); err != nil {
		return out, err
	} else if ok {
		out.FareAC = rt.FareAC
		out.FareNonAC = rt.FareNonAC
	}

	list, err := repositories.PassengerRepository{R: s.Store}.ListByTrip(ctx, trip.ID)
	if err != nil {
		return out, err
	}
	for _, p := range list {
		out.Passengers = append(out.Passengers, passengerLine{Name: p.Name, Phone: p.Phone, Gender: p.Gender})
	}
	return out, nil
}

func buildManifestPDF(d manifestData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Manifest", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP MANIFEST")
	pdf.Ln(12)

	ac := "No"
	fare := d.FareNonAC
	if d.Trip.HasAC {
		ac = "Yes"
		fare = d.FareAC
	}
	fareLine := "-"
	if fare != nil {
		fareLine = utils.FormatNaira(*fare)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Code : %s", d.Trip.Code),
		fmt.Sprintf("Route        : %s -> %s", safe(d.Trip.FromPlace), safe(d.Trip.ToPlace)),
		fmt.Sprintf("Driver       : %s (%s)", safe(d.Trip.DriverName), safe(d.Trip.Plate)),
		fmt.Sprintf("AC           : %s", ac),
		fmt.Sprintf("Fare         : %s", fareLine),
		fmt.Sprintf("Seats        : %d/%d taken", d.Trip.PassengerCount, d.Trip.Capacity),
		fmt.Sprintf("Created      : %s", safe(d.Trip.CreatedAt)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Passengers:")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range d.Passengers {
		line := fmt.Sprintf("%d) %s  %s  %s", i+1, safe(p.Name), safe(p.Phone), safe(p.Gender))
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	if len(d.Passengers) == 0 {
		pdf.Cell(0, 6, "(no passengers booked)")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("MANIFEST_%s.pdf", d.Trip.Code)
	return buf.Bytes(), filename, nil
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
