package services

import (
	"context"
	"fmt"
	"strings"

	"tripbook/internal/domain"
	"tripbook/internal/repositories"
	"tripbook/internal/store"
	"tripbook/internal/utils"
)

// BookingService runs the multi-step booking allocation: driver upsert,
// trip get-or-create, capacity-checked passenger insert, seats-left
// recomputation. The whole sequence runs inside one transaction so no
// interleaved booking can observe it half-done.
type BookingService struct {
	Store     *store.Store
	RequestID string
}

type BookingInput struct {
	Code           string `json:"code"`
	RouteID        int64  `json:"routeId"`
	Plate          string `json:"plate"`
	HasAC          bool   `json:"hasAc"`
	DriverName     string `json:"driverName"`
	DriverPhone    string `json:"driverPhone"`
	PassengerName  string `json:"passengerName"`
	PassengerPhone string `json:"passengerPhone"`
	Gender         string `json:"gender"`
}

// BookingOutcome reports the booking result. A full vehicle is a normal
// outcome (Success=false, Reason="full"), not an error.
type BookingOutcome struct {
	Success     bool   `json:"success"`
	Reason      string `json:"reason,omitempty"`
	Code        string `json:"code"`
	TripID      int64  `json:"tripId,omitempty"`
	DriverID    int64  `json:"driverId,omitempty"`
	PassengerID int64  `json:"passengerId,omitempty"`
	SeatsLeft   int    `json:"seatsLeft"`
}

func (s BookingService) BookTrip(ctx context.Context, in BookingInput) (BookingOutcome, error) {
	in = normalizeBooking(in)
	if err := validateBooking(in); err != nil {
		return BookingOutcome{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "book_trip",
		fmt.Sprintf("code=%s route_id=%d", in.Code, in.RouteID))

	var out BookingOutcome
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		drivers := repositories.DriverRepository{R: tx}
		trips := repositories.TripRepository{R: tx}
		passengers := repositories.PassengerRepository{R: tx}
		routes := repositories.RouteRepository{R: tx}

		if _, found, err := routes.GetByID(ctx, in.RouteID); err != nil {
			return err
		} else if !found {
			return domain.NotFoundError{Resource: fmt.Sprintf("route %d", in.RouteID)}
		}

		driverID, err := drivers.Upsert(ctx, in.DriverName, in.DriverPhone, in.Plate)
		if err != nil {
			return err
		}

		trip, err := trips.GetOrCreate(ctx, in.Code, in.RouteID, driverID, in.Plate, in.HasAC)
		if err != nil {
			return err
		}

		passengerID, err := passengers.InsertGuarded(ctx, trip.ID, in.PassengerName, in.PassengerPhone, in.Gender)
		if err != nil {
			return err
		}

		seatsLeft, err := trips.SeatsLeft(ctx, trip.ID)
		if err != nil {
			return err
		}

		out = BookingOutcome{
			Success:     true,
			Code:        trip.Code,
			TripID:      trip.ID,
			DriverID:    driverID,
			PassengerID: passengerID,
			SeatsLeft:   seatsLeft,
		}
		return nil
	})

	if domain.IsCapacityExceeded(err) {
		return s.fullOutcome(ctx, in.Code)
	}
	if err != nil {
		return BookingOutcome{}, err
	}
	return out, nil
}

// fullOutcome reports the unchanged occupancy after a rejected booking.
func (s BookingService) fullOutcome(ctx context.Context, code string) (BookingOutcome, error) {
	out := BookingOutcome{Reason: "full", Code: code}
	trips := repositories.TripRepository{R: s.Store}
	trip, found, err := trips.GetByCode(ctx, code)
	if err != nil {
		return out, err
	}
	if found {
		out.TripID = trip.ID
		if left, err := trips.SeatsLeft(ctx, trip.ID); err == nil {
			out.SeatsLeft = left
		}
	}
	utils.LogEvent(s.RequestID, "booking", "book_trip_full", "code="+code)
	return out, nil
}

func normalizeBooking(in BookingInput) BookingInput {
	in.Code = strings.ToUpper(utils.TrimOrEmpty(in.Code))
	in.Plate = strings.ToUpper(utils.NormalizeSpace(in.Plate))
	in.DriverName = utils.NormalizeSpace(in.DriverName)
	in.DriverPhone = utils.NormalizePhone(in.DriverPhone)
	in.PassengerName = utils.NormalizeSpace(in.PassengerName)
	in.PassengerPhone = utils.NormalizePhone(in.PassengerPhone)
	in.Gender = strings.ToLower(utils.TrimOrEmpty(in.Gender))
	return in
}

func validateBooking(in BookingInput) error {
	switch {
	case in.Code == "":
		return domain.ValidationError{Field: "code", Msg: "booking code is required"}
	case in.RouteID <= 0:
		return domain.ValidationError{Field: "routeId", Msg: "route is required"}
	case in.DriverPhone == "":
		return domain.ValidationError{Field: "driverPhone", Msg: "driver phone is required"}
	case in.DriverName == "":
		return domain.ValidationError{Field: "driverName", Msg: "driver name is required"}
	case in.PassengerName == "":
		return domain.ValidationError{Field: "passengerName", Msg: "passenger name is required"}
	}
	return nil
}
