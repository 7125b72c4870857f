package services

import (
	"context"
	"testing"
	"time"

	"tripbook/internal/domain"
	"tripbook/internal/repositories"
	"tripbook/internal/store"
	"tripbook/internal/store/backing"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.Options{
		Dir:     t.TempDir(),
		Backing: backing.NewMemory(),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// seedRoute adds a vehicle with the given capacity and a route over it
// between two seeded places, returning the route id.
func seedRoute(t *testing.T, st *store.Store, capacity int) int64 {
	t.Helper()
	ctx := context.Background()

	res, err := st.Exec(ctx, "INSERT INTO vehicles (type, capacity) VALUES (?, ?)", t.Name(), capacity)
	if err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	vehicleID := res.LastInsertID

	res, err = st.Exec(ctx,
		"INSERT INTO routes (from_place_id, to_place_id, vehicle_id) VALUES (?, ?, ?)",
		int64(1), int64(2), vehicleID)
	if err != nil {
		t.Fatalf("seed route: %v", err)
	}
	return res.LastInsertID
}

func bookingFor(routeID int64, code, passenger string) BookingInput {
	return BookingInput{
		Code:           code,
		RouteID:        routeID,
		Plate:          "LAG-123-XY",
		HasAC:          true,
		DriverName:     "Emeka Obi",
		DriverPhone:    "0803 555 0001",
		PassengerName:  passenger,
		PassengerPhone: "0803 555 0100",
		Gender:         "female",
	}
}

func TestBookTripFillsVehicleThenRejects(t *testing.T) {
	st := newTestStore(t)
	routeID := seedRoute(t, st, 2)
	svc := BookingService{Store: st}
	ctx := context.Background()
	code := "TRP-20250101-AAAA"

	out, err := svc.BookTrip(ctx, bookingFor(routeID, code, "Ada"))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if !out.Success || out.SeatsLeft != 1 {
		t.Fatalf("first booking: got success=%v seatsLeft=%d, want success with 1 seat left", out.Success, out.SeatsLeft)
	}

	out, err = svc.BookTrip(ctx, bookingFor(routeID, code, "Bola"))
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if !out.Success || out.SeatsLeft != 0 {
		t.Fatalf("second booking: got success=%v seatsLeft=%d, want success with 0 seats left", out.Success, out.SeatsLeft)
	}

	out, err = svc.BookTrip(ctx, bookingFor(routeID, code, "Chidi"))
	if err != nil {
		t.Fatalf("third booking returned error: %v", err)
	}
	if out.Success || out.Reason != "full" {
		t.Fatalf("third booking: got success=%v reason=%q, want full-vehicle outcome", out.Success, out.Reason)
	}
	if out.SeatsLeft != 0 {
		t.Fatalf("third booking: seatsLeft=%d, want 0", out.SeatsLeft)
	}

	// The rejected insert left the passenger count unchanged.
	passengers := repositories.PassengerRepository{R: st}
	n, err := passengers.CountByTrip(ctx, out.TripID)
	if err != nil {
		t.Fatalf("count passengers: %v", err)
	}
	if n != 2 {
		t.Fatalf("passenger count after full rejection: got %d, want 2", n)
	}
}

func TestBookTripReusesTripByCode(t *testing.T) {
	st := newTestStore(t)
	routeID := seedRoute(t, st, 6)
	svc := BookingService{Store: st}
	ctx := context.Background()
	code := "TRP-20250101-BBBB"

	first, err := svc.BookTrip(ctx, bookingFor(routeID, code, "Ada"))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	second, err := svc.BookTrip(ctx, bookingFor(routeID, code, "Bola"))
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	if first.TripID != second.TripID {
		t.Fatalf("same code created two trips: %d and %d", first.TripID, second.TripID)
	}

	trips := repositories.TripRepository{R: st}
	list, err := trips.List(ctx)
	if err != nil {
		t.Fatalf("list trips: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("trip rows: got %d, want 1", len(list))
	}
	if list[0].PassengerCount != 2 {
		t.Fatalf("passenger rows: got %d, want 2", list[0].PassengerCount)
	}
}

func TestBookTripRefreshesDriverByPhone(t *testing.T) {
	st := newTestStore(t)
	routeID := seedRoute(t, st, 6)
	svc := BookingService{Store: st}
	ctx := context.Background()

	in := bookingFor(routeID, "TRP-20250101-CCCC", "Ada")
	first, err := svc.BookTrip(ctx, in)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}

	in.Code = "TRP-20250102-DDDD"
	in.DriverName = "Emeka O. Obi"
	in.Plate = "LAG-999-ZZ"
	in.PassengerName = "Bola"
	second, err := svc.BookTrip(ctx, in)
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	if first.DriverID != second.DriverID {
		t.Fatalf("driver duplicated across trips: %d and %d", first.DriverID, second.DriverID)
	}

	drivers := repositories.DriverRepository{R: st}
	d, found, err := drivers.GetByPhone(ctx, "08035550001")
	if err != nil || !found {
		t.Fatalf("driver lookup: found=%v err=%v", found, err)
	}
	if d.Name != "Emeka O. Obi" || d.Plate != "LAG-999-ZZ" {
		t.Fatalf("driver not refreshed in place: name=%q plate=%q", d.Name, d.Plate)
	}
}

// A booking arriving while another caller's transaction is open waits for
// it and then succeeds; it is never bounced as a conflict.
func TestBookTripWaitsForOpenTransaction(t *testing.T) {
	st := newTestStore(t)
	routeID := seedRoute(t, st, 6)
	svc := BookingService{Store: st}
	ctx := context.Background()

	started := make(chan struct{})
	hold := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- st.WithTx(ctx, func(ctx context.Context, tx *store.Tx) error {
			close(started)
			<-hold
			_, err := tx.Exec(ctx, "INSERT INTO companies (name) VALUES (?)", "Holding Lines")
			return err
		})
	}()
	<-started

	var out BookingOutcome
	var bookErr error
	bookDone := make(chan struct{})
	go func() {
		out, bookErr = svc.BookTrip(ctx, bookingFor(routeID, "TRP-20250101-GGGG", "Ada"))
		close(bookDone)
	}()

	select {
	case <-bookDone:
		t.Fatalf("booking finished while another transaction was open: %+v err=%v", out, bookErr)
	case <-time.After(20 * time.Millisecond):
	}

	close(hold)
	if err := <-txDone; err != nil {
		t.Fatalf("held transaction: %v", err)
	}
	<-bookDone
	if bookErr != nil {
		t.Fatalf("concurrent booking rejected: %v", bookErr)
	}
	if !out.Success || out.SeatsLeft != 5 {
		t.Fatalf("concurrent booking outcome: success=%v seatsLeft=%d", out.Success, out.SeatsLeft)
	}
}

func TestBookTripValidatesInput(t *testing.T) {
	st := newTestStore(t)
	routeID := seedRoute(t, st, 6)
	svc := BookingService{Store: st}
	ctx := context.Background()

	in := bookingFor(routeID, "TRP-20250101-EEEE", "")
	if _, err := svc.BookTrip(ctx, in); !domain.IsValidation(err) {
		t.Fatalf("empty passenger name: want ValidationError, got %v", err)
	}

	in = bookingFor(99999, "TRP-20250101-FFFF", "Ada")
	if _, err := svc.BookTrip(ctx, in); !domain.IsNotFound(err) {
		t.Fatalf("unknown route: want NotFoundError, got %v", err)
	}
}
