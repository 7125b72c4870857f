package services

import (
	"context"
	"testing"

	"tripbook/internal/domain"
	"tripbook/internal/repositories"
)

func int64p(v int64) *int64 { return &v }

func TestSaveRouteWritesBothDirections(t *testing.T) {
	st := newTestStore(t)
	svc := RouteService{Store: st}
	ctx := context.Background()

	in := RouteInput{
		FromPlaceID: 1,
		ToPlaceID:   2,
		VehicleID:   1,
		FareAC:      int64p(7500),
		FareNonAC:   int64p(6000),
	}
	forward, reverse, err := svc.SaveRoute(ctx, in)
	if err != nil {
		t.Fatalf("save route: %v", err)
	}

	if forward.FromPlaceID != 1 || forward.ToPlaceID != 2 {
		t.Fatalf("forward direction wrong: %d -> %d", forward.FromPlaceID, forward.ToPlaceID)
	}
	if reverse.FromPlaceID != 2 || reverse.ToPlaceID != 1 {
		t.Fatalf("reverse direction wrong: %d -> %d", reverse.FromPlaceID, reverse.ToPlaceID)
	}
	if reverse.FareAC == nil || *reverse.FareAC != 7500 {
		t.Fatalf("reverse fare not mirrored: %v", reverse.FareAC)
	}
	if reverse.FareNonAC == nil || *reverse.FareNonAC != 6000 {
		t.Fatalf("reverse non-AC fare not mirrored: %v", reverse.FareNonAC)
	}
}

func TestSaveRouteUpdatesFaresInBothDirections(t *testing.T) {
	st := newTestStore(t)
	svc := RouteService{Store: st}
	ctx := context.Background()

	in := RouteInput{FromPlaceID: 1, ToPlaceID: 3, VehicleID: 2, FareAC: int64p(10000)}
	if _, _, err := svc.SaveRoute(ctx, in); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	in.FareAC = int64p(12500)
	forward, reverse, err := svc.SaveRoute(ctx, in)
	if err != nil {
		t.Fatalf("fare update: %v", err)
	}
	if *forward.FareAC != 12500 || *reverse.FareAC != 12500 {
		t.Fatalf("fare update not symmetric: forward=%v reverse=%v", *forward.FareAC, *reverse.FareAC)
	}

	// Update replaced rows, it did not add new ones.
	routes := repositories.RouteRepository{R: st}
	list, err := routes.List(ctx)
	if err != nil {
		t.Fatalf("list routes: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("route rows: got %d, want the symmetric pair only", len(list))
	}
}

func TestSaveRouteRejectsSelfLoop(t *testing.T) {
	st := newTestStore(t)
	svc := RouteService{Store: st}

	_, _, err := svc.SaveRoute(context.Background(), RouteInput{FromPlaceID: 1, ToPlaceID: 1, VehicleID: 1})
	if !domain.IsValidation(err) {
		t.Fatalf("same place both ends: want ValidationError, got %v", err)
	}
}
