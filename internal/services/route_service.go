package services

import (
	"context"
	"fmt"

	"tripbook/internal/domain"
	"tripbook/internal/domain/models"
	"tripbook/internal/repositories"
	"tripbook/internal/store"
	"tripbook/internal/utils"
)

// RouteService keeps routes in symmetric pairs: saving one direction
// writes the reverse direction with identical fares in the same
// transaction.
type RouteService struct {
	Store     *store.Store
	RequestID string
}

type RouteInput struct {
	FromPlaceID int64  `json:"fromPlaceId"`
	ToPlaceID   int64  `json:"toPlaceId"`
	VehicleID   int64  `json:"vehicleId"`
	FareAC      *int64 `json:"fareAc"`
	FareNonAC   *int64 `json:"fareNonAc"`
}

func (s RouteService) SaveRoute(ctx context.Context, in RouteInput) (forward, reverse models.Route, err error) {
	if in.FromPlaceID <= 0 || in.ToPlaceID <= 0 {
		err = domain.ValidationError{Field: "places", Msg: "departure and destination are required"}
		return
	}
	if in.FromPlaceID == in.ToPlaceID {
		err = domain.ValidationError{Field: "places", Msg: "departure and destination must differ"}
		return
	}
	if in.VehicleID <= 0 {
		err = domain.ValidationError{Field: "vehicleId", Msg: "vehicle is required"}
		return
	}

	utils.LogEvent(s.RequestID, "routes", "save_route",
		fmt.Sprintf("from=%d to=%d vehicle=%d", in.FromPlaceID, in.ToPlaceID, in.VehicleID))

	err = s.Store.WithTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		routes := repositories.RouteRepository{R: tx}
		if err := routes.Upsert(ctx, in.FromPlaceID, in.ToPlaceID, in.VehicleID, in.FareAC, in.FareNonAC); err != nil {
			return err
		}
		return routes.Upsert(ctx, in.ToPlaceID, in.FromPlaceID, in.VehicleID, in.FareAC, in.FareNonAC)
	})
	if err != nil {
		return
	}

	routes := repositories.RouteRepository{R: s.Store}
	forward, _, err = routes.GetByTriple(ctx, in.FromPlaceID, in.ToPlaceID, in.VehicleID)
	if err != nil {
		return
	}
	reverse, _, err = routes.GetByTriple(ctx, in.ToPlaceID, in.FromPlaceID, in.VehicleID)
	return
}
