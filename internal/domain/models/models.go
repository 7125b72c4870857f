package models

// Vehicle is a vehicle class with a fixed seat capacity, not an
// individual car; individual cars are identified by plate on the trip.
type Vehicle struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
}

// Route is one direction between two places served by a vehicle class.
// Routes are kept in symmetric forward/reverse pairs with equal fares.
type Route struct {
	ID          int64  `json:"id"`
	FromPlaceID int64  `json:"fromPlaceId"`
	ToPlaceID   int64  `json:"toPlaceId"`
	VehicleID   int64  `json:"vehicleId"`
	FromPlace   string `json:"fromPlace,omitempty"`
	ToPlace     string `json:"toPlace,omitempty"`
	FareAC      *int64 `json:"fareAc"`
	FareNonAC   *int64 `json:"fareNonAc"`
}

// Driver is identified by phone; name and plate are refreshed on every
// booking that references the phone.
type Driver struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Plate string `json:"plate"`
}

// Trip is a single scheduled run of a route. Created once per booking
// code; later bookings with the same code attach to the same trip.
type Trip struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	RouteID   int64  `json:"routeId"`
	DriverID  int64  `json:"driverId"`
	Plate     string `json:"plate"`
	HasAC     bool   `json:"hasAc"`
	CreatedAt string `json:"createdAt"`
}

type Passenger struct {
	ID     int64  `json:"id"`
	TripID int64  `json:"tripId"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`
}

type Place struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	StateID int64  `json:"stateId"`
}

type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
