package domain

import "time"

// VehicleType represents the vehicle class being serviced.
type VehicleType string

const (
	VehicleCar      VehicleType = "Car"
	VehicleSUV      VehicleType = "SUV"
	VehicleTruckVan VehicleType = "Truck / Van"
)

// LocationData is a customer-picked position with a display address.
type LocationData struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Coordinate is a bare lat/lng pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PricingInputs holds the user-editable inputs an estimate is derived from.
type PricingInputs struct {
	Location              *LocationData `json:"location"`
	ServiceType           string        `json:"service_type"`
	VehicleType           VehicleType   `json:"vehicle_type"`
	PromoCode             string        `json:"promo_code"`
	ApplyWeatherSurcharge bool          `json:"apply_weather_surcharge"`
}

// LabelKind distinguishes translation keys from literal display text.
type LabelKind string

const (
	LabelKindKey     LabelKind = "key"
	LabelKindLiteral LabelKind = "literal"
)

// Label is a breakdown line label. The kind is decided when the line is
// built; consumers must not infer it from the string shape.
type Label struct {
	Kind  LabelKind `json:"kind"`
	Value string    `json:"value"`
}

// KeyLabel builds a label from a translation key.
func KeyLabel(key string) Label {
	return Label{Kind: LabelKindKey, Value: key}
}

// LiteralLabel builds a label from literal display text.
func LiteralLabel(text string) Label {
	return Label{Kind: LabelKindLiteral, Value: text}
}

// EstimateLineItem is one line of an estimate breakdown. Discounts carry
// negative amounts.
type EstimateLineItem struct {
	Label  Label   `json:"label"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

// PricingEstimate is the priced, itemized result of one calculation.
// Breakdown order is computation order and is meaningful for display.
type PricingEstimate struct {
	TotalMin    int                `json:"total_min"`
	TotalMax    int                `json:"total_max"`
	EtaMin      int                `json:"eta_min"`
	EtaMax      int                `json:"eta_max"`
	Breakdown   []EstimateLineItem `json:"breakdown"`
	LockedUntil *time.Time         `json:"locked_until,omitempty"`
}

// LockedAt reports whether the estimate holds a price lock that is still
// in force at the given instant.
func (e *PricingEstimate) LockedAt(now time.Time) bool {
	return e != nil && e.LockedUntil != nil && now.Before(*e.LockedUntil)
}

// Clone returns a deep copy so a locked estimate cannot be mutated through
// a shared breakdown slice.
func (e *PricingEstimate) Clone() *PricingEstimate {
	if e == nil {
		return nil
	}
	out := *e
	out.Breakdown = make([]EstimateLineItem, len(e.Breakdown))
	copy(out.Breakdown, e.Breakdown)
	if e.LockedUntil != nil {
		t := *e.LockedUntil
		out.LockedUntil = &t
	}
	return &out
}
