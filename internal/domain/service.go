package domain

// Service is a row in the service catalog. IDs are usually one of the
// well-known values below but admins may add custom ones; pricing treats
// unknown ids as a zero-base-price custom service.
type Service struct {
	ID          string
	Title       string
	Description string
	Icon        string
	BasePrice   float64
}

// Well-known service ids seeded at startup.
const (
	ServiceGeneralMechanics = "generalMechanics"
	ServiceTireChange       = "tireChange"
	ServiceBatteryBoost     = "batteryBoost"
	ServiceOilChange        = "oilChange"
)
