package service

import (
	"errors"
	"time"

	"github.com/aqabadeal-png/canroad/internal/domain"
)

// DistanceFareConfig controls the per-distance fee.
type DistanceFareConfig struct {
	FreeTierKm float64 // kilometres included in the base price
	PerKmRate  float64 // rate per chargeable kilometre
	Cap        float64 // maximum distance fee
}

// AfterHoursConfig defines the wrap-around after-hours window. The
// surcharge also applies on Saturdays and Sundays.
type AfterHoursConfig struct {
	StartHour        int // window starts at this hour (inclusive)
	EndHour          int // window ends at this hour (exclusive), next day
	SurchargePercent float64
}

// SurgeFareConfig controls demand-based surcharges. The ratio compared
// against the thresholds is available mechanics over open jobs plus one;
// the stricter (very-high) threshold is checked first and wins.
type SurgeFareConfig struct {
	HighDemandThreshold      float64
	HighDemandMultiplier     float64
	VeryHighDemandThreshold  float64
	VeryHighDemandMultiplier float64
	MaxSurchargePercent      float64 // cap as a fraction of the base price
}

// WeatherFareConfig controls the customer-toggled weather surcharge.
type WeatherFareConfig struct {
	SurchargePercent float64
}

// EtaConfig bounds the assumed urban travel speed for ETA computation.
type EtaConfig struct {
	UrbanSpeedKphMin float64
	UrbanSpeedKphMax float64
}

// FareConfig contains the full fare-rule configuration. It is immutable
// for the life of the process.
type FareConfig struct {
	Distance             DistanceFareConfig
	VehicleSurcharges    map[domain.VehicleType]float64
	AfterHours           AfterHoursConfig
	Surge                SurgeFareConfig
	Weather              WeatherFareConfig
	EstimateRangePercent float64 // +/- spread applied to the rounded total
	Eta                  EtaConfig
	PromoCodes           map[string]float64 // uppercase code -> discount fraction
	PriceLockDuration    time.Duration
}

// DefaultFareConfig returns the production fare rules.
func DefaultFareConfig() FareConfig {
	return FareConfig{
		Distance: DistanceFareConfig{
			FreeTierKm: 5,
			PerKmRate:  1.20,
			Cap:        60,
		},
		VehicleSurcharges: map[domain.VehicleType]float64{
			domain.VehicleCar:      0,
			domain.VehicleSUV:      15,
			domain.VehicleTruckVan: 25,
		},
		AfterHours: AfterHoursConfig{
			StartHour:        19, // 7 PM
			EndHour:          7,  // 7 AM
			SurchargePercent: 0.15,
		},
		Surge: SurgeFareConfig{
			HighDemandThreshold:      0.8,
			HighDemandMultiplier:     0.10,
			VeryHighDemandThreshold:  0.5,
			VeryHighDemandMultiplier: 0.20,
			MaxSurchargePercent:      0.30,
		},
		Weather: WeatherFareConfig{
			SurchargePercent: 0.05,
		},
		EstimateRangePercent: 0.08,
		Eta: EtaConfig{
			UrbanSpeedKphMin: 35,
			UrbanSpeedKphMax: 55,
		},
		PromoCodes: map[string]float64{
			"SAVE10": 0.10,
		},
		PriceLockDuration: 15 * time.Minute,
	}
}

// Validate checks the configuration invariants.
func (c FareConfig) Validate() error {
	if c.Distance.FreeTierKm < 0 || c.Distance.PerKmRate < 0 || c.Distance.Cap < 0 {
		return errors.New("fare config: distance values must be non-negative")
	}
	for _, surcharge := range c.VehicleSurcharges {
		if surcharge < 0 {
			return errors.New("fare config: vehicle surcharges must be non-negative")
		}
	}
	if c.AfterHours.SurchargePercent < 0 || c.Weather.SurchargePercent < 0 ||
		c.EstimateRangePercent < 0 || c.Surge.MaxSurchargePercent < 0 ||
		c.Surge.HighDemandMultiplier < 0 || c.Surge.VeryHighDemandMultiplier < 0 {
		return errors.New("fare config: surcharge fractions must be non-negative")
	}
	for _, discount := range c.PromoCodes {
		if discount < 0 {
			return errors.New("fare config: promo discounts must be non-negative")
		}
	}
	if c.Surge.VeryHighDemandThreshold >= c.Surge.HighDemandThreshold {
		return errors.New("fare config: very-high demand threshold must be below high demand threshold")
	}
	if c.Eta.UrbanSpeedKphMin <= 0 || c.Eta.UrbanSpeedKphMax < c.Eta.UrbanSpeedKphMin {
		return errors.New("fare config: urban speed bounds are invalid")
	}
	if c.PriceLockDuration <= 0 {
		return errors.New("fare config: price lock duration must be positive")
	}
	return nil
}
