package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/redis"
)

// Breakdown line labels, resolved to display text by the consuming client.
const (
	labelBase       = "pricing.breakdown.base"
	labelDistance   = "pricing.breakdown.distance"
	labelVehicle    = "pricing.breakdown.vehicle"
	labelAfterHours = "pricing.breakdown.afterHours"
	labelSurge      = "pricing.breakdown.surge"
	labelWeather    = "pricing.breakdown.weather"
	labelPromo      = "pricing.breakdown.promo"
)

// OpenJobCounter supplies the open-job demand snapshot for surge pricing.
type OpenJobCounter interface {
	CountActive(ctx context.Context) (int, error)
}

// EstimateService computes fare estimates. The calculation itself is a
// pure function of the inputs, the catalog, the mechanic roster, the
// open-job count and the clock; the roster and demand snapshot are read
// through the injected collaborators.
type EstimateService struct {
	cfg       FareConfig
	locations redis.LocationStoreInterface
	jobs      OpenJobCounter
	now       func() time.Time
}

// NewEstimateService creates a new EstimateService. A nil clock defaults
// to time.Now.
func NewEstimateService(
	cfg FareConfig,
	locations redis.LocationStoreInterface,
	jobs OpenJobCounter,
	clock func() time.Time,
) *EstimateService {
	if clock == nil {
		clock = time.Now
	}
	return &EstimateService{
		cfg:       cfg,
		locations: locations,
		jobs:      jobs,
		now:       clock,
	}
}

// Calculate produces a priced, itemized estimate for the given inputs
// against the supplied catalog. It returns nil when no location is set:
// callers must treat "no estimate" as a valid state. Unknown service ids
// price as a zero-base custom service and unknown promo codes are
// ignored; neither is an error.
func (s *EstimateService) Calculate(ctx context.Context, inputs domain.PricingInputs, services []*domain.Service) *domain.PricingEstimate {
	if inputs.Location == nil {
		return nil
	}

	var breakdown []domain.EstimateLineItem
	subtotal := 0.0

	// 1. Base price.
	basePrice := 0.0
	for _, svc := range services {
		if svc.ID == inputs.ServiceType {
			basePrice = svc.BasePrice
			break
		}
	}
	subtotal += basePrice
	breakdown = append(breakdown, domain.EstimateLineItem{
		Label:  domain.KeyLabel(labelBase),
		Amount: basePrice,
	})

	// 2. Distance fee.
	roster := s.roster(ctx)
	if len(roster) == 0 {
		logrus.Error("estimate: mechanic roster is empty, distance fee and ETA unavailable")
	}
	distanceKm, haveDistance := NearestMechanicDistanceKm(
		domain.Coordinate{Lat: inputs.Location.Lat, Lng: inputs.Location.Lng},
		roster,
	)
	if haveDistance {
		chargeable := math.Max(0, distanceKm-s.cfg.Distance.FreeTierKm)
		fee := math.Min(chargeable*s.cfg.Distance.PerKmRate, s.cfg.Distance.Cap)
		if fee > 0 {
			subtotal += fee
			breakdown = append(breakdown, domain.EstimateLineItem{
				Label:  domain.KeyLabel(labelDistance),
				Amount: fee,
				Note:   fmt.Sprintf("%.1f km", distanceKm),
			})
		}
	}

	// 3. Vehicle surcharge.
	if surcharge := s.cfg.VehicleSurcharges[inputs.VehicleType]; surcharge > 0 {
		subtotal += surcharge
		breakdown = append(breakdown, domain.EstimateLineItem{
			Label:  domain.KeyLabel(labelVehicle),
			Amount: surcharge,
			Note:   string(inputs.VehicleType),
		})
	}

	// 4. After-hours surcharge. The window wraps midnight and includes
	// whole weekends; the line is appended whenever the window holds,
	// even when the fee is tiny.
	now := s.now()
	if s.isAfterHours(now) {
		fee := subtotal * s.cfg.AfterHours.SurchargePercent
		subtotal += fee
		breakdown = append(breakdown, domain.EstimateLineItem{
			Label:  domain.KeyLabel(labelAfterHours),
			Amount: fee,
		})
	}

	// 5. Surge surcharge. Supply over demand; the cap is pinned to the
	// base price so surge impact is bounded per service type, not by the
	// accumulated subtotal.
	if supply := len(roster); supply > 0 {
		openJobs := s.openJobs(ctx)
		surgeRatio := float64(supply) / float64(openJobs+1)

		multiplier := 0.0
		switch {
		case surgeRatio < s.cfg.Surge.VeryHighDemandThreshold:
			multiplier = s.cfg.Surge.VeryHighDemandMultiplier
		case surgeRatio < s.cfg.Surge.HighDemandThreshold:
			multiplier = s.cfg.Surge.HighDemandMultiplier
		}

		if multiplier > 0 {
			fee := math.Min(subtotal*multiplier, basePrice*s.cfg.Surge.MaxSurchargePercent)
			subtotal += fee
			breakdown = append(breakdown, domain.EstimateLineItem{
				Label:  domain.KeyLabel(labelSurge),
				Amount: fee,
				Note:   fmt.Sprintf("+%d%%", int(math.Round(multiplier*100))),
			})
		}
	}

	// 6. Weather surcharge.
	if inputs.ApplyWeatherSurcharge {
		fee := subtotal * s.cfg.Weather.SurchargePercent
		subtotal += fee
		breakdown = append(breakdown, domain.EstimateLineItem{
			Label:  domain.KeyLabel(labelWeather),
			Amount: fee,
		})
	}

	// 7. Promo discount. Case-insensitive; unknown codes are simply
	// ignored.
	code := strings.ToUpper(inputs.PromoCode)
	if fraction := s.cfg.PromoCodes[code]; fraction != 0 {
		discount := -math.Abs(subtotal * fraction)
		subtotal += discount
		breakdown = append(breakdown, domain.EstimateLineItem{
			Label:  domain.KeyLabel(labelPromo),
			Amount: discount,
			Note:   code,
		})
	}

	total := math.Round(subtotal)
	spread := math.Round(total * s.cfg.EstimateRangePercent)

	estimate := &domain.PricingEstimate{
		TotalMin:  int(math.Max(0, total-spread)),
		TotalMax:  int(total + spread),
		Breakdown: breakdown,
	}

	if haveDistance {
		estimate.EtaMin = int(math.Round(distanceKm / s.cfg.Eta.UrbanSpeedKphMax * 60))
		estimate.EtaMax = int(math.Round(distanceKm / s.cfg.Eta.UrbanSpeedKphMin * 60))
	}

	return estimate
}

// isAfterHours reports whether the instant falls in the surcharge window:
// at or past the start hour, before the end hour, or any weekend day.
func (s *EstimateService) isAfterHours(now time.Time) bool {
	hour := now.Hour()
	day := now.Weekday()
	return hour >= s.cfg.AfterHours.StartHour ||
		hour < s.cfg.AfterHours.EndHour ||
		day == time.Saturday || day == time.Sunday
}

// roster reads the mechanic positions, failing open to an empty roster.
func (s *EstimateService) roster(ctx context.Context) []domain.Coordinate {
	positions, err := s.locations.AllLocations(ctx)
	if err != nil {
		logrus.WithError(err).Warn("estimate: failed to read mechanic roster")
		return nil
	}
	roster := make([]domain.Coordinate, 0, len(positions))
	for _, p := range positions {
		roster = append(roster, domain.Coordinate{Lat: p.Lat, Lng: p.Lng})
	}
	return roster
}

// openJobs reads the demand snapshot, failing open to zero (no surge).
func (s *EstimateService) openJobs(ctx context.Context) int {
	if s.jobs == nil {
		return 0
	}
	count, err := s.jobs.CountActive(ctx)
	if err != nil {
		logrus.WithError(err).Warn("estimate: failed to count open jobs")
		return 0
	}
	return count
}
