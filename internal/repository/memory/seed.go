package memory

import (
	"context"

	"github.com/aqabadeal-png/canroad/internal/domain"
)

// Seed fixtures. In a real deployment these would come from an ops-managed
// backend; the product intentionally ships with a static roster.

// SeedUsers returns the seeded back-office and mechanic accounts.
func SeedUsers() []*domain.User {
	return []*domain.User{
		{
			ID:       "admin-01",
			Role:     domain.RoleAdmin,
			Name:     "Admin User",
			Email:    "admin@canroad.example.com",
			Phone:    "+1-555-ADMIN-01",
			IsActive: true,
			Password: "password123",
		},
		{
			ID:       "mech-01",
			Role:     domain.RoleMechanic,
			Name:     "Mike R.",
			Email:    "mike@canroad.example.com",
			Phone:    "+1-555-123-4567",
			IsActive: true,
			Password: "password123",
		},
		{
			ID:       "mech-02",
			Role:     domain.RoleMechanic,
			Name:     "Sarah Chen",
			Email:    "sarah@canroad.example.com",
			Phone:    "+1-555-234-5678",
			IsActive: true,
			Password: "password123",
		},
		{
			ID:       "mech-03",
			Role:     domain.RoleMechanic,
			Name:     "Leo Martin",
			Email:    "leo@canroad.example.com",
			Phone:    "+1-555-345-6789",
			IsActive: false,
			Password: "password123",
		},
		{
			ID:       "mech-04",
			Role:     domain.RoleMechanic,
			Name:     "Dana Kowalski",
			Email:    "dana@canroad.example.com",
			Phone:    "+1-555-456-7890",
			IsActive: true,
			Password: "password123",
		},
		{
			ID:       "acc-01",
			Role:     domain.RoleAccounting,
			Name:     "Finance Dept",
			Email:    "accounting@canroad.example.com",
			Phone:    "+1-555-FIN-ANCE",
			IsActive: true,
			Password: "password123",
		},
	}
}

// SeedServices returns the initial service catalog.
func SeedServices() []*domain.Service {
	return []*domain.Service{
		{
			ID:          domain.ServiceGeneralMechanics,
			Title:       "General Mechanics",
			Description: "On-the-spot diagnostics and repairs for common engine and electrical issues.",
			Icon:        "EmergencyIcon",
			BasePrice:   80,
		},
		{
			ID:          domain.ServiceTireChange,
			Title:       "Tire Change & Repair",
			Description: "Flat tire? We can swap it with your spare or perform a plug repair right away.",
			Icon:        "TireIcon",
			BasePrice:   65,
		},
		{
			ID:          domain.ServiceBatteryBoost,
			Title:       "Battery Boost",
			Description: "Dead battery? We provide a quick jump-start to get you back on the road.",
			Icon:        "DiagnosticsIcon",
			BasePrice:   50,
		},
		{
			ID:          domain.ServiceOilChange,
			Title:       "Oil & Filter Change",
			Description: "Mobile oil change service using premium synthetic oils and quality filters.",
			Icon:        "OilIcon",
			BasePrice:   95,
		},
	}
}

// MechanicBase is a mechanic's home position, used to seed the location
// roster before any live updates arrive.
type MechanicBase struct {
	MechanicID string
	Lat        float64
	Lng        float64
}

// SeedMechanicBases returns the seeded mechanic home positions.
func SeedMechanicBases() []MechanicBase {
	return []MechanicBase{
		{MechanicID: "mech-01", Lat: 43.4643, Lng: -80.5204}, // Waterloo
		{MechanicID: "mech-02", Lat: 43.6532, Lng: -79.3832}, // Toronto
		{MechanicID: "mech-03", Lat: 45.4215, Lng: -75.6972}, // Ottawa
		{MechanicID: "mech-04", Lat: 43.2557, Lng: -79.8711}, // Hamilton
	}
}

// SeedRepositories loads the fixtures into freshly created repositories.
func SeedRepositories(ctx context.Context, users *UserRepository, services *ServiceRepository) error {
	for _, u := range SeedUsers() {
		if err := users.Create(ctx, u); err != nil {
			return err
		}
	}
	for _, s := range SeedServices() {
		if err := services.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
