package app

import (
	"context"
	"fmt"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/repositories"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

/* ------------------------------------------------------------------
   Seed a few demo units (test/demo purposes only)
------------------------------------------------------------------ */

// SeedDemoUnits inserts a small set of vacant units so a fresh install
// has something to look at. Existing units with the same number+name are
// left alone.
func SeedDemoUnits(unitRepo repositories.UnitRepository) error {
	ctx := context.Background()

	demo := []*models.Unit{
		{UnitNumber: "101", Name: "Maple", Description: "Ground floor studio", Price: 8500},
		{UnitNumber: "102", Name: "Maple", Description: "Ground floor, two bedrooms", Price: 12500},
		{UnitNumber: "201", Name: "Narra", Description: "Second floor, corner unit", Price: 10500},
	}

	for _, u := range demo {
		if _, err := unitRepo.Create(ctx, u); err != nil {
			if err == utils.ErrUnitExists {
				utils.Logger.Infof("Demo unit %s/%s already present; skipping.", u.Name, u.UnitNumber)
				continue
			}
			return fmt.Errorf("seed demo unit %s/%s: %w", u.Name, u.UnitNumber, err)
		}
		utils.Logger.Infof("Seeded demo unit %s/%s.", u.Name, u.UnitNumber)
	}
	return nil
}
