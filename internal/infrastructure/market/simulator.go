package market

import (
	"math"
	"math/rand"
	"time"

	"github.com/agrischeme/backend/internal/core/domain"
)

// Simulator produces mandi price reports without an external feed. Prices
// derive from base MSP rates with a day-seeded variation of up to 5% and an
// intra-day sine swing of up to 2%, so the same day and hour always yield
// the same report.
type Simulator struct {
	now func() time.Time
}

func NewSimulator() *Simulator {
	return &Simulator{now: time.Now}
}

func (s *Simulator) Prices(state, crop string) domain.MarketReport {
	crops := cropsFor(state, crop)
	mandis, ok := stateMandis[state]
	if !ok {
		mandis = stateMandis["All"]
	}

	now := s.now()
	prices := make([]domain.CropPrice, 0, len(crops))
	for _, name := range crops {
		base, ok := basePrices[name]
		if !ok {
			continue
		}

		current := simulatePrice(base, now)
		change := math.Round(current - base)
		prices = append(prices, domain.CropPrice{
			Crop:      name,
			Price:     current,
			Unit:      "₹/quintal",
			Change:    change,
			ChangePct: math.Round(change/base*1000) / 10,
			Trend:     trend(base, current),
			Mandi:     mandis[0],
		})
	}

	return domain.MarketReport{
		State:       state,
		Mandis:      mandis,
		LastUpdated: now.Format("2006-01-02 15:04"),
		Prices:      prices,
	}
}

func cropsFor(state, crop string) []string {
	if crop != "" {
		if _, ok := basePrices[crop]; ok {
			return []string{crop}
		}
	}
	if crops, ok := stateCrops[state]; ok {
		return crops
	}
	return defaultCrops
}

func simulatePrice(base float64, now time.Time) float64 {
	daySeed := int64(now.Year()*1000 + now.YearDay())
	rng := rand.New(rand.NewSource(daySeed))
	dailyPct := rng.Float64()*0.10 - 0.05

	hourFactor := math.Sin(float64(now.Hour())*0.3) * 0.02

	return math.Round(base * (1 + dailyPct + hourFactor))
}

func trend(base, current float64) string {
	diffPct := (current - base) / base * 100
	switch {
	case diffPct > 1:
		return "up"
	case diffPct < -1:
		return "down"
	default:
		return "stable"
	}
}
