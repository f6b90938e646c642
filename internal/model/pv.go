package model

import (
	"errors"
	"math"
)

// PVParams defines the physical and economic parameters of the PV plant.
// Units:
// - PowerMWp: MW peak
// - BaselineMWh: measured production of the first operational year
// - DegradationRate: fraction per year, compounding
// - CapexUSD: one-time, applied as the initial negative cash position
// - OpexUSD: $/year
// - SalePriceUSDPerKWh: grid sale price
type PVParams struct {
	PowerMWp           float64
	BaselineMWh        float64
	DegradationRate    float64
	CapexUSD           float64
	OpexUSD            float64
	SalePriceUSDPerKWh float64
}

func (p PVParams) Validate() error {
	if p.BaselineMWh <= 0 {
		return errors.New("BaselineMWh must be > 0")
	}
	if p.DegradationRate < 0 || p.DegradationRate >= 1 {
		return errors.New("DegradationRate must be in [0, 1)")
	}
	if p.CapexUSD < 0 {
		return errors.New("CapexUSD must be >= 0")
	}
	if p.OpexUSD < 0 {
		return errors.New("OpexUSD must be >= 0")
	}
	if p.SalePriceUSDPerKWh <= 0 {
		return errors.New("SalePriceUSDPerKWh must be > 0")
	}
	return nil
}

// Production returns the plant output for a year in MWh:
//
//	E_n = baseline * (1 - degradation)^(n - startYear)
//
// Degradation compounds once per whole year elapsed since the baseline year.
// No floor is applied; output approaches but never reaches zero.
func (p PVParams) Production(year, startYear int) float64 {
	elapsed := float64(year - startYear)
	return p.BaselineMWh * math.Pow(1-p.DegradationRate, elapsed)
}

// SaleRevenue converts plant output into grid-sale revenue.
// The sale price is quoted per kWh, production per MWh.
func (p PVParams) SaleRevenue(energyMWh float64) float64 {
	return energyMWh * 1000 * p.SalePriceUSDPerKWh
}
