package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pv-mining-sim/internal/model"
)

// Config is the on-disk configuration shape (YAML). Zero fields fall back to
// the study defaults, so a config file only needs the knobs it changes.
type Config struct {
	// Optional: load plant parameters from a separate YAML (e.g.
	// examples/plants/*.yaml). Inline Plant fields override the file.
	PlantFile string `yaml:"plant_file"`

	Plant       PlantConfig       `yaml:"plant"`
	Market      MarketConfig      `yaml:"market"`
	Mining      MiningConfig      `yaml:"mining"`
	Environment EnvironmentConfig `yaml:"environment"`
	Horizon     HorizonConfig     `yaml:"horizon"`
	Data        DataConfig        `yaml:"data"`
}

type PlantConfig struct {
	Name            string  `yaml:"name"`
	PowerMWp        float64 `yaml:"power_mwp"`
	BaselineMWh     float64 `yaml:"baseline_mwh"`
	DegradationRate float64 `yaml:"degradation_rate"`
	CapexUSD        float64 `yaml:"capex_usd"`
	OpexUSD         float64 `yaml:"opex_usd"`
}

type MarketConfig struct {
	SalePriceUSDPerKWh float64 `yaml:"sale_price_usd_kwh"`
}

type MiningConfig struct {
	FarmPowerMW       float64 `yaml:"farm_power_mw"`
	PUE               float64 `yaml:"pue"`
	EfficiencyJPerTH  float64 `yaml:"efficiency_j_per_th"`
	MaxConsumptionMWh float64 `yaml:"max_consumption_mwh"`

	// Rewards maps halving-epoch start years to per-block BTC rewards.
	// Empty means the protocol defaults.
	Rewards map[int]float64 `yaml:"rewards"`
}

type EnvironmentConfig struct {
	CO2AvoidedTonsPerYear float64 `yaml:"co2_avoided_tons_year"`
}

type HorizonConfig struct {
	StartYear int `yaml:"start_year"`
	EndYear   int `yaml:"end_year"`
}

type DataConfig struct {
	PVFile         string `yaml:"pv_file"`
	BTCFile        string `yaml:"btc_file"`
	DifficultyFile string `yaml:"difficulty_file"`
	HashrateFile   string `yaml:"hashrate_file"`
}

// Default returns the study parameters (50.91 MWp plant, 9.3 MW farm,
// 2020-2045 horizon).
func Default() Config {
	return Config{
		Plant: PlantConfig{
			Name:            "reference-plant",
			PowerMWp:        50.91,
			BaselineMWh:     80890,
			DegradationRate: 0.0043,
			CapexUSD:        42_000_000,
			OpexUSD:         902_263,
		},
		Market: MarketConfig{
			SalePriceUSDPerKWh: 0.094,
		},
		Mining: MiningConfig{
			FarmPowerMW:       9.3,
			PUE:               1.1,
			EfficiencyJPerTH:  39.5,
			MaxConsumptionMWh: 80_766,
		},
		Environment: EnvironmentConfig{
			CO2AvoidedTonsPerYear: 50_000,
		},
		Horizon: HorizonConfig{
			StartYear: 2020,
			EndYear:   2045,
		},
		Data: DataConfig{
			PVFile:         "data/pv_production.csv",
			BTCFile:        "data/btc-usd.csv",
			DifficultyFile: "data/difficulty.json",
			HashrateFile:   "data/hash-rate.json",
		},
	}
}

// Load reads, merges and validates a config file. An empty path yields the
// validated defaults.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return &c, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var overlay Config
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return nil, err
	}

	// If plant_file is set, load it and apply any explicit inline overrides.
	if overlay.PlantFile != "" {
		plantPath := overlay.PlantFile
		if !filepath.IsAbs(plantPath) {
			// Prefer paths relative to the config file directory, falling
			// back to the cwd-relative path if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), plantPath)
			if _, err := os.Stat(cand); err == nil {
				plantPath = cand
			}
		}
		loaded, err := loadPlantFile(plantPath)
		if err != nil {
			return nil, err
		}
		overlay.Plant = MergePlant(loaded, overlay.Plant)
	}

	c.PlantFile = overlay.PlantFile
	c.Plant = MergePlant(c.Plant, overlay.Plant)
	c.Market = mergeMarket(c.Market, overlay.Market)
	c.Mining = mergeMining(c.Mining, overlay.Mining)
	c.Environment = mergeEnvironment(c.Environment, overlay.Environment)
	c.Horizon = mergeHorizon(c.Horizon, overlay.Horizon)
	c.Data = mergeData(c.Data, overlay.Data)
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.ToHorizon().Validate(); err != nil {
		return fmt.Errorf("horizon config invalid: %w", err)
	}
	if err := c.ToPVParams().Validate(); err != nil {
		return fmt.Errorf("plant config invalid: %w", err)
	}
	if err := c.ToMiningParams().Validate(); err != nil {
		return fmt.Errorf("mining config invalid: %w", err)
	}
	if c.Environment.CO2AvoidedTonsPerYear < 0 {
		return errors.New("environment config invalid: co2_avoided_tons_year must be >= 0")
	}
	return nil
}

func (c *Config) ToPVParams() model.PVParams {
	return model.PVParams{
		PowerMWp:           c.Plant.PowerMWp,
		BaselineMWh:        c.Plant.BaselineMWh,
		DegradationRate:    c.Plant.DegradationRate,
		CapexUSD:           c.Plant.CapexUSD,
		OpexUSD:            c.Plant.OpexUSD,
		SalePriceUSDPerKWh: c.Market.SalePriceUSDPerKWh,
	}
}

func (c *Config) ToMiningParams() model.MiningParams {
	return model.MiningParams{
		FarmPowerMW:       c.Mining.FarmPowerMW,
		PUE:               c.Mining.PUE,
		EfficiencyJPerTH:  c.Mining.EfficiencyJPerTH,
		MaxConsumptionMWh: c.Mining.MaxConsumptionMWh,
	}
}

func (c *Config) ToHorizon() model.Horizon {
	return model.Horizon{
		StartYear: c.Horizon.StartYear,
		EndYear:   c.Horizon.EndYear,
	}
}

// RewardSchedule returns the configured halving table, or the protocol
// defaults when none is given.
func (c *Config) RewardSchedule() model.RewardSchedule {
	if len(c.Mining.Rewards) == 0 {
		return model.DefaultRewardSchedule()
	}
	return model.RewardSchedule(c.Mining.Rewards)
}

type plantFileWrapper struct {
	Plant PlantConfig `yaml:"plant"`
}

func loadPlantFile(path string) (PlantConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PlantConfig{}, err
	}
	var w plantFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return PlantConfig{}, err
	}
	return w.Plant, nil
}

// MergePlant overlays non-zero fields from override onto base. Zero means
// "unset" here: an explicit zero (e.g. degradation_rate: 0) cannot be
// expressed as an override and keeps the base value.
func MergePlant(base, override PlantConfig) PlantConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.PowerMWp != 0 {
		out.PowerMWp = override.PowerMWp
	}
	if override.BaselineMWh != 0 {
		out.BaselineMWh = override.BaselineMWh
	}
	if override.DegradationRate != 0 {
		out.DegradationRate = override.DegradationRate
	}
	if override.CapexUSD != 0 {
		out.CapexUSD = override.CapexUSD
	}
	if override.OpexUSD != 0 {
		out.OpexUSD = override.OpexUSD
	}
	return out
}

func mergeMarket(base, override MarketConfig) MarketConfig {
	if override.SalePriceUSDPerKWh != 0 {
		base.SalePriceUSDPerKWh = override.SalePriceUSDPerKWh
	}
	return base
}

func mergeMining(base, override MiningConfig) MiningConfig {
	out := base
	if override.FarmPowerMW != 0 {
		out.FarmPowerMW = override.FarmPowerMW
	}
	if override.PUE != 0 {
		out.PUE = override.PUE
	}
	if override.EfficiencyJPerTH != 0 {
		out.EfficiencyJPerTH = override.EfficiencyJPerTH
	}
	if override.MaxConsumptionMWh != 0 {
		out.MaxConsumptionMWh = override.MaxConsumptionMWh
	}
	if len(override.Rewards) != 0 {
		out.Rewards = override.Rewards
	}
	return out
}

func mergeEnvironment(base, override EnvironmentConfig) EnvironmentConfig {
	if override.CO2AvoidedTonsPerYear != 0 {
		base.CO2AvoidedTonsPerYear = override.CO2AvoidedTonsPerYear
	}
	return base
}

func mergeHorizon(base, override HorizonConfig) HorizonConfig {
	out := base
	if override.StartYear != 0 {
		out.StartYear = override.StartYear
	}
	if override.EndYear != 0 {
		out.EndYear = override.EndYear
	}
	return out
}

func mergeData(base, override DataConfig) DataConfig {
	out := base
	if override.PVFile != "" {
		out.PVFile = override.PVFile
	}
	if override.BTCFile != "" {
		out.BTCFile = override.BTCFile
	}
	if override.DifficultyFile != "" {
		out.DifficultyFile = override.DifficultyFile
	}
	if override.HashrateFile != "" {
		out.HashrateFile = override.HashrateFile
	}
	return out
}
