// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config file.
package config

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/dmarins/parcelamento/pkg/constants"
	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/quote"
	"github.com/dmarins/parcelamento/pkg/tradein"
	"github.com/dmarins/parcelamento/pkg/validation"
)

// Configuration holds all configuration for the quoting service.
type Configuration struct {
	Stores        []Store
	Products      []Product
	RateTables    []RateTable
	TradeInRanges []TradeInRange
	DamageTypes   []DamageType
	Logging       LoggingConfig `yaml:"logging,omitempty"`
	Server        ServerConfig  `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// ServerConfig holds HTTP server configuration options
type ServerConfig struct {
	Address          string `yaml:"address,omitempty"`
	RedisAddr        string `yaml:"redisAddr,omitempty"` // empty disables the Redis cache
	MaxBodySizeBytes int64  `yaml:"maxBodySizeBytes,omitempty"`
}

// Store is one retail location quotes are issued for.
type Store struct {
	ID   string
	Name string
}

// Product is a sellable item with a per-store price in cents.
type Product struct {
	ID     string
	Name   string
	Prices map[string]int64 // store ID -> price in cents
}

// RateTable is the config-file form of a payment device's fee table. Credit
// rate keys arrive as strings from YAML and are converted on the way into
// the engine.
type RateTable struct {
	ID              string
	Name            string
	StoreIDs        []string
	MaxInstallments int
	CreditRate      map[string]float64
	DebitRate       float64
	AcceptsDebit    bool
	AcceptsCredit   bool
	Active          bool
}

// TradeInRange is the config-file form of a device's trade-in value band at
// one store.
type TradeInRange struct {
	DeviceModel string
	StoreID     string
	MinCents    int64
	MaxCents    int64
}

// DamageType is a named defect and its fixed deduction in cents.
type DamageType struct {
	Name          string
	DiscountCents int64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()

	return &configuration, nil
}

// applyDefaults fills identifiers and server defaults that the file may omit.
func (conf *Configuration) applyDefaults() {
	for i := range conf.RateTables {
		if conf.RateTables[i].ID == "" {
			conf.RateTables[i].ID = uuid.NewString()
		}
	}
	if conf.Server.Address == "" {
		conf.Server.Address = constants.DefaultServerAddress
	}
	if conf.Server.MaxBodySizeBytes <= 0 {
		conf.Server.MaxBodySizeBytes = constants.DefaultMaxBodySizeBytes
	}
}

// Validate checks every rate table, trade-in range, and damage type against
// the engine's structural invariants. The first violation is returned as a
// ConfigurationError.
func (conf *Configuration) Validate() error {
	for _, rt := range conf.RateTables {
		engineTable, err := rt.ToEngine()
		if err != nil {
			return err
		}
		if err := engineTable.Validate(); err != nil {
			return err
		}
	}
	for _, tr := range conf.TradeInRanges {
		engineRange := tr.ToEngine()
		if err := engineRange.Validate(); err != nil {
			return err
		}
	}
	for _, dt := range conf.DamageTypes {
		if dt.DiscountCents < 0 {
			return validation.NewConfigurationError(
				fmt.Sprintf("damage type %q", dt.Name),
				"discount %d cannot be negative", dt.DiscountCents)
		}
	}
	for _, p := range conf.Products {
		for storeID, price := range p.Prices {
			if price < 0 {
				return validation.NewConfigurationError(
					fmt.Sprintf("product %q", p.ID),
					"price %d for store %q cannot be negative", price, storeID)
			}
		}
	}
	return nil
}

// Warnings reports non-fatal configuration findings for startup logging.
func (conf *Configuration) Warnings() []string {
	var warnings []string

	for _, rt := range conf.RateTables {
		if rt.AcceptsCredit && len(rt.CreditRate) == 0 {
			warnings = append(warnings,
				fmt.Sprintf("Rate table '%s' accepts credit but has no credit rates configured; all installments will be fee-free", rt.ID))
		}
		for key := range rt.CreditRate {
			count, err := strconv.Atoi(key)
			if err == nil && count > rt.MaxInstallments {
				warnings = append(warnings,
					fmt.Sprintf("Rate table '%s' configures a fee for %dx beyond maxInstallments %d; it will never be used", rt.ID, count, rt.MaxInstallments))
			}
		}
		if !rt.AcceptsDebit && !rt.AcceptsCredit {
			warnings = append(warnings,
				fmt.Sprintf("Rate table '%s' accepts neither debit nor credit; quotes against it will be empty", rt.ID))
		}
	}

	for _, store := range conf.Stores {
		if conf.activeTableFor(store.ID) == nil {
			warnings = append(warnings,
				fmt.Sprintf("Store '%s' has no active rate table; quotes cannot be computed for it", store.ID))
		}
	}

	for _, dt := range conf.DamageTypes {
		if dt.DiscountCents == 0 {
			warnings = append(warnings,
				fmt.Sprintf("Damage type '%s' has a zero discount and will not affect valuations", dt.Name))
		}
	}

	return warnings
}

func (conf *Configuration) activeTableFor(storeID string) *RateTable {
	for i := range conf.RateTables {
		rt := &conf.RateTables[i]
		if !rt.Active {
			continue
		}
		for _, id := range rt.StoreIDs {
			if id == storeID {
				return rt
			}
		}
	}
	return nil
}

// ToEngine converts the config-file rate table into the calculator's form,
// parsing the string installment-count keys.
func (rt RateTable) ToEngine() (quote.RateTable, error) {
	creditRate := make(map[int]float64, len(rt.CreditRate))
	for key, fee := range rt.CreditRate {
		count, err := strconv.Atoi(key)
		if err != nil {
			return quote.RateTable{}, validation.NewConfigurationError(
				fmt.Sprintf("rate table %q", rt.ID),
				"credit rate key %q is not an installment count", key)
		}
		creditRate[count] = fee
	}

	return quote.RateTable{
		ID:              rt.ID,
		Name:            rt.Name,
		StoreIDs:        rt.StoreIDs,
		MaxInstallments: rt.MaxInstallments,
		CreditRate:      creditRate,
		DebitRate:       rt.DebitRate,
		AcceptsDebit:    rt.AcceptsDebit,
		AcceptsCredit:   rt.AcceptsCredit,
		Active:          rt.Active,
	}, nil
}

// ToEngine converts the config-file trade-in range into the valuator's form.
func (tr TradeInRange) ToEngine() tradein.Range {
	return tradein.Range{
		DeviceModel: tr.DeviceModel,
		StoreID:     tr.StoreID,
		Min:         money.Cents(tr.MinCents),
		Max:         money.Cents(tr.MaxCents),
	}
}

// ToEngine converts the config-file damage type into a deduction.
func (dt DamageType) ToEngine() tradein.Deduction {
	return tradein.Deduction{
		Name:     dt.Name,
		Discount: money.Cents(dt.DiscountCents),
	}
}
