package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmarins/parcelamento/pkg/validation"
)

const sampleConfig = `
stores:
  - id: store-1
    name: Loja Centro
  - id: store-2
    name: Loja Shopping
products:
  - id: prod-1
    name: iPhone 13 128GB
    prices:
      store-1: 600000
      store-2: 620000
rateTables:
  - id: tbl-1
    name: Maquininha Azul
    storeIds: [store-1]
    maxInstallments: 3
    creditRate:
      "1": 0
      "2": 2.5
      "3": 3.5
    debitRate: 1.5
    acceptsDebit: true
    acceptsCredit: true
    active: true
tradeInRanges:
  - deviceModel: Galaxy S21
    storeId: store-1
    minCents: 180000
    maxCents: 240000
damageTypes:
  - name: Tela trincada
    discountCents: 50000
  - name: Bateria viciada
    discountCents: 30000
logging:
  level: debug
  format: console
server:
  address: ":9090"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() unexpected error: %v", err)
	}

	if len(conf.Stores) != 2 {
		t.Errorf("len(Stores) = %d, expected 2", len(conf.Stores))
	}
	if len(conf.RateTables) != 1 {
		t.Fatalf("len(RateTables) = %d, expected 1", len(conf.RateTables))
	}
	rt := conf.RateTables[0]
	if rt.ID != "tbl-1" || rt.MaxInstallments != 3 || !rt.AcceptsDebit {
		t.Errorf("rate table loaded incorrectly: %+v", rt)
	}
	if rt.CreditRate["2"] != 2.5 {
		t.Errorf("CreditRate[2] = %v, expected 2.5", rt.CreditRate["2"])
	}
	if len(conf.TradeInRanges) != 1 || conf.TradeInRanges[0].MinCents != 180000 {
		t.Errorf("trade-in ranges loaded incorrectly: %+v", conf.TradeInRanges)
	}
	if conf.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, expected debug", conf.Logging.Level)
	}
	if conf.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q, expected :9090", conf.Server.Address)
	}
	if conf.Server.MaxBodySizeBytes <= 0 {
		t.Error("MaxBodySizeBytes default was not applied")
	}

	if err := conf.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfiguration() expected an error for a missing file")
	}
}

func TestApplyDefaultsAssignsRateTableIDs(t *testing.T) {
	withoutID := strings.Replace(sampleConfig, "  - id: tbl-1\n    name: Maquininha Azul", "  - name: Maquininha Azul", 1)
	conf, err := LoadConfiguration(writeConfig(t, withoutID))
	if err != nil {
		t.Fatalf("LoadConfiguration() unexpected error: %v", err)
	}
	if conf.RateTables[0].ID == "" {
		t.Error("rate table without an ID should have one assigned at load")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Configuration)
	}{
		{"Fee at 100", func(c *Configuration) { c.RateTables[0].CreditRate["2"] = 100 }},
		{"Zero maxInstallments", func(c *Configuration) { c.RateTables[0].MaxInstallments = 0 }},
		{"Non-numeric credit rate key", func(c *Configuration) { c.RateTables[0].CreditRate["duas"] = 2.5 }},
		{"Trade-in min above max", func(c *Configuration) { c.TradeInRanges[0].MinCents = 250000 }},
		{"Trade-in min equals max", func(c *Configuration) { c.TradeInRanges[0].MinCents = 240000 }},
		{"Negative damage discount", func(c *Configuration) { c.DamageTypes[0].DiscountCents = -1 }},
		{"Negative product price", func(c *Configuration) { c.Products[0].Prices["store-1"] = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
			if err != nil {
				t.Fatalf("LoadConfiguration() unexpected error: %v", err)
			}
			tt.mutate(conf)
			err = conf.Validate()
			if err == nil {
				t.Fatal("Validate() expected a ConfigurationError")
			}
			var confErr *validation.ConfigurationError
			if !errors.As(err, &confErr) {
				t.Errorf("error = %v, expected ConfigurationError", err)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() unexpected error: %v", err)
	}

	warnings := conf.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("Warnings() = %v, expected only the uncovered-store warning", warnings)
	}
	if !strings.Contains(warnings[0], "store-2") {
		t.Errorf("warning = %q, expected it to name store-2", warnings[0])
	}

	t.Run("Credit accepted without rates", func(t *testing.T) {
		conf.RateTables[0].CreditRate = nil
		found := false
		for _, w := range conf.Warnings() {
			if strings.Contains(w, "no credit rates") {
				found = true
			}
		}
		if !found {
			t.Error("expected a warning about missing credit rates")
		}
	})

	t.Run("Fee beyond maxInstallments", func(t *testing.T) {
		conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
		if err != nil {
			t.Fatalf("LoadConfiguration() unexpected error: %v", err)
		}
		conf.RateTables[0].CreditRate["12"] = 9.5
		found := false
		for _, w := range conf.Warnings() {
			if strings.Contains(w, "never be used") {
				found = true
			}
		}
		if !found {
			t.Error("expected a warning about the unused 12x fee")
		}
	})

	t.Run("Zero-discount damage type", func(t *testing.T) {
		conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
		if err != nil {
			t.Fatalf("LoadConfiguration() unexpected error: %v", err)
		}
		conf.DamageTypes[0].DiscountCents = 0
		found := false
		for _, w := range conf.Warnings() {
			if strings.Contains(w, "zero discount") {
				found = true
			}
		}
		if !found {
			t.Error("expected a warning about the zero-discount damage type")
		}
	})
}

func TestRateTableToEngine(t *testing.T) {
	rt := RateTable{
		ID:              "tbl-1",
		StoreIDs:        []string{"store-1"},
		MaxInstallments: 3,
		CreditRate:      map[string]float64{"1": 0, "2": 2.5},
		AcceptsCredit:   true,
	}

	table, err := rt.ToEngine()
	if err != nil {
		t.Fatalf("ToEngine() unexpected error: %v", err)
	}
	if table.CreditRate[2] != 2.5 {
		t.Errorf("CreditRate[2] = %v, expected 2.5", table.CreditRate[2])
	}

	rt.CreditRate["duas"] = 1.0
	if _, err := rt.ToEngine(); err == nil {
		t.Error("ToEngine() expected an error for a non-numeric key")
	}
}
