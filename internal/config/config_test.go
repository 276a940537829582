package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
database: site.db
site:
  label: main-meter
  interpretation: ELECTRICITY_CONSUMPTION_SUPPLIED
  unit: kWh
  timezone: America/New_York
model:
  cooling_base_temp_f: 70
  heating_base_temp_f: 60
  base_formula: "energy ~ CDD + HDD"
server:
  addr: ":9000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "site.db", cfg.Database)
	assert.Equal(t, "main-meter", cfg.Site.Label)
	assert.Equal(t, "ELECTRICITY_CONSUMPTION_SUPPLIED", cfg.Site.Interpretation)
	assert.Equal(t, "kWh", cfg.Site.Unit)
	assert.Equal(t, 70.0, cfg.Model.CoolingBaseTempF)
	assert.Equal(t, 60.0, cfg.Model.HeatingBaseTempF)
	assert.Equal(t, "energy ~ CDD + HDD", cfg.Model.BaseFormula)
	assert.Equal(t, ":9000", cfg.Server.Addr)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
site:
  interpretation: NATURAL_GAS_CONSUMPTION_SUPPLIED
  unit: therms
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "baseline.db", cfg.Database)
	assert.Equal(t, "0", cfg.Site.Label)
	assert.Equal(t, 65.0, cfg.Model.CoolingBaseTempF)
	assert.Equal(t, 65.0, cfg.Model.HeatingBaseTempF)
	assert.Equal(t, ":8080", cfg.Server.Addr)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "site: [not a mapping\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLocation_Invalid(t *testing.T) {
	cfg := &Config{Site: SiteConfig{Timezone: "Nowhere/Invalid"}}
	_, err := cfg.Location()
	assert.Error(t, err)
}
