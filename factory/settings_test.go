package factory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/factory"
)

// =============================================================================
// PARSING TESTS
// =============================================================================

func TestParseJSON_FullDocument(t *testing.T) {
	doc := `{
		"working_days": {
			"saturday_policy": "alternate",
			"off_saturdays": [2, 4],
			"sunday_off": true
		},
		"entitlement": {
			"casual_monthly_rate": 2.0,
			"sick_annual_days": 10
		},
		"holidays": [
			{"date": "2025-01-26", "name": "Republic Day"},
			{"date": "2025-08-15", "name": "Independence Day"}
		]
	}`

	settings, err := factory.ParseJSON([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, engine.SaturdayAlternate, settings.WorkingDays.SaturdayPolicy)
	assert.Equal(t, []int{2, 4}, settings.WorkingDays.OffSaturdays)
	assert.True(t, settings.WorkingDays.SundayOff)
	assert.True(t, settings.Entitlement.CasualMonthlyRate.Equal(decimal.NewFromInt(2)))
	assert.True(t, settings.Entitlement.SickAnnualDays.Equal(decimal.NewFromInt(10)))
	require.Len(t, settings.Holidays, 2)
	assert.Equal(t, "2025-01-26", settings.Holidays[0].Date.String())
	assert.Equal(t, "Republic Day", settings.Holidays[0].Name)
}

func TestParseJSON_EmptyDocumentGetsDefaults(t *testing.T) {
	settings, err := factory.ParseJSON([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, engine.DefaultWorkingDaysConfig(), settings.WorkingDays)
	assert.True(t, settings.Entitlement.CasualMonthlyRate.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, settings.Entitlement.SickAnnualDays.Equal(decimal.NewFromInt(12)))
	assert.Empty(t, settings.Holidays)
}

func TestParseJSON_PartialWorkingDaysKeepsOtherDefaults(t *testing.T) {
	// GIVEN: Only the Saturday policy is overridden
	// WHEN: Parsing
	// THEN: Off-Saturdays and Sunday default as usual

	doc := `{"working_days": {"saturday_policy": "all_off"}}`
	settings, err := factory.ParseJSON([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, engine.SaturdayAllOff, settings.WorkingDays.SaturdayPolicy)
	assert.Equal(t, []int{1, 3}, settings.WorkingDays.OffSaturdays)
	assert.True(t, settings.WorkingDays.SundayOff)
}

func TestParseYAML_SeedFile(t *testing.T) {
	doc := `
working_days:
  saturday_policy: custom
  off_saturdays: [1, 3, 5]
  sunday_off: false
holidays:
  - date: 2025-12-25
    name: Christmas
`
	settings, err := factory.ParseYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, engine.SaturdayCustom, settings.WorkingDays.SaturdayPolicy)
	assert.Equal(t, []int{1, 3, 5}, settings.WorkingDays.OffSaturdays)
	assert.False(t, settings.WorkingDays.SundayOff)
	require.Len(t, settings.Holidays, 1)
	assert.Equal(t, "Christmas", settings.Holidays[0].Name)
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestParse_RejectsInvalidDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown saturday policy", `{"working_days": {"saturday_policy": "sometimes"}}`},
		{"off saturday out of range", `{"working_days": {"off_saturdays": [0]}}`},
		{"off saturday too large", `{"working_days": {"off_saturdays": [6]}}`},
		{"negative casual rate", `{"entitlement": {"casual_monthly_rate": -1}}`},
		{"negative sick days", `{"entitlement": {"sick_annual_days": -5}}`},
		{"bad holiday date", `{"holidays": [{"date": "26/01/2025", "name": "Republic Day"}]}`},
		{"malformed json", `{"working_days":`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := factory.ParseJSON([]byte(c.doc))
			assert.Error(t, err)
		})
	}
}
