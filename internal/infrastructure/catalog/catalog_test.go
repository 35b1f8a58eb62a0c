package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		materials, err := Parse(strings.NewReader(`
materials:
  - code: pla
    name: PLA
    price: "0.08"
    leadTimeDays: 3
    properties: [Standard prototyping, Biodegradable]
  - code: pp
    name: Polypropylene
    price: "0.18"
    leadTimeDays: 7
`))
		require.NoError(t, err)
		require.Len(t, materials, 2)
		assert.Equal(t, "pla", materials[0].Code)
		assert.True(t, decimal.RequireFromString("0.08").Equal(materials[0].Price))
		assert.Equal(t, []string{"Standard prototyping", "Biodegradable"}, materials[0].Properties)
		assert.Equal(t, []string{}, materials[1].Properties)
	})

	cases := map[string]string{
		"duplicate code": "materials:\n  - {code: pla, name: PLA, price: '0.08'}\n  - {code: pla, name: PLA2, price: '0.09'}\n",
		"bad price":      "materials:\n  - {code: pla, name: PLA, price: 'cheap'}\n",
		"zero price":     "materials:\n  - {code: pla, name: PLA, price: '0'}\n",
		"missing name":   "materials:\n  - {code: pla, price: '0.08'}\n",
		"unknown field":  "materials:\n  - {code: pla, name: PLA, price: '0.08', colour: red}\n",
		"negative lead":  "materials:\n  - {code: pla, name: PLA, price: '0.08', leadTimeDays: -1}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoadSeedCatalog(t *testing.T) {
	materials, err := Load("../../../db/materials.yaml")
	require.NoError(t, err)

	codes := make([]string, 0, len(materials))
	for _, m := range materials {
		codes = append(codes, m.Code)
	}
	assert.ElementsMatch(t, []string{"pla", "abs", "pa12", "pp", "tpu"}, codes)
}
