package notebook_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliyevq/veresiye/internal/importer/notebook"
)

func TestParser_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Exported 2025-02-01", // preamble before the header
		"name;description;address;debt",
		"Vagif;regular;Zabrat;261,98",
		"borclu;a kopoglu;;22",
		";;;", // blank filler row
		"hahahm;;zabrat;1.250,50",
		"nodebt;;;",
	}, "\n")

	p := notebook.NewParser()

	rows, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Vagif", rows[0].Name)
	assert.Equal(t, "regular", rows[0].Description)
	require.NotNil(t, rows[0].Address)
	assert.Equal(t, "Zabrat", *rows[0].Address)
	assert.True(t, rows[0].OpeningDebt.Equal(decimal.NewFromFloat(261.98)))

	assert.Equal(t, "borclu", rows[1].Name)
	assert.Nil(t, rows[1].Address)
	assert.True(t, rows[1].OpeningDebt.Equal(decimal.NewFromInt(22)))

	// European thousands separator.
	assert.True(t, rows[2].OpeningDebt.Equal(decimal.NewFromFloat(1250.50)))

	// Missing debt cell means a zero opening balance.
	assert.True(t, rows[3].OpeningDebt.IsZero())
}

func TestParser_Parse_HeaderAliases(t *testing.T) {
	input := "ad;borc\nVaqif;19\n"

	rows, err := notebook.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Vaqif", rows[0].Name)
	assert.True(t, rows[0].OpeningDebt.Equal(decimal.NewFromInt(19)))
}

func TestParser_Parse_ColumnOrderInsensitive(t *testing.T) {
	input := "debt;name\n40;Ayten\n"

	rows, err := notebook.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ayten", rows[0].Name)
	assert.True(t, rows[0].OpeningDebt.Equal(decimal.NewFromInt(40)))
}

func TestParser_Parse_NoHeader(t *testing.T) {
	_, err := notebook.NewParser().Parse(strings.NewReader("just;some;cells\n1;2;3\n"))
	assert.Error(t, err)
}

func TestParser_Parse_BadAmount(t *testing.T) {
	input := "name;debt\nVagif;not-a-number\n"

	_, err := notebook.NewParser().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParser_Parse_BadAmountRowNumberCountsPreamble(t *testing.T) {
	input := strings.Join([]string{
		"Exported 2025-02-01",
		"name;debt",
		"Vagif;12",
		"Ayten;oops",
	}, "\n")

	_, err := notebook.NewParser().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 4")
}
