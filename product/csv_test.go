package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportCSV_FilteredAndSorted(t *testing.T) {
	visible := Apply(sampleProducts(), Params{Category: "Tools", SortDir: SortDesc})

	data, ok := ExportCSV(visible)

	assert.True(t, ok)
	assert.Equal(t, "Name,Category,Price\nWidget,Tools,10\nGadget,Tools,5", string(data))
}

func TestExportCSV_EmptyProducesNothing(t *testing.T) {
	data, ok := ExportCSV(nil)

	assert.False(t, ok)
	assert.Nil(t, data)

	data, ok = ExportCSV([]Product{})
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestExportCSV_EmbeddedCommasAreNotQuoted(t *testing.T) {
	data, ok := ExportCSV([]Product{{Name: "Nuts, Bolts", Category: "Parts", Price: 1.25}})

	assert.True(t, ok)
	assert.Equal(t, "Name,Category,Price\nNuts, Bolts,Parts,1.25", string(data))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{10, "10"},
		{10.5, "10.5"},
		{0, "0"},
		{19.99, "19.99"},
		{-3, "-3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price))
	}
}
