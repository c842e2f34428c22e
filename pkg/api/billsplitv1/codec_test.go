package billsplitv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_Name(t *testing.T) {
	assert.Equal(t, "json", Codec{}.Name())
}

func TestCodec_RoundTripsBill(t *testing.T) {
	receipt := int64(5250)
	in := &Bill{
		Title:  "Dinner",
		Diners: []string{"Alice", "Bob"},
		Dishes: []Dish{
			{ID: "d1", Name: "Ramen", Quantity: 2, PriceCents: 1400, PriceMode: "each", Diners: []int{0, 1}},
		},
		TaxCents:          420,
		ReceiptTotalCents: &receipt,
	}

	data, err := Codec{}.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"receipt_total_cents":5250`)
	assert.Contains(t, string(data), `"price_mode":"each"`)

	out := &Bill{}
	require.NoError(t, Codec{}.Unmarshal(data, out))
	assert.Equal(t, in, out)
}

func TestCodec_UnmarshalEmptyBody(t *testing.T) {
	msg := &ListBillsRequest{}
	require.NoError(t, Codec{}.Unmarshal(nil, msg))
}

func TestCodec_UnmarshalInvalid(t *testing.T) {
	err := Codec{}.Unmarshal([]byte(`{"tax_cents":"lots"}`), &CalculateBillRequest{})
	assert.Error(t, err)
}
