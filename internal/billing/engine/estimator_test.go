package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingdomain "github.com/metersharelabs/metershare/internal/billing/domain"
)

func TestEstimateForward(t *testing.T) {
	tariff := testTariff()

	tests := []struct {
		name       string
		units      float64
		energyCost float64
	}{
		{name: "mid second slab", units: 100, energyCost: 75*5.26 + 25*7.20},
		{name: "first slab boundary stays in first slab", units: 75, energyCost: 75 * 5.26},
		{name: "inside first slab", units: 40, energyCost: 40 * 5.26},
		{name: "beyond last slab uses last rate", units: 250, energyCost: 75*5.26 + 125*7.20 + 50*7.20},
		{name: "zero units", units: 0, energyCost: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := EstimateForward(tt.units, tariff)

			assert.InDelta(t, tt.energyCost, est.EnergyCost, 1e-9)

			subject := tt.energyCost + tariff.DemandCharge + tariff.MeterRent
			assert.InDelta(t, subject, est.TotalSubjectToVAT, 1e-9)
			assert.InDelta(t, subject*tariff.VATRate, est.VATAmount, 1e-9)
			assert.InDelta(t, subject*1.05, est.TotalPayable, 1e-9)
		})
	}
}

func TestEstimateForwardKnownInvoice(t *testing.T) {
	est := EstimateForward(100, testTariff())

	assert.InDelta(t, 574.5, est.EnergyCost, 1e-9)
	assert.InDelta(t, 668.5, est.TotalSubjectToVAT, 1e-9)
	assert.InDelta(t, 33.425, est.VATAmount, 1e-9)
	assert.InDelta(t, 701.925, est.TotalPayable, 1e-9)
}

func TestEstimateForwardNoSlabs(t *testing.T) {
	tariff := billingdomain.TariffConfig{DemandCharge: 84, MeterRent: 10, VATRate: 0.05}

	est := EstimateForward(120, tariff)

	assert.Zero(t, est.EnergyCost)
	assert.InDelta(t, 94, est.TotalSubjectToVAT, 1e-9)
}

func TestEstimateReverseKnownInvoice(t *testing.T) {
	est := EstimateReverse(701.925, testTariff())

	assert.InDelta(t, 100, est.TotalUnits, 1e-6)
	assert.InDelta(t, 574.5, est.EnergyCost, 1e-6)
	assert.InDelta(t, 668.5, est.TaxableBase, 1e-6)

	// Un-VAT, remove fixed charges, slab 1 fully consumed, slab 2 terminal.
	require.Len(t, est.AuditTrail, 4)
	assert.Equal(t, "Remove VAT", est.AuditTrail[0].Label)
	assert.Equal(t, "Remove fixed charges", est.AuditTrail[1].Label)
	assert.Contains(t, est.AuditTrail[2].Label, "fully consumed")
	assert.Contains(t, est.AuditTrail[3].Label, "partially consumed")
}

func TestEstimateReverseBelowFixedCharges(t *testing.T) {
	est := EstimateReverse(80, testTariff())

	assert.Zero(t, est.TotalUnits)
	assert.LessOrEqual(t, est.EnergyCost, 0.0)
	require.NotEmpty(t, est.AuditTrail)
	assert.Equal(t, "No consumption", est.AuditTrail[len(est.AuditTrail)-1].Label)
}

func TestEstimateReverseAboveSlabLimit(t *testing.T) {
	// 250 units runs past the last slab; the open-ended tier must absorb it.
	bill := EstimateForward(250, testTariff()).TotalPayable

	est := EstimateReverse(bill, testTariff())

	assert.InDelta(t, 250, est.TotalUnits, 1e-6)
	assert.Equal(t, "Above slab limit", est.AuditTrail[len(est.AuditTrail)-1].Label)
}

func TestEstimateRoundTrip(t *testing.T) {
	tariff := testTariff()

	for _, units := range []float64{0, 1, 10, 74.5, 75, 76, 100, 200, 205, 500, 1234.56} {
		bill := EstimateForward(units, tariff).TotalPayable
		back := EstimateReverse(bill, tariff).TotalUnits

		assert.InDeltaf(t, units, back, 0.01, "round trip for %.2f units", units)
	}
}

func TestEstimateReverseAbsorbsFloatNoise(t *testing.T) {
	// A bill a hair above an exact slab boundary must not emit a phantom
	// "above slab limit" entry for the sub-epsilon remainder.
	tariff := testTariff()
	bill := EstimateForward(200, tariff).TotalPayable + 0.005

	est := EstimateReverse(bill, tariff)

	assert.InDelta(t, 200, est.TotalUnits, 0.01)
	assert.NotEqual(t, "Above slab limit", est.AuditTrail[len(est.AuditTrail)-1].Label)
}
