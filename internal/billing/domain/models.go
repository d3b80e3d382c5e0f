// Package domain contains the calculation model shared by the splitter,
// the estimators and the saved-bill ledger.
package domain

import "time"

// RateSlab is one consumption bracket of a tiered tariff. Limit is the
// cumulative upper bound in units; Rate is the price per unit inside the
// bracket. The last slab's rate also covers consumption beyond its limit.
type RateSlab struct {
	Limit float64 `json:"limit"`
	Rate  float64 `json:"rate"`
}

// TariffConfig is the static rate schedule every calculation consumes.
// Slab limits must be strictly increasing and rates positive; the tariff
// editor enforces that before a config ever reaches the calculators.
type TariffConfig struct {
	DemandCharge float64    `json:"demand_charge"`
	MeterRent    float64    `json:"meter_rent"`
	VATRate      float64    `json:"vat_rate"`
	BkashCharge  float64    `json:"bkash_charge"`
	Slabs        []RateSlab `json:"slabs"`
}

// MeterReading is one meter's state for a billing period. Previous and
// Current are cumulative counter values.
type MeterReading struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	MeterNo  string  `json:"meter_no"`
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
}

// UnitsUsed returns the consumption for the period. A negative delta
// (meter reset or entry error) is clamped to zero, never billed negative.
func (m MeterReading) UnitsUsed() float64 {
	if m.Current <= m.Previous {
		return 0
	}
	return m.Current - m.Previous
}

// BillConfig carries one billing period's externally supplied inputs.
// TotalBillPayable is the authoritative VAT-inclusive total from the
// utility invoice; it is entered, never derived.
type BillConfig struct {
	Month            string    `json:"month"`
	DateGenerated    time.Time `json:"date_generated"`
	TotalBillPayable float64   `json:"total_bill_payable"`
	BkashFee         float64   `json:"bkash_fee"`
	IncludeLateFee   bool      `json:"include_late_fee"`
	IncludeBkashFee  bool      `json:"include_bkash_fee"`
}

// UserCalculation is one tenant meter's share of the bill.
type UserCalculation struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	UnitsUsed    float64 `json:"units_used"`
	EnergyCost   float64 `json:"energy_cost"`
	FixedCost    float64 `json:"fixed_cost"`
	TotalPayable float64 `json:"total_payable"`
}

// BillCalculationResult is the splitter output. It is derived on every
// call and never persisted directly; SavedBill snapshots store the inputs.
type BillCalculationResult struct {
	VATTotal         float64           `json:"vat_total"`
	VATFixed         float64           `json:"vat_fixed"`
	VATDistributed   float64           `json:"vat_distributed"`
	LateFee          float64           `json:"late_fee"`
	CalculatedRate   float64           `json:"calculated_rate"`
	TotalUnits       float64           `json:"total_units"`
	TotalCollection  float64           `json:"total_collection"`
	UserCalculations []UserCalculation `json:"user_calculations"`
}

// ForwardEstimate is the units-to-bill estimator output.
type ForwardEstimate struct {
	EnergyCost        float64 `json:"energy_cost"`
	TotalSubjectToVAT float64 `json:"total_subject_to_vat"`
	VATAmount         float64 `json:"vat_amount"`
	TotalPayable      float64 `json:"total_payable"`
}

// TraceStep is one audit-trail record of the reverse estimator, suitable
// for user-facing display.
type TraceStep struct {
	Label       string `json:"label"`
	Narrative   string `json:"narrative"`
	Computation string `json:"computation"`
}

// ReverseEstimate is the bill-to-units estimator output.
type ReverseEstimate struct {
	TotalUnits  float64     `json:"total_units"`
	EnergyCost  float64     `json:"energy_cost"`
	TaxableBase float64     `json:"taxable_base"`
	AuditTrail  []TraceStep `json:"audit_trail"`
}
