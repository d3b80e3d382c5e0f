// Package engine implements the bill-split and estimation arithmetic.
// Every function here is pure: no I/O, no shared state, deterministic
// output for identical input, safe to call on every keystroke.
package engine

import (
	billingdomain "github.com/metersharelabs/metershare/internal/billing/domain"
)

// Allocate apportions a VAT-inclusive utility bill across tenant meters.
// Fixed-style charges (demand charge, meter rent, their VAT, processing
// and late fees) are split equally; the remaining variable pool is split
// by consumption at a rate derived from the bill itself.
//
// Degenerate inputs are handled with zero guards rather than errors: no
// meters or zero total consumption yield zero rates, never a division by
// zero. Output order matches the input meter order.
func Allocate(cfg billingdomain.BillConfig, meters []billingdomain.MeterReading, tariff billingdomain.TariffConfig) billingdomain.BillCalculationResult {
	vatTotal := cfg.TotalBillPayable * tariff.VATRate / (1 + tariff.VATRate)
	vatFixed := (tariff.DemandCharge + tariff.MeterRent) * tariff.VATRate

	vatDistributed := vatTotal - vatFixed
	if vatDistributed < 0 {
		vatDistributed = 0
	}

	// Late fee reuses the total VAT amount. The formula is carried over
	// from the billing workbook unchanged; see DESIGN.md before touching it.
	var lateFee float64
	if cfg.IncludeLateFee {
		lateFee = vatTotal
	}

	var bkashFee float64
	if cfg.IncludeBkashFee {
		bkashFee = cfg.BkashFee
	}

	var totalUnits float64
	for _, m := range meters {
		totalUnits += m.UnitsUsed()
	}

	variableCostPool := cfg.TotalBillPayable - tariff.DemandCharge - tariff.MeterRent - vatFixed

	var calculatedRate float64
	if totalUnits > 0 {
		calculatedRate = variableCostPool / totalUnits
	}

	var fixedCostPerUser float64
	if len(meters) > 0 {
		fixedCostPerUser = (tariff.DemandCharge + tariff.MeterRent + vatFixed + bkashFee + lateFee) / float64(len(meters))
	}

	users := make([]billingdomain.UserCalculation, 0, len(meters))
	var totalCollection float64
	for _, m := range meters {
		units := m.UnitsUsed()
		energyCost := units * calculatedRate
		payable := energyCost + fixedCostPerUser
		totalCollection += payable

		users = append(users, billingdomain.UserCalculation{
			ID:           m.ID,
			Name:         m.Name,
			UnitsUsed:    units,
			EnergyCost:   energyCost,
			FixedCost:    fixedCostPerUser,
			TotalPayable: payable,
		})
	}

	return billingdomain.BillCalculationResult{
		VATTotal:         vatTotal,
		VATFixed:         vatFixed,
		VATDistributed:   vatDistributed,
		LateFee:          lateFee,
		CalculatedRate:   calculatedRate,
		TotalUnits:       totalUnits,
		TotalCollection:  totalCollection,
		UserCalculations: users,
	}
}

// SystemLoss returns main meter consumption minus the tenant total. It is
// a diagnostic for leakage or metering drift and is never billed.
func SystemLoss(main billingdomain.MeterReading, meters []billingdomain.MeterReading) float64 {
	var tenantUnits float64
	for _, m := range meters {
		tenantUnits += m.UnitsUsed()
	}
	return main.UnitsUsed() - tenantUnits
}
