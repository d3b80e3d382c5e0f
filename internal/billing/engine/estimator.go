package engine

import (
	"fmt"

	billingdomain "github.com/metersharelabs/metershare/internal/billing/domain"
)

// remainderEpsilon absorbs floating-point noise left over at the end of
// slab unwinding; anything below it is treated as fully consumed.
const remainderEpsilon = 0.01

// EstimateForward prices a consumption figure through the tiered slab
// schedule and adds fixed charges and VAT on top. Units beyond the last
// defined slab are charged at the last slab's rate (open-ended tier).
// Slab boundaries belong to the lower tier.
func EstimateForward(units float64, tariff billingdomain.TariffConfig) billingdomain.ForwardEstimate {
	var energyCost float64
	remaining := units
	previousLimit := 0.0

	for _, slab := range tariff.Slabs {
		if remaining <= 0 {
			break
		}
		slabSize := slab.Limit - previousLimit
		take := remaining
		if take > slabSize {
			take = slabSize
		}
		energyCost += take * slab.Rate
		remaining -= take
		previousLimit = slab.Limit
	}

	if remaining > 0 && len(tariff.Slabs) > 0 {
		energyCost += remaining * tariff.Slabs[len(tariff.Slabs)-1].Rate
	}

	totalSubjectToVAT := energyCost + tariff.DemandCharge + tariff.MeterRent
	vatAmount := totalSubjectToVAT * tariff.VATRate

	return billingdomain.ForwardEstimate{
		EnergyCost:        energyCost,
		TotalSubjectToVAT: totalSubjectToVAT,
		VATAmount:         vatAmount,
		TotalPayable:      totalSubjectToVAT + vatAmount,
	}
}

// EstimateReverse derives consumption from a target VAT-inclusive bill
// amount. There is no closed form: the applicable rate depends on the
// quantity being solved for, so the slabs are unwound step by step. Each
// stage appends one audit-trail record for user-facing display.
//
// A bill that does not exceed the fixed charges reports zero consumption
// rather than an error.
func EstimateReverse(bill float64, tariff billingdomain.TariffConfig) billingdomain.ReverseEstimate {
	trail := make([]billingdomain.TraceStep, 0, len(tariff.Slabs)+3)

	vatAmount := bill * tariff.VATRate / (1 + tariff.VATRate)
	taxableBase := bill - vatAmount
	trail = append(trail, billingdomain.TraceStep{
		Label:       "Remove VAT",
		Narrative:   "The payable amount includes VAT, so the tax portion is backed out first.",
		Computation: fmt.Sprintf("%.2f × %.2f/%.2f = %.2f VAT; taxable base %.2f", bill, tariff.VATRate, 1+tariff.VATRate, vatAmount, taxableBase),
	})

	fixedCharges := tariff.DemandCharge + tariff.MeterRent
	energyCost := taxableBase - fixedCharges
	trail = append(trail, billingdomain.TraceStep{
		Label:       "Remove fixed charges",
		Narrative:   "Demand charge and meter rent are flat fees; what remains pays for energy.",
		Computation: fmt.Sprintf("%.2f − %.2f = %.2f energy cost", taxableBase, fixedCharges, energyCost),
	})

	if energyCost <= 0 {
		trail = append(trail, billingdomain.TraceStep{
			Label:       "No consumption",
			Narrative:   "The bill does not exceed the fixed charges, so no units were consumed.",
			Computation: fmt.Sprintf("%.2f ≤ 0", energyCost),
		})
		return billingdomain.ReverseEstimate{
			TotalUnits:  0,
			EnergyCost:  energyCost,
			TaxableBase: taxableBase,
			AuditTrail:  trail,
		}
	}

	var totalUnits float64
	remainingCost := energyCost
	previousLimit := 0.0

	for i, slab := range tariff.Slabs {
		slabSize := slab.Limit - previousLimit
		maxCostForSlab := slabSize * slab.Rate

		if remainingCost >= maxCostForSlab {
			totalUnits += slabSize
			remainingCost -= maxCostForSlab
			previousLimit = slab.Limit
			trail = append(trail, billingdomain.TraceStep{
				Label:     fmt.Sprintf("Slab %d fully consumed", i+1),
				Narrative: fmt.Sprintf("All %.0f units up to %.0f were used at %.2f per unit.", slabSize, slab.Limit, slab.Rate),
				Computation: fmt.Sprintf("%.0f × %.2f = %.2f; remaining cost %.2f",
					slabSize, slab.Rate, maxCostForSlab, remainingCost),
			})
			continue
		}

		unitsInSlab := remainingCost / slab.Rate
		totalUnits += unitsInSlab
		trail = append(trail, billingdomain.TraceStep{
			Label:     fmt.Sprintf("Slab %d partially consumed", i+1),
			Narrative: fmt.Sprintf("The remaining cost ends inside this slab at %.2f per unit.", slab.Rate),
			Computation: fmt.Sprintf("%.2f ÷ %.2f = %.2f units; total %.2f units",
				remainingCost, slab.Rate, unitsInSlab, totalUnits),
		})
		remainingCost = 0
		break
	}

	if remainingCost > remainderEpsilon && len(tariff.Slabs) > 0 {
		lastRate := tariff.Slabs[len(tariff.Slabs)-1].Rate
		extraUnits := remainingCost / lastRate
		totalUnits += extraUnits
		trail = append(trail, billingdomain.TraceStep{
			Label:     "Above slab limit",
			Narrative: fmt.Sprintf("Consumption beyond the last slab continues at its rate of %.2f per unit.", lastRate),
			Computation: fmt.Sprintf("%.2f ÷ %.2f = %.2f extra units; total %.2f units",
				remainingCost, lastRate, extraUnits, totalUnits),
		})
	}

	return billingdomain.ReverseEstimate{
		TotalUnits:  totalUnits,
		EnergyCost:  energyCost,
		TaxableBase: taxableBase,
		AuditTrail:  trail,
	}
}
