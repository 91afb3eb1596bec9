package pricing

import "math"

const minHoldingCost = 1e-6

// EOQ is the economic order quantity for a yearly demand, a fixed cost per
// order and a holding cost per unit per year.
func EOQ(annualDemand, orderCost, holdingCostPerUnitPerYear float64) float64 {
	return math.Sqrt(2 * annualDemand * orderCost / math.Max(holdingCostPerUnitPerYear, minHoldingCost))
}

// ReorderPoint is the stock level at which a new order should be placed.
func ReorderPoint(avgDailyDemand, leadTimeDays, safetyStockUnits float64) float64 {
	return avgDailyDemand*leadTimeDays + safetyStockUnits
}
