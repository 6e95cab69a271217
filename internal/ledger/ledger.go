// Package ledger derives balances from buy and sell movements.
//
// Balances are never stored. Every function here folds the movements it is
// given and has no side effects, so callers decide which movements (one
// triple, one portfolio, one client) are in scope.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

// signed returns the quantity of m with the direction applied.
func signed(m model.Movement) decimal.Decimal {
	q := decimal.NewFromFloat(m.Quantity)
	if m.Type == model.MovementSell {
		return q.Neg()
	}
	return q
}

func included(m model.Movement, asOf *time.Time) bool {
	return asOf == nil || !m.Date.After(*asOf)
}

func balance(movements []model.Movement, asOf *time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if included(m, asOf) {
			total = total.Add(signed(m))
		}
	}
	return total
}

// Balance is the sum of buys minus the sum of sells dated on or before asOf.
// A nil asOf includes every movement. The result does not depend on the order
// of movements.
func Balance(movements []model.Movement, asOf *time.Time) float64 {
	return balance(movements, asOf).InexactFloat64()
}

// CheckSell decides whether quantity may be sold given the balance on asOf.
// Selling exactly the available quantity is allowed; an empty history has
// nothing available. Available is the balance itself, negative when deletes
// left the history short.
func CheckSell(movements []model.Movement, quantity float64, asOf *time.Time) model.SellCheck {
	available := balance(movements, asOf)
	return model.SellCheck{
		Allowed:   decimal.NewFromFloat(quantity).LessThanOrEqual(available),
		Available: available.InexactFloat64(),
	}
}

// Headroom is the largest quantity that can be sold on asOf without any later
// running balance going negative. It is the smallest of the balance on asOf
// and the running balance after each later movement date, and never below zero.
func Headroom(movements []model.Movement, asOf *time.Time) float64 {
	return headroom(movements, asOf).InexactFloat64()
}

func headroom(movements []model.Movement, asOf *time.Time) decimal.Decimal {
	lowest := balance(movements, asOf)
	if asOf != nil {
		var later []model.Movement
		for _, m := range movements {
			if !included(m, asOf) {
				later = append(later, m)
			}
		}
		if run := minRunning(later, lowest); run.LessThan(lowest) {
			lowest = run
		}
	}
	if lowest.IsNegative() {
		return decimal.Zero
	}
	return lowest
}

// CheckSellAt is CheckSell against Headroom instead of the balance: a sell
// dated on asOf is allowed only if no later running balance turns negative.
// This is the check applied when a sell is recorded.
func CheckSellAt(movements []model.Movement, quantity float64, asOf time.Time) model.SellCheck {
	available := headroom(movements, &asOf)
	return model.SellCheck{
		Allowed:   decimal.NewFromFloat(quantity).LessThanOrEqual(available),
		Available: available.InexactFloat64(),
	}
}

// MinRunningBalance walks the history in date order and returns the lowest
// balance reached after any movement date. Movements sharing a date are
// applied together. An empty history returns 0.
func MinRunningBalance(movements []model.Movement) float64 {
	if len(movements) == 0 {
		return 0
	}
	return minRunning(movements, decimal.Zero).InexactFloat64()
}

// minRunning applies movements by date on top of start and returns the lowest
// balance seen after each date, or start if there are no movements.
func minRunning(movements []model.Movement, start decimal.Decimal) decimal.Decimal {
	sorted := append([]model.Movement(nil), movements...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	running, lowest := start, start
	first := true
	for i := 0; i < len(sorted); {
		day := sorted[i].Date
		for ; i < len(sorted) && sorted[i].Date.Equal(day); i++ {
			running = running.Add(signed(sorted[i]))
		}
		if first || running.LessThan(lowest) {
			lowest = running
			first = false
		}
	}
	if first {
		return start
	}
	return lowest
}

// Holdings groups movements by triple and returns the open positions on asOf.
// Positions with a balance of zero or less are closed and left out.
// Results are ordered by portfolio then security id; names are not filled.
func Holdings(movements []model.Movement, asOf *time.Time) []model.Holding {
	totals := make(map[model.Triple]decimal.Decimal)
	for _, m := range movements {
		if !included(m, asOf) {
			continue
		}
		k := m.Triple()
		totals[k] = totals[k].Add(signed(m))
	}

	holdings := make([]model.Holding, 0, len(totals))
	for k, total := range totals {
		if !total.IsPositive() {
			continue
		}
		holdings = append(holdings, model.Holding{
			ClientID:    k.ClientID,
			PortfolioID: k.PortfolioID,
			SecurityID:  k.SecurityID,
			Balance:     total.InexactFloat64(),
		})
	}
	sort.Slice(holdings, func(i, j int) bool {
		if holdings[i].PortfolioID != holdings[j].PortfolioID {
			return holdings[i].PortfolioID < holdings[j].PortfolioID
		}
		return holdings[i].SecurityID < holdings[j].SecurityID
	})
	return holdings
}
