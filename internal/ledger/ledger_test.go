package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr(t time.Time) *time.Time { return &t }

func buy(date string, q float64) model.Movement {
	return model.Movement{ClientID: "c", PortfolioID: "p", SecurityID: "ypf", Type: model.MovementBuy, Date: day(date), Quantity: q}
}

func sell(date string, q float64) model.Movement {
	return model.Movement{ClientID: "c", PortfolioID: "p", SecurityID: "ypf", Type: model.MovementSell, Date: day(date), Quantity: q}
}

func TestBalance(t *testing.T) {
	t.Run("order independent", func(t *testing.T) {
		movements := []model.Movement{
			buy("2024-01-01", 100), sell("2024-01-05", 30.5), buy("2024-02-01", 0.1),
			sell("2024-03-01", 12), buy("2024-03-02", 7.25), sell("2024-04-01", 0.2),
		}
		want := Balance(movements, nil)
		assert.InDelta(t, 64.65, want, 1e-9)

		r := rand.New(rand.NewSource(1))
		for i := 0; i < 20; i++ {
			shuffled := append([]model.Movement(nil), movements...)
			r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			assert.Equal(t, want, Balance(shuffled, nil))
		}
	})

	t.Run("cutoff is inclusive", func(t *testing.T) {
		movements := []model.Movement{buy("2024-01-01", 100), sell("2024-02-01", 40)}
		assert.InDelta(t, 100.0, Balance(movements, ptr(day("2024-01-31"))), 1e-9)
		assert.InDelta(t, 60.0, Balance(movements, ptr(day("2024-02-01"))), 1e-9)
		assert.InDelta(t, 0.0, Balance(movements, ptr(day("2023-12-31"))), 1e-9)
	})

	t.Run("decimal quantities sum exactly", func(t *testing.T) {
		movements := []model.Movement{buy("2024-01-01", 0.1), buy("2024-01-01", 0.2)}
		assert.Equal(t, 0.3, Balance(movements, nil))
	})
}

func TestCheckSell(t *testing.T) {
	movements := []model.Movement{buy("2024-01-01", 100), sell("2024-02-01", 40)}

	t.Run("selling the whole balance is allowed", func(t *testing.T) {
		check := CheckSell(movements, 60, nil)
		assert.True(t, check.Allowed)
		assert.InDelta(t, 60.0, check.Available, 1e-9)
	})

	t.Run("one unit over is rejected with available", func(t *testing.T) {
		check := CheckSell(movements, 61, nil)
		assert.False(t, check.Allowed)
		assert.InDelta(t, 60.0, check.Available, 1e-9)
	})

	t.Run("as of a past date", func(t *testing.T) {
		check := CheckSell(movements, 100, ptr(day("2024-01-15")))
		assert.True(t, check.Allowed)
	})

	t.Run("empty history rejects every sell", func(t *testing.T) {
		check := CheckSell(nil, 0.0001, nil)
		assert.False(t, check.Allowed)
		assert.Zero(t, check.Available)
	})

	t.Run("fractional boundary", func(t *testing.T) {
		fractional := []model.Movement{buy("2024-01-01", 0.1), buy("2024-01-02", 0.2)}
		assert.True(t, CheckSell(fractional, 0.3, nil).Allowed)
	})

	t.Run("negative balance is reported as is", func(t *testing.T) {
		// The buy behind this sell was deleted.
		short := []model.Movement{sell("2024-02-01", 40)}
		check := CheckSell(short, 1, nil)
		assert.False(t, check.Allowed)
		assert.InDelta(t, -40.0, check.Available, 1e-9)
	})
}

func TestHeadroom(t *testing.T) {
	movements := []model.Movement{buy("2024-01-10", 100), sell("2024-01-20", 80)}

	t.Run("later sells reduce what a backdated sell may take", func(t *testing.T) {
		assert.InDelta(t, 100.0, Balance(movements, ptr(day("2024-01-15"))), 1e-9)
		assert.InDelta(t, 20.0, Headroom(movements, ptr(day("2024-01-15"))), 1e-9)
	})

	t.Run("no later movements equals balance", func(t *testing.T) {
		assert.InDelta(t, 20.0, Headroom(movements, ptr(day("2024-02-01"))), 1e-9)
		assert.InDelta(t, 20.0, Headroom(movements, nil), 1e-9)
	})

	t.Run("later buys do not add headroom", func(t *testing.T) {
		withBuy := append(append([]model.Movement(nil), movements...), buy("2024-03-01", 500))
		assert.InDelta(t, 20.0, Headroom(withBuy, ptr(day("2024-02-01"))), 1e-9)
	})

	t.Run("before any buy", func(t *testing.T) {
		assert.Zero(t, Headroom(movements, ptr(day("2024-01-01"))))
	})
}

func TestCheckSellAt(t *testing.T) {
	movements := []model.Movement{buy("2024-01-10", 100), sell("2024-01-20", 80)}

	t.Run("backdated sell limited by later sells", func(t *testing.T) {
		check := CheckSellAt(movements, 21, day("2024-01-15"))
		assert.False(t, check.Allowed)
		assert.InDelta(t, 20.0, check.Available, 1e-9)

		assert.True(t, CheckSellAt(movements, 20, day("2024-01-15")).Allowed)
	})

	t.Run("current sell uses the balance", func(t *testing.T) {
		assert.True(t, CheckSellAt(movements, 20, day("2024-02-01")).Allowed)
		assert.False(t, CheckSellAt(movements, 20.5, day("2024-02-01")).Allowed)
	})
}

func TestMinRunningBalance(t *testing.T) {
	assert.Zero(t, MinRunningBalance(nil))
	assert.InDelta(t, 20.0, MinRunningBalance([]model.Movement{sell("2024-01-20", 80), buy("2024-01-10", 100)}), 1e-9)
	assert.InDelta(t, -10.0, MinRunningBalance([]model.Movement{buy("2024-01-10", 10), sell("2024-01-05", 10)}), 1e-9)

	t.Run("same day movements apply together", func(t *testing.T) {
		sameDay := []model.Movement{sell("2024-01-10", 10), buy("2024-01-10", 10)}
		assert.Zero(t, MinRunningBalance(sameDay))
	})
}

func TestHoldings(t *testing.T) {
	movements := []model.Movement{
		buy("2024-01-01", 100),
		sell("2024-02-01", 40),
		{ClientID: "c", PortfolioID: "p", SecurityID: "ggal", Type: model.MovementBuy, Date: day("2024-01-01"), Quantity: 5},
		{ClientID: "c", PortfolioID: "p", SecurityID: "ggal", Type: model.MovementSell, Date: day("2024-03-01"), Quantity: 5},
		{ClientID: "c", PortfolioID: "a", SecurityID: "al30", Type: model.MovementBuy, Date: day("2024-01-01"), Quantity: 3},
	}

	t.Run("closed positions are dropped", func(t *testing.T) {
		holdings := Holdings(movements, nil)
		require.Len(t, holdings, 2)
		assert.Equal(t, "a", holdings[0].PortfolioID)
		assert.Equal(t, "ypf", holdings[1].SecurityID)
		assert.InDelta(t, 60.0, holdings[1].Balance, 1e-9)
	})

	t.Run("as of a date", func(t *testing.T) {
		holdings := Holdings(movements, ptr(day("2024-01-15")))
		require.Len(t, holdings, 3)
		assert.Equal(t, "ggal", holdings[1].SecurityID)
	})
}
