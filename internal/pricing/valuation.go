package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

// Valuation is the result of pricing a set of holdings.
type Valuation struct {
	Lines      []model.ValuationLine
	Subtotal   float64
	Unresolved int
}

// ValuePortfolio prices each holding through the table. Holdings that do not
// resolve keep a nil price and value and are left out of the subtotal; they
// are never valued at zero. Line values are exact; only the subtotal is
// rounded to cents. A nil table leaves every line unresolved.
func ValuePortfolio(holdings []model.Holding, t *Table) Valuation {
	v := Valuation{Lines: make([]model.ValuationLine, 0, len(holdings))}
	subtotal := decimal.Zero

	for _, h := range holdings {
		line := model.ValuationLine{Holding: h}
		price, ok := t.Resolve(h.SecurityName)
		if !ok {
			v.Unresolved++
			v.Lines = append(v.Lines, line)
			continue
		}

		value := decimal.NewFromFloat(h.Balance).Mul(decimal.NewFromFloat(price))
		subtotal = subtotal.Add(value)

		p := price
		f := value.InexactFloat64()
		line.Price = &p
		line.Value = &f
		v.Lines = append(v.Lines, line)
	}

	v.Subtotal = subtotal.Round(2).InexactFloat64()
	return v
}
