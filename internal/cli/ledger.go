package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/app"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

type balanceCmd struct {
	env       *Env
	client    string
	portfolio string
	security  string
	date      string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "print the balance of a security in a portfolio" }
func (*balanceCmd) Usage() string {
	return `balance -client <id> -portfolio <id> -security <id> [-date YYYY-MM-DD]

  Prints the net quantity held, counting movements dated on or before -date
  (every movement when omitted).
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Client id (required)")
	f.StringVar(&c.portfolio, "portfolio", "", "Portfolio id (required)")
	f.StringVar(&c.security, "security", "", "Security id (required)")
	f.StringVar(&c.date, "date", "", "Balance as of this day, YYYY-MM-DD")
}

func (c *balanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	for _, id := range []struct{ flag, value string }{
		{"client", c.client},
		{"portfolio", c.portfolio},
		{"security", c.security},
	} {
		if _, err := uuid.Parse(id.value); err != nil {
			return c.env.usage("-%s must be a UUID, got %q", id.flag, id.value)
		}
	}
	asOf, err := parseDay(c.date)
	if err != nil {
		return c.env.usage("%v", err)
	}

	return c.env.run(ctx, func(a *app.App) error {
		b, err := a.Services.Ledger.ComputeBalance(ctx, model.Triple{
			ClientID:    c.client,
			PortfolioID: c.portfolio,
			SecurityID:  c.security,
		}, asOf)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.env.Out, strconv.FormatFloat(b.Quantity, 'f', -1, 64))
		return nil
	})
}
