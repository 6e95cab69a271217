package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"golang.org/x/text/message"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/app"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

type valueCmd struct {
	env    *Env
	client string
	date   string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value one client or the whole book" }
func (*valueCmd) Usage() string {
	return `value [-client <id>] [-date YYYY-MM-DD]

  With -client, prints every holding of the client with its price and value.
  Without it, prints one total per client and the grand total. Holdings
  whose name matches nothing on the price list print "-" and are left out of
  the totals.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Client id")
	f.StringVar(&c.date, "date", "", "Valuation day, YYYY-MM-DD (default today)")
}

func (c *valueCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client != "" {
		if _, err := uuid.Parse(c.client); err != nil {
			return c.env.usage("-client must be a UUID, got %q", c.client)
		}
	}
	asOf, err := parseDay(c.date)
	if err != nil {
		return c.env.usage("%v", err)
	}

	return c.env.run(ctx, func(a *app.App) error {
		if c.client != "" {
			v, err := a.Services.Valuation.ValueClient(ctx, c.client, asOf)
			if err != nil {
				return err
			}
			writeClient(c.env.Out, c.env.printer(), v)
			return nil
		}

		v, err := a.Services.Valuation.ValueAll(ctx, asOf)
		if err != nil {
			return err
		}
		writeGlobal(c.env.Out, c.env.printer(), v)
		return nil
	})
}

func writeClient(out io.Writer, p *message.Printer, v model.ClientValuation) {
	fmt.Fprintf(out, "%s  %s  (prices of %s)\n\n", v.ClientName, v.Date, orDash(v.PriceDate))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "portfolio\tsecurity\tbalance\tprice\tvalue\t")
	for _, pv := range v.Portfolios {
		for _, l := range pv.Lines {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				pv.PortfolioName, l.SecurityName, p.Sprintf("%v", l.Balance), amount(p, l.Price), amount(p, l.Value))
		}
	}
	fmt.Fprintf(w, "\t\t\t\t%s\t\n", p.Sprintf("%.2f", v.Total))
	w.Flush()
}

func writeGlobal(out io.Writer, p *message.Printer, v model.GlobalValuation) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "client\tunresolved\ttotal\t")
	for _, cv := range v.Clients {
		unresolved := 0
		for _, pv := range cv.Portfolios {
			unresolved += pv.Unresolved
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t\n", cv.ClientName, unresolved, p.Sprintf("%.2f", cv.Total))
	}
	fmt.Fprintf(w, "total\t\t%s\t\n", p.Sprintf("%.2f", v.Total))
	w.Flush()
}

func amount(p *message.Printer, v *float64) string {
	if v == nil {
		return "-"
	}
	return p.Sprintf("%.2f", *v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type snapshotCmd struct {
	env  *Env
	date string
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "store today's valuation of every client" }
func (*snapshotCmd) Usage() string {
	return `snapshot [-date YYYY-MM-DD]

  Values every client and stores one snapshot per client for -date (today by
  default), replacing any snapshot already stored for that day. The server
  runs the same job on SNAPSHOT_SCHEDULE.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Snapshot day, YYYY-MM-DD (default today)")
}

func (c *snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := dayOrToday(c.date)
	if err != nil {
		return c.env.usage("%v", err)
	}

	return c.env.run(ctx, func(a *app.App) error {
		start := time.Now()
		n, err := a.Services.Valuation.SnapshotAll(ctx, day)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "stored %d snapshots for %s in %s\n", n, day.Format("2006-01-02"), time.Since(start).Round(time.Millisecond))
		return nil
	})
}
