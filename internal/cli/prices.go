package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/app"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/pricing"
)

type importPricesCmd struct {
	env  *Env
	file string
	date string
}

func (*importPricesCmd) Name() string     { return "import-prices" }
func (*importPricesCmd) Synopsis() string { return "import a broker price export" }
func (*importPricesCmd) Usage() string {
	return `import-prices -file <export> [-date YYYY-MM-DD]

  Stores the (name, price) pairs found in a broker export as the price list
  of -date (today by default). Keys already present for that day are
  overwritten.
`
}

func (c *importPricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Path to the price export (required)")
	f.StringVar(&c.date, "date", "", "Day the prices apply to, YYYY-MM-DD (default today)")
}

func (c *importPricesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		return c.env.usage("-file is required")
	}
	day, err := dayOrToday(c.date)
	if err != nil {
		return c.env.usage("%v", err)
	}

	data, err := os.ReadFile(c.file)
	if err != nil {
		fmt.Fprintf(c.env.Err, "Error reading %s: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	return c.env.run(ctx, func(a *app.App) error {
		resp, err := a.Services.Price.ImportPrices(ctx, pricing.DecodeExport(data), day)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "imported %d keys for %d tickers as of %s\n", resp.Entries, resp.Tickers, resp.AsOfDate)
		return nil
	})
}
