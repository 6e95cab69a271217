// Package cli implements the backofficectl subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/app"
)

// Env is what every subcommand runs against.
type Env struct {
	// Open returns a wired application. The subcommand closes it.
	Open func(ctx context.Context) (*app.App, error)
	Out  io.Writer
	Err  io.Writer
	// Locale drives number formatting in reports.
	Locale language.Tag
}

// Register the subcommands.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(&migrateCmd{env: env}, "database")
	c.Register(&keygenCmd{env: env}, "database")

	c.Register(&importPricesCmd{env: env}, "prices")

	c.Register(&balanceCmd{env: env}, "ledger")

	c.Register(&valueCmd{env: env}, "valuation")
	c.Register(&snapshotCmd{env: env}, "valuation")
}

// run opens the application, hands it to fn and maps the outcome to an exit status.
func (e *Env) run(ctx context.Context, fn func(*app.App) error) subcommands.ExitStatus {
	a, err := e.Open(ctx)
	if err != nil {
		fmt.Fprintf(e.Err, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := fn(a); err != nil {
		fmt.Fprintf(e.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (e *Env) usage(format string, args ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(e.Err, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

func (e *Env) printer() *message.Printer {
	return message.NewPrinter(e.Locale)
}

// parseDay parses a -date flag. An empty flag yields nil.
func parseDay(s string) (*time.Time, error) {
	d, err := request.ParseOptionalDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid -date: %w", err)
	}
	return d, nil
}

// dayOrToday is parseDay with today as the default.
func dayOrToday(s string) (time.Time, error) {
	d, err := parseDay(s)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	return *d, nil
}
