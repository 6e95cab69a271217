package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/app"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/database"
)

type migrateCmd struct {
	env *Env
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending schema migrations" }
func (*migrateCmd) Usage() string {
	return `migrate

  Applies every pending migration to the database at DB_PATH and prints the
  resulting schema version.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(a *app.App) error {
		if _, err := database.Migrate(ctx, a.DB); err != nil {
			return err
		}
		v, err := database.SchemaVersion(ctx, a.DB)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "schema at version %d\n", v)
		return nil
	})
}
