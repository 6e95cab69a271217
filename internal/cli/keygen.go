package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/secret"
)

type keygenCmd struct {
	env *Env
}

func (*keygenCmd) Name() string     { return "keygen" }
func (*keygenCmd) Synopsis() string { return "print a new ENCRYPTION_KEY" }
func (*keygenCmd) Usage() string {
	return `keygen

  Prints a fresh key for sealing client contact details. Set it as
  ENCRYPTION_KEY before the first client is created; contact details sealed
  under one key cannot be read under another.
`
}

func (*keygenCmd) SetFlags(*flag.FlagSet) {}

func (c *keygenCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	key, err := secret.GenerateKey()
	if err != nil {
		fmt.Fprintf(c.env.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.env.Out, key)
	return subcommands.ExitSuccess
}
