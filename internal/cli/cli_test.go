package cli

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/app"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/config"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/secret"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/testutil"
)

type testEnv struct {
	*Env
	db  *sql.DB
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{}
	cfg.Valuation.Workers = 2

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Env: &Env{
			Open: func(context.Context) (*app.App, error) {
				return app.New(db, cfg, testutil.Logger())
			},
			Out:    out,
			Err:    errOut,
			Locale: language.English,
		},
		db:  db,
		out: out,
		err: errOut,
	}
}

// execute runs cmd the way subcommands.Commander does: flags first, then Execute.
func execute(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs)
}

func TestMigrate(t *testing.T) {
	env := newTestEnv(t)

	status := execute(t, &migrateCmd{env: env.Env})

	assert.Equal(t, subcommands.ExitSuccess, status, env.err.String())
	assert.Equal(t, "schema at version 2\n", env.out.String())
}

func TestKeygen(t *testing.T) {
	env := newTestEnv(t)

	status := execute(t, &keygenCmd{env: env.Env})

	require.Equal(t, subcommands.ExitSuccess, status)
	_, err := secret.New(strings.TrimSpace(env.out.String()))
	assert.NoError(t, err, "generated key should be accepted as ENCRYPTION_KEY")
}

func TestImportPrices(t *testing.T) {
	dir := t.TempDir()
	export := filepath.Join(dir, "precios.csv")
	require.NoError(t, os.WriteFile(export, []byte("Tipo;Especie;Descripcion;Moneda;Cantidad;Ultimo\nAcciones;YPFD;YPF S.A.;ARS;100;1234,50\n"), 0o600))

	t.Run("imports the file for the given day", func(t *testing.T) {
		env := newTestEnv(t)

		status := execute(t, &importPricesCmd{env: env.Env}, "-file", export, "-date", "2024-05-10")

		require.Equal(t, subcommands.ExitSuccess, status, env.err.String())
		assert.Contains(t, env.out.String(), "for 1 tickers as of 2024-05-10")
		assert.Positive(t, testutil.CountRows(t, env.db, "price_entry"))
	})

	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"missing file flag", nil, subcommands.ExitUsageError},
		{"bad date", []string{"-file", export, "-date", "10/05/2024"}, subcommands.ExitUsageError},
		{"file does not exist", []string{"-file", filepath.Join(dir, "missing.csv")}, subcommands.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			status := execute(t, &importPricesCmd{env: env.Env}, tt.args...)

			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, env.err.String())
			testutil.AssertRowCount(t, env.db, "price_entry", 0)
		})
	}
}

func TestBalance(t *testing.T) {
	env := newTestEnv(t)
	client := testutil.CreateClient(t, env.db, "Ana")
	portfolio := testutil.CreatePortfolio(t, env.db, client.ID, "Main")
	sec := testutil.CreateSecurity(t, env.db, "YPF")
	testutil.NewMovement(client.ID, portfolio.ID, sec.ID).Buy(100).WithDate(testutil.Day("2024-01-01")).Build(t, env.db)
	testutil.NewMovement(client.ID, portfolio.ID, sec.ID).Sell(37.5).WithDate(testutil.Day("2024-02-01")).Build(t, env.db)

	tests := []struct {
		name string
		date string
		want string
	}{
		{"current", "", "62.5\n"},
		{"before the sell", "2024-01-31", "100\n"},
		{"before any movement", "2023-12-31", "0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.out.Reset()
			args := []string{"-client", client.ID, "-portfolio", portfolio.ID, "-security", sec.ID}
			if tt.date != "" {
				args = append(args, "-date", tt.date)
			}

			status := execute(t, &balanceCmd{env: env.Env}, args...)

			require.Equal(t, subcommands.ExitSuccess, status, env.err.String())
			assert.Equal(t, tt.want, env.out.String())
		})
	}

	t.Run("ids must be UUIDs", func(t *testing.T) {
		status := execute(t, &balanceCmd{env: env.Env}, "-client", client.ID, "-portfolio", "main", "-security", sec.ID)

		assert.Equal(t, subcommands.ExitUsageError, status)
		assert.Contains(t, env.err.String(), "-portfolio must be a UUID")
	})
}

func TestValueAndSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ana := testutil.CreateClient(t, env.db, "Ana")
	portfolio := testutil.CreatePortfolio(t, env.db, ana.ID, "Retiro")
	ypf := testutil.CreateSecurity(t, env.db, "YPF")
	bono := testutil.CreateSecurity(t, env.db, "Bono Privado XYZ")
	testutil.NewMovement(ana.ID, portfolio.ID, ypf.ID).Buy(10).WithDate(testutil.Day("2024-05-01")).Build(t, env.db)
	testutil.NewMovement(ana.ID, portfolio.ID, bono.ID).Buy(3).WithDate(testutil.Day("2024-05-01")).Build(t, env.db)
	testutil.CreatePriceEntry(t, env.db, testutil.Day("2024-05-02"), "ypfd", 1234.5, true)

	t.Run("one client lists holdings", func(t *testing.T) {
		env.out.Reset()

		status := execute(t, &valueCmd{env: env.Env}, "-client", ana.ID, "-date", "2024-05-02")

		require.Equal(t, subcommands.ExitSuccess, status, env.err.String())
		out := env.out.String()
		assert.Contains(t, out, "Ana")
		assert.Contains(t, out, "(prices of 2024-05-02)")
		for _, line := range strings.Split(out, "\n") {
			if strings.Contains(line, "Bono Privado XYZ") {
				assert.True(t, strings.HasSuffix(strings.TrimSpace(line), "-"), "unpriced holding should show no value: %q", line)
			}
		}
	})

	t.Run("whole book", func(t *testing.T) {
		env.out.Reset()

		status := execute(t, &valueCmd{env: env.Env}, "-date", "2024-05-02")

		require.Equal(t, subcommands.ExitSuccess, status, env.err.String())
		assert.Contains(t, env.out.String(), "Ana")
		assert.Contains(t, env.out.String(), "total")
	})

	t.Run("unknown client fails", func(t *testing.T) {
		status := execute(t, &valueCmd{env: env.Env}, "-client", testutil.MakeID())

		assert.Equal(t, subcommands.ExitFailure, status)
	})

	t.Run("snapshot", func(t *testing.T) {
		env.out.Reset()

		status := execute(t, &snapshotCmd{env: env.Env}, "-date", "2024-05-02")

		require.Equal(t, subcommands.ExitSuccess, status, env.err.String())
		assert.Contains(t, env.out.String(), "stored 1 snapshots for 2024-05-02")
		testutil.AssertRowCount(t, env.db, "valuation_snapshot", 1)
	})
}
