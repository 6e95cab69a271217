package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/testutil"
)

const brokerExport = "\ufeffTipo;Especie;Descripcion;Moneda;Cantidad;Ultimo\r\n" +
	"Acciones;YPFD;YPF S.A.;ARS;100;1234,50\r\n" +
	"Acciones;GGAL;Grupo Galicia;ARS;20;$ 3.050,00\r\n" +
	"Total;;;;;4284,50\r\n"

// TestPriceService_ImportPrices tests importing a broker price export.
//
// WHY: The import is the only way prices enter the system. Tickers and
// description keys must be stored for the upload day and each ticker must be
// known as a security afterwards.
func TestPriceService_ImportPrices(t *testing.T) {
	ctx := context.Background()

	t.Run("stores keys and tickers", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)

		// Execute
		resp, err := svc.ImportPrices(ctx, brokerExport, testutil.Day("2024-05-10"))

		// Assert
		if err != nil {
			t.Fatalf("ImportPrices() returned unexpected error: %v", err)
		}
		if resp.AsOfDate != "2024-05-10" {
			t.Errorf("Expected as-of 2024-05-10, got %s", resp.AsOfDate)
		}
		if resp.Tickers != 2 {
			t.Errorf("Expected 2 tickers, got %d", resp.Tickers)
		}
		if resp.Entries == 0 || resp.Entries != testutil.CountRows(t, db, "price_entry") {
			t.Errorf("Expected %d stored entries, got %d", resp.Entries, testutil.CountRows(t, db, "price_entry"))
		}
		testutil.AssertRowCount(t, db, "security", 2)

		table, _, err := svc.Mapping(ctx, testutil.Day("2024-05-10"))
		if err != nil {
			t.Fatalf("Mapping() returned unexpected error: %v", err)
		}
		for _, name := range []string{"YPFD", "YPF S.A.", "YPF"} {
			if price, ok := table.Resolve(name); !ok || price != 1234.5 {
				t.Errorf("Resolve(%q) = %v, %v; want 1234.5", name, price, ok)
			}
		}
		if price, ok := table.Resolve("Grupo Galicia"); !ok || price != 3050 {
			t.Errorf("Resolve(Grupo Galicia) = %v, %v; want 3050", price, ok)
		}
	})

	t.Run("file without prices stores nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)

		_, err := svc.ImportPrices(ctx, "Especie;Descripcion\nYPFD;YPF S.A.\nGGAL;Grupo Galicia\n", testutil.Day("2024-05-10"))

		if !errors.Is(err, apperrors.ErrNoPricePairs) {
			t.Errorf("Expected ErrNoPricePairs, got %v", err)
		}
		testutil.AssertRowCount(t, db, "price_entry", 0)
		testutil.AssertRowCount(t, db, "security", 0)
	})

	t.Run("re-import of the same day overwrites", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)
		day := testutil.Day("2024-05-10")

		if _, err := svc.ImportPrices(ctx, brokerExport, day); err != nil {
			t.Fatalf("ImportPrices() returned unexpected error: %v", err)
		}
		before := testutil.CountRows(t, db, "price_entry")

		// Load into the cache before the second import.
		if _, _, err := svc.Mapping(ctx, day); err != nil {
			t.Fatalf("Mapping() returned unexpected error: %v", err)
		}

		if _, err := svc.ImportPrices(ctx, "Acciones;YPFD;YPF S.A.;ARS;100;1300,00\n", day); err != nil {
			t.Fatalf("ImportPrices() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "price_entry", before)
		testutil.AssertRowCount(t, db, "security", 2)

		table, _, err := svc.Mapping(ctx, day)
		if err != nil {
			t.Fatalf("Mapping() returned unexpected error: %v", err)
		}
		if price, _ := table.Resolve("YPFD"); price != 1300 {
			t.Errorf("Expected overwritten price 1300, got %v", price)
		}
		if price, _ := table.Resolve("GGAL"); price != 3050 {
			t.Errorf("Expected untouched GGAL price 3050, got %v", price)
		}
	})

	t.Run("later derived key does not replace a ticker key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)
		day := testutil.Day("2024-05-10")

		if _, err := svc.ImportPrices(ctx, "Acciones;YPF;YPF S.A.;ARS;1;100,00\n", day); err != nil {
			t.Fatalf("ImportPrices() returned unexpected error: %v", err)
		}
		// YPFD derives "ypf" through the D-suffix toggle.
		if _, err := svc.ImportPrices(ctx, "Acciones;YPFD;YPF ADR;ARS;1;200,00\n", day); err != nil {
			t.Fatalf("ImportPrices() returned unexpected error: %v", err)
		}

		table, _, err := svc.Mapping(ctx, day)
		if err != nil {
			t.Fatalf("Mapping() returned unexpected error: %v", err)
		}
		if price, ok := table.Lookup("ypf"); !ok || price != 100 {
			t.Errorf("Lookup(ypf) = %v, %v; want ticker price 100", price, ok)
		}
		if price, ok := table.Lookup("ypfd"); !ok || price != 200 {
			t.Errorf("Lookup(ypfd) = %v, %v; want ticker price 200", price, ok)
		}
	})

	t.Run("category column is not taken for the ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db)
		raw := "Bonos;AL30;Bono 2030;USD;1;65,10\n" +
			"Bonos;GD30;Global 2030;USD;1;70,20\n" +
			"Cedear;AAPL;Apple;ARS;1;15000\n"

		resp, err := svc.ImportPrices(ctx, raw, testutil.Day("2024-05-10"))
		if err != nil {
			t.Fatalf("ImportPrices() returned unexpected error: %v", err)
		}
		if resp.Tickers != 3 {
			t.Errorf("Expected 3 tickers, got %d", resp.Tickers)
		}
		testutil.AssertRowCount(t, db, "security", 3)

		table, _, err := svc.Mapping(ctx, testutil.Day("2024-05-10"))
		if err != nil {
			t.Fatalf("Mapping() returned unexpected error: %v", err)
		}
		if price, ok := table.Resolve("AL30"); !ok || price != 65.1 {
			t.Errorf("Resolve(AL30) = %v, %v; want 65.1", price, ok)
		}
		if price, ok := table.Resolve("AAPL"); !ok || price != 15000 {
			t.Errorf("Resolve(AAPL) = %v, %v; want 15000", price, ok)
		}
	})
}

// TestPriceService_Mapping tests which upload day serves a date.
func TestPriceService_Mapping(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPriceService(t, db)

	testutil.CreatePriceEntry(t, db, testutil.Day("2024-05-01"), "ypfd", 1000, true)
	testutil.CreatePriceEntry(t, db, testutil.Day("2024-05-10"), "ypfd", 1200, true)

	tests := []struct {
		name    string
		asOf    string
		wantDay string
		want    float64
	}{
		{"exact upload day", "2024-05-10", "2024-05-10", 1200},
		{"between uploads uses the earlier one", "2024-05-09", "2024-05-01", 1000},
		{"after the last upload", "2024-06-30", "2024-05-10", 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetMapping(ctx, testutil.Day(tt.asOf))
			if err != nil {
				t.Fatalf("GetMapping() returned unexpected error: %v", err)
			}
			if resp.AsOfDate != tt.wantDay {
				t.Errorf("Expected day %s, got %s", tt.wantDay, resp.AsOfDate)
			}
			if resp.Prices["ypfd"] != tt.want {
				t.Errorf("Expected price %v, got %v", tt.want, resp.Prices["ypfd"])
			}
		})
	}

	t.Run("before the first upload", func(t *testing.T) {
		_, err := svc.GetMapping(ctx, testutil.Day("2024-04-30"))
		if !errors.Is(err, apperrors.ErrPriceListNotFound) {
			t.Errorf("Expected ErrPriceListNotFound, got %v", err)
		}
	})
}
