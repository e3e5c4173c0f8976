package validate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"casos-validator/command/serve"
	"casos-validator/command/validate"
	cbaseline "casos-validator/connectors/baseline"
	"casos-validator/connectors/casos"

	"github.com/stretchr/testify/require"
)

// fixture returns n casos; the first one carries the given amounts, the rest are empty.
func fixture(t *testing.T, n int, fee, costoUsd, monto any) []map[string]any {
	t.Helper()

	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{"id": i + 1}
	}
	if n > 0 {
		out[0]["fee"] = fee
		out[0]["costoUsd"] = costoUsd
		out[0]["montoAgregado"] = monto
	}
	return out
}

// startApp serves casos through the fixture server, standing in for the application.
func startApp(t *testing.T, records any) string {
	t.Helper()

	b, err := json.Marshal(records)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "casos.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	srv := httptest.NewServer(serve.NewServer(path))
	t.Cleanup(srv.Close)
	return srv.URL + "/api/casos"
}

func run(t *testing.T, url string, detail bool) (string, bool) {
	t.Helper()

	snap, err := cbaseline.Default()
	require.NoError(t, err)

	var out bytes.Buffer
	ok := validate.Validate(context.Background(), &out, validate.Options{
		Client:   casos.New(nil, url),
		Baseline: snap,
		Detail:   detail,
	})
	return out.String(), ok
}

func TestValidate(t *testing.T) {
	t.Parallel()

	header := "=== VALIDACIÓN DE DATOS ===\n"
	ok := "\n✅ No se encontraron discrepancias significativas\n"

	tests := map[string]struct {
		casos any

		want   string
		wantOK bool
	}{
		"Totals match the spreadsheet": {
			casos: fixture(t, 289, 12930.00, "76343.49", "4649.56"),
			want: header +
				"Total casos - Excel: 289, App: 289\n" +
				"Fee total - Excel: $12930.00, App: $12930.00\n" +
				"Costo USD - Excel: $76343.49, App: $76343.49\n" +
				"Monto Agregado - Excel: $4649.56, App: $4649.56\n" +
				"Total Completo - Excel: $93923.05, App: $93923.05\n" +
				ok,
			wantOK: true,
		},
		"Fee off by exactly the tolerance": {
			casos: fixture(t, 289, "12930.01", "76343.49", nil),
			want: header +
				"Total casos - Excel: 289, App: 289\n" +
				"Fee total - Excel: $12930.00, App: $12930.01\n" +
				"Costo USD - Excel: $76343.49, App: $76343.49\n" +
				"Monto Agregado - Excel: $4649.56, App: $0.00\n" +
				"Total Completo - Excel: $93923.05, App: $89273.50\n" +
				ok,
			wantOK: true,
		},
		"Fee off by more than the tolerance": {
			casos: fixture(t, 289, 12930.02, 76343.49, 4649.56),
			want: header +
				"Total casos - Excel: 289, App: 289\n" +
				"Fee total - Excel: $12930.00, App: $12930.02\n" +
				"Costo USD - Excel: $76343.49, App: $76343.49\n" +
				"Monto Agregado - Excel: $4649.56, App: $4649.56\n" +
				"Total Completo - Excel: $93923.05, App: $93923.07\n" +
				"\n⚠️ DISCREPANCIAS ENCONTRADAS:\n" +
				"  - Fee: diff = $0.02\n",
		},
		"Missing casos": {
			casos: fixture(t, 287, 12930.00, 76343.49, 4649.56),
			want: header +
				"Total casos - Excel: 289, App: 287\n" +
				"Fee total - Excel: $12930.00, App: $12930.00\n" +
				"Costo USD - Excel: $76343.49, App: $76343.49\n" +
				"Monto Agregado - Excel: $4649.56, App: $4649.56\n" +
				"Total Completo - Excel: $93923.05, App: $93923.05\n" +
				"\n⚠️ DISCREPANCIAS ENCONTRADAS:\n" +
				"  - Total casos: diff = -2\n",
		},
		"Empty collection": {
			casos: []any{},
			want: header +
				"Total casos - Excel: 289, App: 0\n" +
				"Fee total - Excel: $12930.00, App: $0.00\n" +
				"Costo USD - Excel: $76343.49, App: $0.00\n" +
				"Monto Agregado - Excel: $4649.56, App: $0.00\n" +
				"Total Completo - Excel: $93923.05, App: $0.00\n" +
				"\n⚠️ DISCREPANCIAS ENCONTRADAS:\n" +
				"  - Total casos: diff = -289\n" +
				"  - Fee: diff = $-12930.00\n" +
				"  - Costo USD: diff = $-76343.49\n",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, gotOK := run(t, startApp(t, tc.casos), false)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.wantOK, gotOK)
		})
	}
}

func TestValidateFetchFailures(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status int
		body   string
		closed bool

		wantPrefix string
	}{
		"Server error":    {status: http.StatusInternalServerError, wantPrefix: "Error: No se pudo conectar a la aplicación (HTTP 500)"},
		"Not found":       {status: http.StatusNotFound, wantPrefix: "Error: No se pudo conectar a la aplicación (HTTP 404)"},
		"Malformed JSON":  {status: http.StatusOK, body: "<html>", wantPrefix: "Error durante la validación: "},
		"Bad amount":      {status: http.StatusOK, body: `[{"fee": "abc"}]`, wantPrefix: "Error durante la validación: "},
		"App not running": {closed: true, wantPrefix: "Error durante la validación: "},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			url := srv.URL + "/api/casos"
			if tc.closed {
				srv.Close()
			} else {
				t.Cleanup(srv.Close)
			}

			got, ok := run(t, url, true)
			require.False(t, ok)
			require.True(t, strings.HasPrefix(got, tc.wantPrefix), "Output should start with %q, got %q", tc.wantPrefix, got)
			require.Equal(t, 1, strings.Count(got, "\n"), "Failures should print exactly one line")
		})
	}
}

func TestValidateDetail(t *testing.T) {
	t.Parallel()

	records := fixture(t, 289, 12930.00, 76343.49, 4649.56)
	records[1]["costoMonedaLocal"] = "100.50"
	records[1]["simboloMoneda"] = "usd"
	records[2]["costoMonedaLocal"] = 7
	records[2]["simboloMoneda"] = "CLP"

	got, ok := run(t, startApp(t, records), true)
	require.True(t, ok, "Detail lines never raise discrepancies")

	_, detail, found := strings.Cut(got, "\n=== DETALLE (informativo) ===\n")
	require.True(t, found, "Detail section should be printed")
	require.Equal(t,
		"Casos con fee - Excel: 143, App: 1\n"+
			"Casos con costo USD - Excel: 92, App: 1\n"+
			"Casos con monto agregado - Excel: 4, App: 1\n"+
			"Moneda ARS - Excel: $478112.00 (4 casos), App: $0.00 (0 casos)\n"+
			"Moneda CLP - Excel: $0.00 (0 casos), App: $7.00 (1 casos)\n"+
			"Moneda EUR - Excel: $1650.79 (4 casos), App: $0.00 (0 casos)\n"+
			"Moneda MXN - Excel: $3808.00 (1 casos), App: $0.00 (0 casos)\n"+
			"Moneda USD - Excel: $30825.38 (62 casos), App: $100.50 (1 casos)\n",
		detail)
}

func TestRunRejectsArguments(t *testing.T) {
	t.Parallel()

	require.Error(t, validate.Run([]string{"extra"}))
	require.Error(t, validate.Run([]string{"-unknown"}))
	require.Error(t, validate.Run([]string{"-baseline", filepath.Join(t.TempDir(), "missing.yml")}))
}
