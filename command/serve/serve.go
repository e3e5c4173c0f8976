package serve

import (
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	ccsv "casos-validator/connectors/csv"
	"casos-validator/domain/caso"

	"github.com/labstack/echo/v4"
)

// Run starts a small Echo server that stands in for the application's casos API,
// so the validator can be rehearsed against a local export.
//
// Usage:
//
//	casos-validator serve [-addr :3000] [-data ./casos.json]
//
// Endpoints:
//
//	GET /api/casos  -> <data> (.json array of casos, or .csv spreadsheet export)
func Run(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addr := fs.String("addr", ":3000", "http listen address (host:port)")
	data := fs.String("data", "./casos.json", "JSON or CSV file holding the casos to serve")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e := NewServer(*data)
	e.HideBanner = true
	slog.Info("serve.start", "addr", *addr, "data", *data)
	return e.Start(*addr)
}

// NewServer builds the Echo instance serving path at /api/casos.
// The file is read on every request so edits show up without a restart.
func NewServer(path string) *echo.Echo {
	e := echo.New()
	e.GET("/api/casos", func(c echo.Context) error {
		casos, err := readCasos(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return c.JSON(http.StatusNotFound, map[string]any{
					"error":   "file not found",
					"path":    path,
					"message": "casos file is missing",
				})
			}
			slog.Error("serve.read.error", "path", path, "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]any{
				"error":   err.Error(),
				"path":    path,
				"message": "failed to read casos",
			})
		}
		return c.JSON(http.StatusOK, casos)
	})
	return e
}

func readCasos(path string) ([]caso.Caso, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ccsv.ReadCasosCSV(path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []caso.Caso
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []caso.Caso{}
	}
	return out, nil
}
