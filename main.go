package main

import (
	cmdserve "casos-validator/command/serve"
	cmdvalidate "casos-validator/command/validate"
	"fmt"
	"log/slog"
	"os"
)

// Reconciliation check of the casos API against the spreadsheet totals.
// Usage:
//   go run .                      # validate http://localhost:3000/api/casos
//   go run . validate [-url <endpoint>] [-baseline <file.yml>] [-detail]
//   go run . serve [-addr :3000] [-data ./casos.json]
// Notes:
// - validate always exits 0 once its flags parse; connectivity problems and
//   discrepancies are part of the printed report.
// - serve exposes a local JSON or CSV export at /api/casos for dry runs.

func main() {
	args := os.Args
	// Initialize slog logger (text to stderr); the report itself goes to stdout.
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(h))

	if len(args) < 2 {
		if err := cmdvalidate.Run(nil); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	sub := args[1]
	rest := append([]string{}, args[2:]...)
	switch sub {
	case "validate":
		if err := cmdvalidate.Run(rest); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	case "serve":
		if err := cmdserve.Run(rest); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	fmt.Fprintln(os.Stderr, "usage: casos-validator [validate [-url <endpoint>] [-baseline <file.yml>] [-detail]] | serve [-addr :3000] [-data ./casos.json]")
	os.Exit(2)
}
