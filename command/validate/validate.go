package validate

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	cbaseline "casos-validator/connectors/baseline"
	"casos-validator/connectors/casos"
	"casos-validator/domain/baseline"
	"casos-validator/domain/reconcile"
)

// Options controls one validation run.
type Options struct {
	Client   *casos.Client
	Baseline baseline.Snapshot
	// Detail appends the informational populated-count and currency section.
	Detail bool
}

// Run executes the validate command. Without flags it checks the local
// application at casos.DefaultURL against the embedded baseline.
// Fetch failures are reported on stdout and do not produce an error.
func Run(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	url := fs.String("url", casos.DefaultURL, "casos API endpoint")
	baselinePath := fs.String("baseline", "", "YAML baseline snapshot (default: embedded spreadsheet totals)")
	detail := fs.Bool("detail", false, "also print populated counts and per-currency totals")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("validate: unexpected arguments %v", fs.Args())
	}

	var (
		snap baseline.Snapshot
		err  error
	)
	if *baselinePath != "" {
		snap, err = cbaseline.Load(*baselinePath)
	} else {
		snap, err = cbaseline.Default()
	}
	if err != nil {
		slog.Error("validate.baseline.error", "error", err)
		return err
	}

	Validate(context.Background(), os.Stdout, Options{
		Client:   casos.New(nil, *url),
		Baseline: snap,
		Detail:   *detail,
	})
	return nil
}

// Validate fetches the casos, aggregates them and writes the report to w.
// It reports whether the run completed with no discrepancies.
func Validate(ctx context.Context, w io.Writer, opts Options) bool {
	slog.Debug("validate.start", "url", opts.Client.URL())

	list, err := opts.Client.List(ctx)
	if err != nil {
		var se *casos.StatusError
		if errors.As(err, &se) {
			slog.Error("validate.fetch.status", "url", opts.Client.URL(), "status", se.Code)
			fmt.Fprintf(w, "Error: No se pudo conectar a la aplicación (HTTP %d)\n", se.Code)
			return false
		}
		slog.Error("validate.fetch.error", "url", opts.Client.URL(), "error", err)
		fmt.Fprintf(w, "Error durante la validación: %v\n", err)
		return false
	}

	res := reconcile.Aggregate(list)
	disc := reconcile.Compare(res, opts.Baseline)
	slog.Debug("validate.done", "casos", res.TotalCasos, "discrepancies", len(disc))

	writeTotals(w, res, opts.Baseline)
	writeDiscrepancies(w, disc)
	if opts.Detail {
		writeDetail(w, res, opts.Baseline)
	}
	return len(disc) == 0
}
