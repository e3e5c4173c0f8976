package baseline

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"casos-validator/domain/baseline"

	"gopkg.in/yaml.v3"
)

//go:embed baseline.yml
var defaultSnapshot []byte

// Default returns the snapshot compiled into the binary.
func Default() (baseline.Snapshot, error) {
	s, err := Parse(defaultSnapshot)
	if err != nil {
		return baseline.Snapshot{}, fmt.Errorf("embedded baseline: %w", err)
	}
	return s, nil
}

// Load parses the YAML snapshot file at path.
func Load(path string) (baseline.Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return baseline.Snapshot{}, err
	}
	s, err := Parse(b)
	if err != nil {
		return baseline.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info(fmt.Sprintf("Loaded baseline: %s", path))
	return s, nil
}

// Parse decodes a YAML snapshot. Currency codes are upper-cased.
func Parse(b []byte) (baseline.Snapshot, error) {
	var s baseline.Snapshot
	if err := yaml.Unmarshal(b, &s); err != nil {
		return baseline.Snapshot{}, err
	}
	if s.TotalCasos < 0 {
		return baseline.Snapshot{}, fmt.Errorf("total_casos must not be negative, got %d", s.TotalCasos)
	}
	if len(s.Monedas) > 0 {
		monedas := make(map[string]baseline.CurrencyTotal, len(s.Monedas))
		for code, t := range s.Monedas {
			monedas[strings.ToUpper(strings.TrimSpace(code))] = t
		}
		s.Monedas = monedas
	}
	return s, nil
}
