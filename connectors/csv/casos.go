package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"casos-validator/domain/caso"

	"github.com/shopspring/decimal"
)

// ReadCasosCSV reads a spreadsheet export of casos. The first row holds the
// headers; column names are matched case-insensitively and unknown columns
// are ignored. Empty cells leave the value absent.
func ReadCasosCSV(path string) ([]caso.Caso, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	res, err := ParseCasos(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// ParseCasos is ReadCasosCSV over an arbitrary reader.
func ParseCasos(r io.Reader) ([]caso.Caso, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []caso.Caso{}, nil
	}

	idx := indexMap(records[0])
	cell := func(row []string, col string) string {
		i, ok := idx[strings.ToLower(col)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	res := make([]caso.Caso, 0, len(records)-1)
	for n, row := range records[1:] {
		line := n + 2
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		var c caso.Caso
		if v := cell(row, "id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("line %d column id: %w", line, err)
			}
			c.ID = id
		}
		c.NroCasoAssistravel = cell(row, "nroCasoAssistravel")
		amounts := []struct {
			col string
			dst *decimal.NullDecimal
		}{
			{"fee", &c.Fee},
			{"costoUsd", &c.CostoUsd},
			{"costoMonedaLocal", &c.CostoMonedaLocal},
			{"montoAgregado", &c.MontoAgregado},
		}
		for _, a := range amounts {
			d, err := parseAmount(cell(row, a.col))
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, a.col, err)
			}
			*a.dst = d
		}
		if v := cell(row, "simboloMoneda"); v != "" {
			c.SimboloMoneda = &v
		}
		res = append(res, c)
	}
	return res, nil
}

// parseAmount accepts plain decimals and spreadsheet-style "$1,234.50".
func parseAmount(s string) (decimal.NullDecimal, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func indexMap(headers []string) map[string]int {
	m := map[string]int{}
	for i, h := range headers {
		m[strings.TrimSpace(strings.ToLower(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	return m
}
