// Package batch loads several weeks of driver data from a YAML, JSON or CSV
// file. Every week starts from a set of default inputs, so a file only needs
// the per-week figures.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/gigwage/core/model"
)

// Week is one entry of a batch file.
type Week struct {
	Label        string `json:"label" yaml:"label"`
	model.Inputs `yaml:",inline"`
}

// Load reads path, picking the decoder from its extension.
func Load(path string, defaults model.Inputs) ([]Week, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var weeks []Week
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		weeks, err = LoadYAML(f, defaults)
	case ".json":
		weeks, err = LoadJSON(f, defaults)
	case ".csv":
		weeks, err = LoadCSV(f, defaults)
	default:
		return nil, fmt.Errorf("unsupported batch format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return weeks, nil
}

// LoadYAML decodes a YAML sequence of weeks.
func LoadYAML(r io.Reader, defaults model.Inputs) ([]Week, error) {
	var nodes []yaml.Node
	if err := yaml.NewDecoder(r).Decode(&nodes); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	weeks := make([]Week, 0, len(nodes))
	for i := range nodes {
		w := newWeek(i, defaults)
		if err := nodes[i].Decode(&w); err != nil {
			return nil, fmt.Errorf("week %d: %w", i+1, err)
		}
		weeks = append(weeks, normalize(w))
	}
	return weeks, nil
}

// LoadJSON decodes a JSON array of weeks.
func LoadJSON(r io.Reader, defaults model.Inputs) ([]Week, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	weeks := make([]Week, 0, len(raw))
	for i, msg := range raw {
		w := newWeek(i, defaults)
		if err := json.Unmarshal(msg, &w); err != nil {
			return nil, fmt.Errorf("week %d: %w", i+1, err)
		}
		weeks = append(weeks, normalize(w))
	}
	return weeks, nil
}

type setter func(in *model.Inputs, v float64)

var csvColumns = map[string]setter{
	"grossearnings":    func(in *model.Inputs, v float64) { in.GrossEarnings = v },
	"hoursonline":      func(in *model.Inputs, v float64) { in.HoursOnline = v },
	"milesdriven":      func(in *model.Inputs, v float64) { in.MilesDriven = v },
	"mpg":              func(in *model.Inputs, v float64) { in.MPG = v },
	"gasprice":         func(in *model.Inputs, v float64) { in.GasPrice = v },
	"irsmileagerate":   func(in *model.Inputs, v float64) { in.IRSMileageRate = v },
	"depreciationrate": func(in *model.Inputs, v float64) { in.DepreciationRate = v },
	"taxrate":          func(in *model.Inputs, v float64) { in.TaxRate = v },
}

// LoadCSV decodes a CSV file whose header names the input fields, e.g.
// "label,grossEarnings,hoursOnline,milesDriven,calculationMode". Header
// names are case-insensitive and empty cells keep the default value.
func LoadCSV(r io.Reader, defaults model.Inputs) ([]Week, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cols := make([]string, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, ok := csvColumns[name]; !ok && name != "label" && name != "calculationmode" {
			return nil, fmt.Errorf("unknown column %q", h)
		}
		cols[i] = name
	}

	var weeks []Week
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		w := newWeek(len(weeks), defaults)
		for i, cell := range rec {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			switch cols[i] {
			case "label":
				w.Label = cell
			case "calculationmode":
				w.Mode = model.CalculationMode(cell)
			default:
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d column %s: %w", line, header[i], err)
				}
				csvColumns[cols[i]](&w.Inputs, v)
			}
		}
		weeks = append(weeks, normalize(w))
	}
	return weeks, nil
}

func newWeek(i int, defaults model.Inputs) Week {
	return Week{Label: fmt.Sprintf("week %d", i+1), Inputs: defaults}
}

// normalize accepts modes written as "IRS" or " Actual ". Unknown modes are
// kept as is and rejected later by validation.
func normalize(w Week) Week {
	if m, err := model.ParseMode(string(w.Mode)); err == nil {
		w.Mode = m
	}
	return w
}
