// Package scenarios replays YAML-described calculations through the full
// calculator pipeline and checks the published results and metrics.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/gigwage/core/model"
)

// Expected describes the outcome of a scenario. Results are keyed by the
// JSON name of the model.Results field, e.g. "netProfit".
type Expected struct {
	Rejected []string           `yaml:"rejected,omitempty"`
	Results  map[string]float64 `yaml:"results,omitempty"`
	Mode     string             `yaml:"mode,omitempty"`
}

type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Inputs      model.Inputs `yaml:"inputs"`
	Expected    Expected     `yaml:"expected"`
}

// Load reads one scenario. Inputs start from model.DefaultInputs.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := Scenario{Inputs: model.DefaultInputs()}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario name is required", path)
	}
	if m, err := model.ParseMode(string(sc.Inputs.Mode)); err == nil {
		sc.Inputs.Mode = m
	}
	return &sc, nil
}
