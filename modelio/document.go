// File: document.go
// Role: the intermediate document shape both the JSON(C) and YAML decoders
// produce, and its conversion into model.VarSpec (spec §6 schema).
package modelio

import (
	"fmt"

	"github.com/gocausal/docalc/model"
)

// rawDocument mirrors spec §6's root shape: { name?: string, model: {
// <var-name>: rawVarSpec } }.
type rawDocument struct {
	Name  string                `yaml:"name,omitempty" json:"name,omitempty"`
	Model map[string]rawVarSpec `yaml:"model" json:"model"`
}

// rawVarSpec mirrors spec §6's VarSpec: outcomes, optional parents, and an
// optional table of flat rows [outcome, parent₁-outcome, …, parentₖ-outcome,
// probability]. A nil Table marks the variable latent.
type rawVarSpec struct {
	Outcomes []string        `yaml:"outcomes" json:"outcomes"`
	Parents  []string        `yaml:"parents,omitempty" json:"parents,omitempty"`
	Table    [][]interface{} `yaml:"table,omitempty" json:"table,omitempty"`
}

// toSpecs converts the decoded document into the map NewModel expects.
func (d rawDocument) toSpecs() (map[string]model.VarSpec, error) {
	if d.Model == nil {
		return nil, fmt.Errorf("missing top-level \"model\" key: %w", ErrMalformedDocument)
	}
	specs := make(map[string]model.VarSpec, len(d.Model))
	for name, raw := range d.Model {
		spec, err := raw.toVarSpec(len(raw.Parents))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		specs[name] = spec
	}
	return specs, nil
}

func (r rawVarSpec) toVarSpec(parentCount int) (model.VarSpec, error) {
	spec := model.VarSpec{Outcomes: r.Outcomes, Parents: r.Parents}
	if r.Table == nil {
		return spec, nil
	}
	rows := make([]model.CPTRow, len(r.Table))
	for i, raw := range r.Table {
		row, err := parseRow(raw, parentCount)
		if err != nil {
			return model.VarSpec{}, fmt.Errorf("table row %d: %w", i, err)
		}
		rows[i] = row
	}
	spec.Table = rows
	return spec, nil
}

// parseRow splits a flat [outcome, parent-outcome..., probability] row.
func parseRow(raw []interface{}, parentCount int) (model.CPTRow, error) {
	wantLen := 1 + parentCount + 1
	if len(raw) != wantLen {
		return model.CPTRow{}, fmt.Errorf("expected %d fields, got %d: %w", wantLen, len(raw), ErrMalformedDocument)
	}
	outcome, ok := raw[0].(string)
	if !ok {
		return model.CPTRow{}, fmt.Errorf("field 0: expected string outcome: %w", ErrMalformedDocument)
	}
	parentOutcomes := make([]string, parentCount)
	for i := 0; i < parentCount; i++ {
		po, ok := raw[1+i].(string)
		if !ok {
			return model.CPTRow{}, fmt.Errorf("field %d: expected string parent outcome: %w", 1+i, ErrMalformedDocument)
		}
		parentOutcomes[i] = po
	}
	prob, err := asFloat(raw[wantLen-1])
	if err != nil {
		return model.CPTRow{}, fmt.Errorf("field %d: %w", wantLen-1, err)
	}
	return model.CPTRow{Outcome: outcome, ParentOutcomes: parentOutcomes, Probability: prob}, nil
}

func asFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected numeric probability, got %T: %w", v, ErrMalformedDocument)
	}
}
