// Package modelio parses the on-disk model schema from spec §6 (JSON,
// JSONC, or YAML) into a *model.Model. File-format dispatch is by
// extension; both formats decode into the same intermediate document shape
// before validation is delegated entirely to model.NewModel.
package modelio
