// File: load.go
// Role: extension dispatch and decoding (spec §6: "File formats: key-value
// documents with the .json, .yml, or .yaml extension; semantics identical").
package modelio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/gocausal/docalc/model"
)

// Load reads path, dispatches on its extension, and builds a *model.Model.
func Load(path string, opts ...model.Option) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modelio: reading %s: %w", path, err)
	}

	var doc rawDocument
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
			return nil, fmt.Errorf("modelio: parsing %s: %w", path, err)
		}
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("modelio: parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", ext, ErrUnsupportedExtension)
	}

	return build(doc, opts)
}

// LoadValue builds a *model.Model from an already-decoded structured value
// (e.g. a map[string]any parsed upstream by a collaborator), the "or a
// structured value" half of spec §6's input contract.
func LoadValue(v map[string]interface{}, opts ...model.Option) (*model.Model, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("modelio: re-encoding structured value: %w", err)
	}
	var doc rawDocument
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("modelio: decoding structured value: %w", err)
	}
	return build(doc, opts)
}

func build(doc rawDocument, opts []model.Option) (*model.Model, error) {
	specs, err := doc.toSpecs()
	if err != nil {
		return nil, err
	}
	return model.NewModel(doc.Name, specs, opts...)
}
