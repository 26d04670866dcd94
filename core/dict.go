package core

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/huangsam/edgecov/schema"
)

// ExtractValidSamples builds a fuzzing dictionary from parameter specs.
// For each spec, the first valid entry of every category that has samples
// contributes its first sample; later entries of a seen category are skipped.
// The result is stably sorted by name.
func ExtractValidSamples(specs []schema.ParamSpec) []schema.DictEntry {
	entries := make([]schema.DictEntry, 0)
	for _, spec := range specs {
		seenCategories := make(map[string]bool)
		for _, valid := range spec.Valid {
			if seenCategories[valid.Category] || len(valid.Samples) == 0 {
				continue
			}
			seenCategories[valid.Category] = true
			entries = append(entries, schema.DictEntry{Name: spec.ParamName, Value: valid.Samples[0]})
		}
	}
	slices.SortStableFunc(entries, func(a, b schema.DictEntry) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return entries
}

// LoadParamSpecs decodes a JSON list of parameter specs.
func LoadParamSpecs(data []byte) ([]schema.ParamSpec, error) {
	var specs []schema.ParamSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("cannot decode parameter specs: %w", err)
	}
	if specs == nil {
		return nil, &schema.StructureError{Path: "$", Reason: "is not a list of parameter specs"}
	}
	return specs, nil
}

// LoadParamSpecsFile reads parameter specs from disk.
func LoadParamSpecsFile(path string) ([]schema.ParamSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read parameter specs %s: %w", path, err)
	}
	specs, err := LoadParamSpecs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}
