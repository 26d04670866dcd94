package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/edgecov/internal/contract"
	"github.com/huangsam/edgecov/schema"
)

// Fixed column of the dictionary table: the parameter name.
const dictTableFixedWidth = 25

// WriteDictResults outputs dictionary entries, dispatching based on the output format configured.
// JSON is the list of {"name", "value"} objects a fuzzer loads directly.
func WriteDictResults(w io.Writer, entries []schema.DictEntry, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, entries); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAML(w, entries); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		err := writeCSVWithHeader(w, []string{"name", "value"}, func(cw *csv.Writer) error {
			for _, e := range entries {
				if err := cw.Write([]string{e.Name, e.Value}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		valueWidth := GetMaxTableCellWidth(cfg, dictTableFixedWidth)
		data := make([][]string, 0, len(entries))
		for _, e := range entries {
			data = append(data, []string{e.Name, contract.TruncateText(e.Value, valueWidth)})
		}
		if err := writeTable(w, []string{"Name", "Value"}, data); err != nil {
			return fmt.Errorf("error writing dictionary table output: %w", err)
		}
		_, _ = fmt.Fprintf(w, "Dictionary of %d value(s) completed in %v\n", len(entries), duration)
	}
	return nil
}
