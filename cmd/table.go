package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cardioref/ptp-cli/internal/ptp"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the pretest-probability reference table",
	Long: `Print the fixed reference table (percent by symptom, sex, and age band).

Examples:
  table
  table --format csv > reference.csv
  table --format yaml`,
	RunE: runTable,
}

func init() {
	tableCmd.Flags().String("format", "table", "output format: table, csv, json, or yaml")
	rootCmd.AddCommand(tableCmd)
}

func tableRows() []ptp.TableRow {
	return ptp.Rows()
}

func runTable(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	rows := tableRows()

	switch format {
	case "table":
		fmt.Printf("%-8s %15s %17s %13s %15s\n",
			"Band", "ChestPain/Men", "ChestPain/Women", "Dyspnea/Men", "Dyspnea/Women")
		for _, r := range rows {
			fmt.Printf("%-8s %14d%% %16d%% %12d%% %14d%%\n",
				r.AgeBand, r.ChestPainMen, r.ChestPainWomen, r.DyspneaMen, r.DyspneaWomen)
		}
		return nil
	case "csv":
		cw := csv.NewWriter(os.Stdout)
		defer cw.Flush()
		if err := cw.Write([]string{"age_band", "chest_pain_men", "chest_pain_women", "dyspnea_men", "dyspnea_women"}); err != nil {
			return eris.Wrap(err, "table: write CSV header")
		}
		for _, r := range rows {
			record := []string{
				string(r.AgeBand),
				fmt.Sprintf("%d", r.ChestPainMen),
				fmt.Sprintf("%d", r.ChestPainWomen),
				fmt.Sprintf("%d", r.DyspneaMen),
				fmt.Sprintf("%d", r.DyspneaWomen),
			}
			if err := cw.Write(record); err != nil {
				return eris.Wrap(err, "table: write CSV row")
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(rows), "table: encode JSON")
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close() //nolint:errcheck
		return eris.Wrap(enc.Encode(rows), "table: encode YAML")
	default:
		return eris.Errorf("table: unsupported format %q", format)
	}
}
