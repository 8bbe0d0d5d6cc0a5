package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cardioref/ptp-cli/internal/assess"
	"github.com/cardioref/ptp-cli/internal/model"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a single patient",
	Long: `Evaluate the pretest probability of coronary artery disease for one patient.

The reference table covers ages 30 and above, sexes "men" and "women", and
symptoms "chestPain" and "dyspnea". A coronary artery calcium score may be
supplied to add a probability-range bucket.

Examples:
  # Chest pain, 45-year-old man
  eval --age 45 --sex men --symptom chestPain

  # With a CAC score and JSON output
  eval --age 62 --sex women --symptom dyspnea --cac 150 --format json

  # Persist the assessment to the history store
  eval --age 45 --sex men --symptom chestPain --save`,
	RunE: runEval,
}

func init() {
	f := evalCmd.Flags()
	f.String("age", "", "patient age in years")
	f.String("sex", "", "patient sex: men or women")
	f.String("symptom", "", "presenting symptom: chestPain or dyspnea")
	f.String("cac", "", "coronary artery calcium score (optional)")
	f.String("format", "table", "output format: table or json")
	f.Bool("save", false, "save the assessment to the history store")

	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	age, _ := cmd.Flags().GetString("age")
	sex, _ := cmd.Flags().GetString("sex")
	symptom, _ := cmd.Flags().GetString("symptom")
	cacScore, _ := cmd.Flags().GetString("cac")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	if format != "table" && format != "json" {
		return eris.Errorf("eval: --format must be table or json (got %q)", format)
	}

	a := assess.Evaluate(assess.Request{Age: age, Sex: sex, Symptom: symptom, CAC: cacScore})

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a); err != nil {
			return eris.Wrap(err, "eval: encode result")
		}
	default:
		printAssessment(a)
	}

	if save {
		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "eval: open store")
		}
		defer st.Close()

		if err := st.SaveAssessment(ctx, a); err != nil {
			return eris.Wrap(err, "eval: save assessment")
		}
		zap.L().Info("assessment saved", zap.String("id", a.ID))
		fmt.Printf("Saved assessment %s\n", a.ID)
	}

	if !a.PTP.OK {
		return eris.New("eval: inputs rejected by validation (see flags above)")
	}
	return nil
}

func printAssessment(a model.Assessment) {
	if a.PTP.OK {
		fmt.Printf("PTP:      %s (%d%%)\n", a.PTP.Display, a.PTP.Percent)
		fmt.Printf("Category: %s\n", a.PTP.Category)
		fmt.Printf("Age band: %s\n", a.PTP.AgeBand)
	} else {
		fmt.Println("PTP:      not available")
		if a.PTP.AgeBand != "" {
			fmt.Printf("Age band: %s\n", a.PTP.AgeBand)
		}
	}
	printFlags(a.PTP.Flags)

	if a.CAC != nil {
		fmt.Println()
		if a.CAC.OK {
			fmt.Printf("CAC:      %g (bucket %s)\n", a.CAC.Score, a.CAC.Bucket)
			fmt.Printf("Range:    %s\n", a.CAC.Range)
			fmt.Printf("Category: %s\n", a.CAC.Category)
		} else {
			fmt.Println("CAC:      not available")
		}
		printFlags(a.CAC.Flags)
	}
}

func printFlags(flags model.Flags) {
	for _, f := range flags {
		fmt.Printf("  [%s] %s\n", strings.ToUpper(string(f.Severity)), f.Message)
	}
}
