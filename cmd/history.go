package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cardioref/ptp-cli/internal/model"
	"github.com/cardioref/ptp-cli/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved assessments",
	Long: `List assessments saved with --save, newest first.

Examples:
  history
  history --category intermediateHigh --limit 20
  history --symptom dyspnea`,
	RunE: runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.String("category", "", "filter by risk category: low, intermediateHigh, high")
	f.String("symptom", "", "filter by symptom: chestPain or dyspnea")
	f.Int("limit", 50, "maximum number of assessments")
	f.Int("offset", 0, "number of assessments to skip")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	category, _ := cmd.Flags().GetString("category")
	symptom, _ := cmd.Flags().GetString("symptom")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	st, err := openStore(ctx)
	if err != nil {
		return eris.Wrap(err, "history: open store")
	}
	defer st.Close()

	list, err := st.ListAssessments(ctx, store.AssessmentFilter{
		Category: model.RiskCategory(category),
		Symptom:  model.Symptom(symptom),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return eris.Wrap(err, "history: list assessments")
	}

	if len(list) == 0 {
		fmt.Println("No assessments found.")
		return nil
	}

	fmt.Printf("%-36s %-20s %6s %-7s %-10s %7s %-17s\n",
		"ID", "Created", "Age", "Sex", "Symptom", "PTP", "Category")
	fmt.Println(strings.Repeat("-", 108))
	for _, a := range list {
		display := "-"
		if a.PTP.OK {
			display = a.PTP.Display
		}
		fmt.Printf("%-36s %-20s %6s %-7s %-10s %7s %-17s\n",
			a.ID,
			a.CreatedAt.Format("2006-01-02 15:04:05"),
			a.Input.Age,
			a.Input.Sex,
			a.Input.Symptom,
			display,
			a.Category(),
		)
	}
	fmt.Printf("\n%d assessment(s)\n", len(list))

	return nil
}
