package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cardioref/ptp-cli/internal/assess"
	"github.com/cardioref/ptp-cli/internal/model"
	"github.com/cardioref/ptp-cli/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate patients from a CSV file",
	Long: `Evaluate many patients from a CSV file with header age,sex,symptom,cac.

The cac column is optional and may be empty per row. Rows that fail validation
are reported in the output with their flags; they never abort the batch.

Examples:
  batch --input patients.csv
  batch --input patients.csv --output results.csv --concurrency 8 --save`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("input", "", "input CSV path (required)")
	f.String("output", "", "output CSV path (default: stdout)")
	f.Int("concurrency", 0, "max concurrent evaluations (default from config)")
	f.Bool("save", false, "save assessments to the history store")
	_ = batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	save, _ := cmd.Flags().GetBool("save")

	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrent
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	requests, err := readBatchInput(inputPath)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "batch"))
	log.Info("starting batch evaluation",
		zap.Int("rows", len(requests)),
		zap.Int("concurrency", concurrency),
	)

	var st store.Store
	if save {
		st, err = openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "batch: open store")
		}
		defer st.Close()
	}

	results := make([]model.Assessment, len(requests))
	var rejected atomic.Int64
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, req := range requests {
		g.Go(func() error {
			a := assess.Evaluate(req)
			results[i] = a
			if !a.PTP.OK {
				rejected.Add(1)
			}
			if st != nil {
				mu.Lock()
				err := st.SaveAssessment(gctx, a)
				mu.Unlock()
				if err != nil {
					return eris.Wrapf(err, "batch: save row %d", i+1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeBatchOutput(outputPath, results); err != nil {
		return err
	}

	log.Info("batch evaluation complete",
		zap.Int("total", len(results)),
		zap.Int64("rejected", rejected.Load()),
	)
	fmt.Fprintf(os.Stderr, "Evaluated %d rows (%d rejected by validation)\n",
		len(results), rejected.Load())

	return nil
}

// readBatchInput parses the input CSV into evaluation requests. The header
// row is required; column order is fixed as age,sex,symptom[,cac].
func readBatchInput(path string) ([]assess.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: open input %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrap(err, "batch: read CSV header")
	}
	if len(header) < 3 || !strings.EqualFold(strings.TrimSpace(header[0]), "age") {
		return nil, eris.Errorf("batch: expected header age,sex,symptom[,cac] (got %s)", strings.Join(header, ","))
	}

	var requests []assess.Request
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "batch: read CSV row")
		}
		req := assess.Request{}
		if len(record) > 0 {
			req.Age = strings.TrimSpace(record[0])
		}
		if len(record) > 1 {
			req.Sex = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			req.Symptom = strings.TrimSpace(record[2])
		}
		if len(record) > 3 {
			req.CAC = strings.TrimSpace(record[3])
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func writeBatchOutput(path string, results []model.Assessment) error {
	var w *os.File
	if path != "" {
		var err error
		w, err = os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "batch: create output file %s", path)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"age", "sex", "symptom", "cac", "ok", "percent", "display", "category", "age_band", "cac_bucket", "cac_range", "flags"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "batch: write CSV header")
	}

	for _, a := range results {
		out := []string{
			a.Input.Age,
			a.Input.Sex,
			a.Input.Symptom,
			a.Input.CAC,
			fmt.Sprintf("%v", a.PTP.OK),
			"",
			a.PTP.Display,
			string(a.PTP.Category),
			string(a.PTP.AgeBand),
			"",
			"",
			strings.Join(allFlagMessages(a), "; "),
		}
		if a.PTP.OK {
			out[5] = fmt.Sprintf("%d", a.PTP.Percent)
		}
		if a.CAC != nil && a.CAC.OK {
			out[9] = a.CAC.Bucket
			out[10] = a.CAC.Range
		}
		if err := cw.Write(out); err != nil {
			return eris.Wrap(err, "batch: write CSV row")
		}
	}
	return nil
}

func allFlagMessages(a model.Assessment) []string {
	msgs := a.PTP.Flags.Messages()
	if a.CAC != nil {
		msgs = append(msgs, a.CAC.Flags.Messages()...)
	}
	return msgs
}
