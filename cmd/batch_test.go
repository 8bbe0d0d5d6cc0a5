package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardioref/ptp-cli/internal/assess"
	"github.com/cardioref/ptp-cli/internal/model"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patients.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadBatchInput(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"age,sex,symptom,cac",
		"45,men,chestPain,120",
		"35,women,dyspnea,",
		"25,men,chestPain",
	}, "\n"))

	requests, err := readBatchInput(path)
	require.NoError(t, err)
	require.Len(t, requests, 3)

	assert.Equal(t, assess.Request{Age: "45", Sex: "men", Symptom: "chestPain", CAC: "120"}, requests[0])
	assert.Equal(t, assess.Request{Age: "35", Sex: "women", Symptom: "dyspnea"}, requests[1])
	assert.Equal(t, assess.Request{Age: "25", Sex: "men", Symptom: "chestPain"}, requests[2])
}

func TestReadBatchInput_BadHeader(t *testing.T) {
	path := writeTempCSV(t, "patient,dob\n1,1980-01-01\n")

	_, err := readBatchInput(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected header")
}

func TestReadBatchInput_MissingFile(t *testing.T) {
	_, err := readBatchInput(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestWriteBatchOutput(t *testing.T) {
	requests := []assess.Request{
		{Age: "45", Sex: "men", Symptom: "chestPain", CAC: "120"},
		{Age: "25", Sex: "men", Symptom: "chestPain"},
		{Age: "50", Symptom: "dyspnea"},
	}

	assessments := make([]model.Assessment, len(requests))
	for i, req := range requests {
		assessments[i] = assess.Evaluate(req)
	}

	outPath := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, writeBatchOutput(outPath, assessments))

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 rows

	header := records[0]
	assert.Equal(t, "age", header[0])
	assert.Equal(t, "flags", header[len(header)-1])

	// Row 1: success with CAC.
	assert.Equal(t, "true", records[1][4])
	assert.Equal(t, "22", records[1][5])
	assert.Equal(t, "intermediateHigh", records[1][7])
	assert.Equal(t, "100-999", records[1][9])

	// Row 2: under 30, rejected with flags.
	assert.Equal(t, "false", records[2][4])
	assert.Equal(t, "", records[2][5])
	assert.NotEmpty(t, records[2][11])

	// Row 3: missing sex, rejected; age band still resolved.
	assert.Equal(t, "false", records[3][4])
	assert.Equal(t, "50-59", records[3][8])
}
