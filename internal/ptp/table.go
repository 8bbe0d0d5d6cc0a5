package ptp

import "github.com/cardioref/ptp-cli/internal/model"

// probabilityTable holds pretest probabilities (integer percent) from the
// 2019 ESC chronic coronary syndromes reference figure, keyed by
// symptom, sex, age band. The table starts at age 30; the under-30 sentinel
// has no entries. Populated once, never mutated.
var probabilityTable = map[model.Symptom]map[model.Sex]map[model.AgeBand]int{
	model.SymptomChestPain: {
		model.SexMen: {
			model.AgeBand30to39: 3,
			model.AgeBand40to49: 22,
			model.AgeBand50to59: 32,
			model.AgeBand60to69: 44,
			model.AgeBand70Plus: 52,
		},
		model.SexWomen: {
			model.AgeBand30to39: 5,
			model.AgeBand40to49: 10,
			model.AgeBand50to59: 13,
			model.AgeBand60to69: 16,
			model.AgeBand70Plus: 27,
		},
	},
	model.SymptomDyspnea: {
		model.SexMen: {
			model.AgeBand30to39: 0,
			model.AgeBand40to49: 12,
			model.AgeBand50to59: 20,
			model.AgeBand60to69: 27,
			model.AgeBand70Plus: 32,
		},
		model.SexWomen: {
			model.AgeBand30to39: 3,
			model.AgeBand40to49: 3,
			model.AgeBand50to59: 9,
			model.AgeBand60to69: 14,
			model.AgeBand70Plus: 12,
		},
	},
}

// Lookup returns the table percent for the given keys. ok is false when any
// key falls outside the declared domain.
func Lookup(symptom model.Symptom, sex model.Sex, band model.AgeBand) (int, bool) {
	bySex, ok := probabilityTable[symptom]
	if !ok {
		return 0, false
	}
	byBand, ok := bySex[sex]
	if !ok {
		return 0, false
	}
	pct, ok := byBand[band]
	return pct, ok
}

// TableRow is one age-band row of the reference table, used by export commands.
type TableRow struct {
	AgeBand        model.AgeBand `json:"age_band" yaml:"age_band"`
	ChestPainMen   int           `json:"chest_pain_men" yaml:"chest_pain_men"`
	ChestPainWomen int           `json:"chest_pain_women" yaml:"chest_pain_women"`
	DyspneaMen     int           `json:"dyspnea_men" yaml:"dyspnea_men"`
	DyspneaWomen   int           `json:"dyspnea_women" yaml:"dyspnea_women"`
}

// Rows returns the full reference table in ascending age-band order.
func Rows() []TableRow {
	rows := make([]TableRow, 0, len(model.AgeBands))
	for _, band := range model.AgeBands {
		rows = append(rows, TableRow{
			AgeBand:        band,
			ChestPainMen:   probabilityTable[model.SymptomChestPain][model.SexMen][band],
			ChestPainWomen: probabilityTable[model.SymptomChestPain][model.SexWomen][band],
			DyspneaMen:     probabilityTable[model.SymptomDyspnea][model.SexMen][band],
			DyspneaWomen:   probabilityTable[model.SymptomDyspnea][model.SexWomen][band],
		})
	}
	return rows
}
