// Package csvout serializes condition trial lists to CSV with the fixed
// column order the experiment runner expects.
package csvout

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"trialgen/internal/fileutil"
	"trialgen/internal/trials"
)

// Columns is the header row. Order is part of the file format; the
// experiment code addresses columns positionally as well as by name.
var Columns = []string{
	"trial_index",
	"condition",
	"trial_type",
	"category",
	"pair",
	"left_image",
	"right_image",
	"correct_response",
	"randomize_lr",
}

// Filename returns the deterministic trial list name for a condition.
func Filename(prefix string, condition int) string {
	return prefix + strconv.Itoa(condition) + ".csv"
}

// Render encodes the trial list as CSV bytes, header included. An empty
// list renders to nil.
func Render(list []trials.Trial) ([]byte, error) {
	if len(list) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, trial := range list {
		record := []string{
			strconv.Itoa(trial.Index),
			strconv.Itoa(trial.Condition),
			string(trial.Type),
			trial.Category,
			trial.Pair,
			trial.LeftImage,
			trial.RightImage,
			string(trial.CorrectResponse),
			formatBool(trial.RandomizeLR),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write trial %d: %w", trial.Index, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the trial list to path atomically. Writing an empty list is
// a no-op: no file is created.
func Write(path string, list []trials.Trial) error {
	data, err := Render(list)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

// Title-case booleans keep continuity with trial lists already consumed by
// the experiment code.
func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
