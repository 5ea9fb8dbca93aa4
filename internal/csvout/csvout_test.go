package csvout_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trialgen/internal/csvout"
	"trialgen/internal/trials"
)

func sampleTrials() []trials.Trial {
	return []trials.Trial{
		{
			Index:           1,
			Condition:       2,
			Type:            trials.TypeCategory,
			Category:        "dog",
			Pair:            "dog1_dog3",
			LeftImage:       "images/category/dog1.png",
			RightImage:      "images/category/dog3.png",
			CorrectResponse: trials.ResponseDifferent,
			RandomizeLR:     true,
		},
		{
			Index:           2,
			Condition:       2,
			Type:            trials.TypeIdentity,
			Category:        "cat",
			Pair:            "cat1_vs_cat1",
			LeftImage:       "images/identity/cat1.png",
			RightImage:      "images/identity/cat1.png",
			CorrectResponse: trials.ResponseSame,
			RandomizeLR:     false,
		},
	}
}

func TestRenderFixedColumnOrder(t *testing.T) {
	data, err := csvout.Render(sampleTrials())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	wantHeader := "trial_index,condition,trial_type,category,pair,left_image,right_image,correct_response,randomize_lr"
	if lines[0] != wantHeader {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	wantRow := "1,2,category,dog,dog1_dog3,images/category/dog1.png,images/category/dog3.png,different,True"
	if lines[1] != wantRow {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "same,False") {
		t.Fatalf("unexpected identity row: %q", lines[2])
	}
}

func TestRenderEmptyIsNil(t *testing.T) {
	data, err := csvout.Render(nil)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil output, got %q", data)
	}
}

func TestWriteEmptyListWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials_condition_1.csv")
	if err := csvout.Write(path, nil); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file, stat returned %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials_condition_2.csv")
	if err := csvout.Write(path, sampleTrials()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	rendered, err := csvout.Render(sampleTrials())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if string(data) != string(rendered) {
		t.Fatal("file bytes differ from rendered bytes")
	}
}

func TestFilename(t *testing.T) {
	if got := csvout.Filename("trials_condition_", 3); got != "trials_condition_3.csv" {
		t.Fatalf("unexpected filename: %q", got)
	}
}
