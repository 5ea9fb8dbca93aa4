// Package trials models individual same/different trials and synthesizes
// the two trial families: identity "same" trials and within-category
// "different" trials.
package trials

import (
	"fmt"

	"trialgen/internal/stimuli"
)

// Type distinguishes the two trial families.
type Type string

const (
	TypeIdentity Type = "identity"
	TypeCategory Type = "category"
)

// Response is the expected participant response for a trial.
type Response string

const (
	ResponseSame      Response = "same"
	ResponseDifferent Response = "different"
)

// Trial is one row of a condition's trial list. Index and Condition stay
// zero until the condition assembler assigns them.
type Trial struct {
	Index           int
	Condition       int
	Type            Type
	Category        string
	Pair            string
	LeftImage       string
	RightImage      string
	CorrectResponse Response
	RandomizeLR     bool
}

// Params carries the synthesis constants shared by both trial families.
type Params struct {
	IdentityDir          string
	CategoryDir          string
	ImageExt             string
	Repeats              int
	ExemplarsPerCategory int
}

// Identity generates all identity "same" trials: each item's sole exemplar
// compared against itself, Repeats times. Left/right randomization is off
// since both sides are the same image.
func Identity(p Params, items []string) []Trial {
	out := make([]Trial, 0, len(items)*p.Repeats)
	for _, item := range items {
		img := stimuli.ImagePath(p.IdentityDir, item, 1, p.ImageExt)
		pair := fmt.Sprintf("%s1_vs_%s1", item, item)
		for r := 0; r < p.Repeats; r++ {
			out = append(out, Trial{
				Type:            TypeIdentity,
				Category:        item,
				Pair:            pair,
				LeftImage:       img,
				RightImage:      img,
				CorrectResponse: ResponseSame,
			})
		}
	}
	return out
}

// Category generates all within-category "different" trials for one item:
// every unordered exemplar pair in lexicographic order, Repeats times each.
// The stored left/right order is canonical; RandomizeLR signals the
// experiment code to swap sides at display time.
func Category(p Params, item string) []Trial {
	pairs := PairCount(p.ExemplarsPerCategory)
	out := make([]Trial, 0, pairs*p.Repeats)
	for i := 1; i <= p.ExemplarsPerCategory; i++ {
		for j := i + 1; j <= p.ExemplarsPerCategory; j++ {
			left := stimuli.ImagePath(p.CategoryDir, item, i, p.ImageExt)
			right := stimuli.ImagePath(p.CategoryDir, item, j, p.ImageExt)
			pair := fmt.Sprintf("%s%d_%s%d", item, i, item, j)
			for r := 0; r < p.Repeats; r++ {
				out = append(out, Trial{
					Type:            TypeCategory,
					Category:        item,
					Pair:            pair,
					LeftImage:       left,
					RightImage:      right,
					CorrectResponse: ResponseDifferent,
					RandomizeLR:     true,
				})
			}
		}
	}
	return out
}

// PairCount returns C(k, 2), the number of unordered exemplar pairs.
func PairCount(k int) int {
	return k * (k - 1) / 2
}
