// Package conditions partitions category items across experimental
// conditions and assembles each condition's shuffled, indexed trial list.
package conditions

import (
	"math/rand"

	"trialgen/internal/trials"
)

// Assignment names one condition and the category items it owns.
type Assignment struct {
	Number     int
	Categories []string
}

// Assign splits category items into consecutive, non-overlapping chunks of
// perCondition, preserving input order. A trailing chunk that cannot be
// filled is not assigned; its items are returned as dropped so callers can
// report them.
func Assign(categories []string, perCondition int) ([]Assignment, []string) {
	if perCondition < 1 {
		return nil, append([]string{}, categories...)
	}
	count := len(categories) / perCondition
	assignments := make([]Assignment, 0, count)
	for i := 0; i < count; i++ {
		chunk := categories[i*perCondition : (i+1)*perCondition]
		assignments = append(assignments, Assignment{
			Number:     i + 1,
			Categories: append([]string{}, chunk...),
		})
	}
	dropped := append([]string{}, categories[count*perCondition:]...)
	return assignments, dropped
}

// Condition is one fully assembled trial list.
type Condition struct {
	Number     int
	Categories []string
	Trials     []trials.Trial
}

// Assembler shuffles and indexes condition trial lists. It owns the single
// seeded RNG; its state advances across Build calls, so output is
// reproducible only when conditions are built in a fixed order.
type Assembler struct {
	rng *rand.Rand
}

// NewAssembler returns an Assembler seeded for reproducible shuffles.
func NewAssembler(seed int64) *Assembler {
	return &Assembler{rng: rand.New(rand.NewSource(seed))}
}

// Build concatenates the shared identity trials with the condition's
// category trials, shuffles the combined sequence, and assigns 1-based
// indices and the condition number.
func (a *Assembler) Build(assignment Assignment, identity, category []trials.Trial) Condition {
	combined := make([]trials.Trial, 0, len(identity)+len(category))
	combined = append(combined, identity...)
	combined = append(combined, category...)

	a.rng.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})

	for i := range combined {
		combined[i].Index = i + 1
		combined[i].Condition = assignment.Number
	}

	return Condition{
		Number:     assignment.Number,
		Categories: assignment.Categories,
		Trials:     combined,
	}
}
