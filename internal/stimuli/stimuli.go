// Package stimuli discovers stimulus items from image directories.
//
// Items are inferred from filenames of the form <name><digit><ext>, e.g.
// dog1.png .. dog4.png yield the category item "dog". Discovery validates
// that every item carries exactly the exemplar set its kind requires, so
// malformed stimulus sets fail before any trial generation begins.
package stimuli

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
)

// ErrNoStimuli indicates a directory contained no files matching the
// stimulus naming scheme.
var ErrNoStimuli = errors.New("no stimulus images found")

// Item is a stimulus identity or category discovered on disk.
type Item struct {
	Name      string
	Exemplars []int
}

// ExemplarCountError reports an item whose exemplar set deviates from the
// required 1..Want range.
type ExemplarCountError struct {
	Dir  string
	Item string
	Want int
	Got  []int
}

func (e *ExemplarCountError) Error() string {
	return fmt.Sprintf("stimulus item %q in %s: expected exemplars 1..%d, found %v",
		e.Item, e.Dir, e.Want, e.Got)
}

// Discover scans dir for files named <name><digit><ext> and returns the
// sorted unique items. Every item must have exactly the exemplars 1..want;
// any deviation is a fatal validation error rather than a silently
// adapted pair set.
func Discover(dir, ext string, want int) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read stimulus directory %q: %w", dir, err)
	}

	exemplars := map[string][]int{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, idx, ok := parseFilename(entry.Name(), ext)
		if !ok {
			continue
		}
		exemplars[name] = append(exemplars[name], idx)
	}

	if len(exemplars) == 0 {
		return nil, fmt.Errorf("%w in %s (expected files like name1%s)", ErrNoStimuli, dir, ext)
	}

	names := make([]string, 0, len(exemplars))
	for name := range exemplars {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]Item, 0, len(names))
	for _, name := range names {
		indices := exemplars[name]
		sort.Ints(indices)
		if err := checkExemplars(indices, want); err != nil {
			return nil, &ExemplarCountError{Dir: dir, Item: name, Want: want, Got: indices}
		}
		items = append(items, Item{Name: name, Exemplars: indices})
	}
	return items, nil
}

// parseFilename splits "dog3.png" into ("dog", 3, true). Files that do not
// end in a single exemplar digit before the extension are ignored.
func parseFilename(filename, ext string) (string, int, bool) {
	if !strings.HasSuffix(filename, ext) {
		return "", 0, false
	}
	base := strings.TrimSuffix(filename, ext)
	if len(base) < 2 {
		return "", 0, false
	}
	last := base[len(base)-1]
	if last < '0' || last > '9' {
		return "", 0, false
	}
	return base[:len(base)-1], int(last - '0'), true
}

func checkExemplars(indices []int, want int) error {
	if len(indices) != want {
		return errors.New("exemplar count mismatch")
	}
	for i, idx := range indices {
		if idx != i+1 {
			return errors.New("exemplar numbering gap")
		}
	}
	return nil
}

// Names returns the item names in order.
func Names(items []Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

// ImagePath builds the stimulus image path recorded in trial lists. It
// always joins with forward slashes because the experiment runner resolves
// these paths itself.
func ImagePath(dir, name string, exemplar int, ext string) string {
	return path.Join(dir, name+strconv.Itoa(exemplar)+ext)
}
