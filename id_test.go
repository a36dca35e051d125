package pipeline

import "testing"

func TestNewSyntheticLabelIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		label := newSyntheticLabel()
		if seen[label] {
			t.Fatalf("duplicate synthetic label: %q", label)
		}
		seen[label] = true
	}
}
