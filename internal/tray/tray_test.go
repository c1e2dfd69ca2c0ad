package tray

import (
	"testing"
	"unicode"
)

func TestHiddenTooltip(t *testing.T) {
	if got := hiddenTooltip(0); got != "taskveil: no windows hidden" {
		t.Errorf("hiddenTooltip(0) = %q", got)
	}
	if got := hiddenTooltip(3); got != "taskveil: 3 hidden" {
		t.Errorf("hiddenTooltip(3) = %q", got)
	}

	for _, n := range []int{0, 1, 7} {
		for _, r := range hiddenTooltip(n) {
			if r > unicode.MaxASCII {
				t.Errorf("hiddenTooltip(%d) contains non-ASCII rune %q", n, r)
			}
		}
	}
}
