package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		display string
		key     string
	}{
		{"simple lowercase", "globex", "Globex", "globex"},
		{"all caps", "GLOBEX", "Globex", "globex"},
		{"surrounding whitespace", "  Acme Corp ", "Acme Corp", "acme corp"},
		{"mixed case multi word", "aCmE cOrP", "Acme Corp", "acme corp"},
		{"internal whitespace run", "acme   corp", "Acme Corp", "acme corp"},
		{"tabs and newlines", "\tinitech\n", "Initech", "initech"},
		{"empty", "", "", ""},
		{"whitespace only", "   \t ", "", ""},
		{"unicode", "über gmbh", "Über Gmbh", "über gmbh"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := Normalize(tc.in)
			assert.Equal(t, tc.display, n.Display)
			assert.Equal(t, tc.key, n.Key)
		})
	}
}

// Normalizing an already-normalized display form must be a fixed point.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"globex", "  ACME corp ", "a  b   c", "Stark Industries", ""}
	for _, in := range inputs {
		first := Normalize(in)
		second := Normalize(first.Display)
		assert.Equal(t, first, second, "input %q", in)
	}
}

// Names that differ only by case or surrounding whitespace must share a
// comparison key.
func TestKeyCollision(t *testing.T) {
	assert.Equal(t, Key("Acme Corp"), Key("  ACME corp "))
	assert.Equal(t, Key("globex"), Key("GLOBEX"))
	assert.NotEqual(t, Key("globex"), Key("globex inc"))
}
