package taxonomy

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func testSnapshot(version int) *Snapshot {
	return NewSnapshot(version, map[Kind][]Item{
		KindSkill: {
			{Key: "python", Label: "Python"},
			{Key: "grant-writing", Label: "Grant Writing"},
		},
		KindValue: {
			{Key: "transparency", Label: "Transparency"},
		},
	})
}

func Test_Resolve_KnownKey_ReturnsCanonicalForm(t *testing.T) {
	snap := testSnapshot(1)

	key, err := snap.Resolve(KindSkill, "python")
	assert.NoError(t, err)
	assert.Equal(t, "python", key)

	key, err = snap.Resolve(KindSkill, "  Grant Writing ")
	assert.NoError(t, err)
	assert.Equal(t, "grant-writing", key)
}

func Test_Resolve_UnknownKey_Fails(t *testing.T) {
	snap := testSnapshot(1)

	_, err := snap.Resolve(KindSkill, "underwater-basket-weaving")
	assert.True(t, errors.Is(err, ErrUnknownKey))

	// Kinds do not bleed into each other.
	_, err = snap.Resolve(KindValue, "python")
	assert.True(t, errors.Is(err, ErrUnknownKey))
}

func Test_ResolveAll_FailsOnFirstUnknown(t *testing.T) {
	snap := testSnapshot(1)

	resolved, err := snap.ResolveAll(KindSkill, []string{"python", "grant-writing"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"python", "grant-writing"}, resolved)

	_, err = snap.ResolveAll(KindSkill, []string{"python", "cobol"})
	assert.True(t, errors.Is(err, ErrUnknownKey))
}

func Test_Snapshot_CarriesVersion(t *testing.T) {
	assert.Equal(t, 7, testSnapshot(7).Version())
}

func Test_Label_FallsBackToKey(t *testing.T) {
	snap := testSnapshot(1)
	assert.Equal(t, "Python", snap.Label(KindSkill, "python"))
	assert.Equal(t, "cobol", snap.Label(KindSkill, "cobol"))
}

func Test_Normalize(t *testing.T) {
	assert.Equal(t, "grant-writing", Normalize("Grant Writing"))
	assert.Equal(t, "a11y", Normalize("  A11y!  "))
	assert.Equal(t, "machine-learning", Normalize("Machine__Learning"))
}
