package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, c.Stages)

	step, ok := c.Step(2002)
	require.True(t, ok)
	assert.Equal(t, "Collegium assigned, awaiting formation-order signature", step.Title)

	_, ok = c.Step(9999)
	assert.False(t, ok)
}

func TestTitleFor(t *testing.T) {
	c := MustLoad()
	assert.Equal(t, "Case created, awaiting assignment", c.TitleFor(1000))
	assert.Equal(t, "Meeting held, decision recorded", c.TitleFor(4000))
	assert.Empty(t, c.TitleFor(1234))
}

func TestDocTypesForConsideration(t *testing.T) {
	c := MustLoad()

	assert.Equal(t, []string{"0006", "0007"}, c.DocTypesForConsideration("trademark"))
	assert.Equal(t, []string{"0006", "0007", "0008"}, c.DocTypesForConsideration("invention"))
	assert.Nil(t, c.DocTypesForConsideration("copyright"))

	// Callers get a copy; mutating it must not poison the catalog.
	got := c.DocTypesForConsideration("trademark")
	got[0] = "9999"
	assert.Equal(t, []string{"0006", "0007"}, c.DocTypesForConsideration("trademark"))
}

func TestDocTypeTitle(t *testing.T) {
	c := MustLoad()
	assert.Equal(t, "Collegium formation order", c.DocTypeTitle(DocTypeFormationOrder))
	assert.Equal(t, "Meeting notice", c.DocTypeTitle(DocTypeMeetingNotice))
	assert.Empty(t, c.DocTypeTitle("0000"))
}
