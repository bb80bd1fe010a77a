package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraitsWithLastWriteWins(t *testing.T) {
	var traits Traits

	traits = traits.With(TraitDocumentation, "first")
	traits = traits.With(TraitDocumentation, "second")

	doc, ok := traits.String(TraitDocumentation)
	assert.True(t, ok)
	assert.Equal(t, "second", doc)
}

func TestTraitsWithTagsAccumulates(t *testing.T) {
	traits := Traits{}.WithTags("ecs:extended")
	next := traits.WithTags("ecs:unindexed", "ecs:extended")

	assert.Equal(t, []string{"ecs:extended"}, traits.Tags())
	assert.Equal(t, []string{"ecs:extended", "ecs:unindexed"}, next.Tags())
}

func TestTraitsCloneDoesNotAlias(t *testing.T) {
	traits := Traits{}.WithTags("a")
	clone := traits.Clone()
	clone[TraitTags].([]string)[0] = "b"

	assert.Equal(t, []string{"a"}, traits.Tags())
	assert.Nil(t, Traits(nil).Clone())
}
