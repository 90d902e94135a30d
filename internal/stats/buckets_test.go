package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketDifficulty(t *testing.T) {
	cases := []struct {
		level int
		want  Bucket
	}{
		{1, BucketEasy},
		{2, BucketEasy},
		{3, BucketMedium},
		{4, BucketHard},
		{5, BucketHard},
		{0, BucketUnknown},
		{6, BucketUnknown},
		{-1, BucketUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BucketDifficulty(c.level), "level %d", c.level)
	}
}

func TestCollapseModality(t *testing.T) {
	assert.Equal(t, ModalityKeyOnline, CollapseModality("online"))
	assert.Equal(t, ModalityKeyInPerson, CollapseModality("presenza"))
	// legacy synonym still maps to in person
	assert.Equal(t, ModalityKeyInPerson, CollapseModality("pratica"))
	assert.Equal(t, ModalityKeyOther, CollapseModality("ibrido"))
	assert.Equal(t, ModalityKeyOther, CollapseModality(""))
}

func TestEnsureBuckets(t *testing.T) {
	m := map[string]int{"Online": 3}
	m = EnsureBuckets(m, ModalityKeys...)
	assert.Equal(t, map[string]int{"Online": 3, "Presenza": 0}, m)

	// nil map gets allocated and zero-filled
	var empty map[string]int
	empty = EnsureBuckets(empty, "FACILE", "MEDIO", "DIFFICILE")
	assert.Equal(t, map[string]int{"FACILE": 0, "MEDIO": 0, "DIFFICILE": 0}, empty)
}
