package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortAndDedupeVersions(t *testing.T) {
	in := []string{"1.20.1", "1.19.4", "1.20.1", "1.20.1", "1.8.9"}
	out := SortAndDedupeVersions(in)
	assert.Equal(t, []string{"1.8.9", "1.19.4", "1.20.1"}, out)
}

func TestSortAndDedupeVersionsEmpty(t *testing.T) {
	assert.Empty(t, SortAndDedupeVersions(nil))
}

func TestSortAndDedupeVersionsNoDuplicates(t *testing.T) {
	in := []string{"1.20.1", "1.19.4"}
	out := SortAndDedupeVersions(in)
	assert.Equal(t, []string{"1.19.4", "1.20.1"}, out)
}
