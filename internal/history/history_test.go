package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_MostRecentFirst(t *testing.T) {
	h := New(10)
	h.Add("sarah")
	h.Add("headphones")
	h.Add("order")
	assert.Equal(t, []string{"order", "headphones", "sarah"}, h.List())
}

func TestHistory_IgnoresBlank(t *testing.T) {
	h := New(10)
	h.Add("")
	h.Add("   ")
	h.Add("\t")
	assert.Empty(t, h.List())
}

func TestHistory_DuplicateMovesToFront(t *testing.T) {
	h := New(10)
	h.Add("a")
	h.Add("b")
	h.Add("c")
	h.Add("a")
	assert.Equal(t, []string{"a", "c", "b"}, h.List())
	assert.Equal(t, 3, h.Len())
}

func TestHistory_CaseSensitiveDedup(t *testing.T) {
	h := New(10)
	h.Add("Sarah")
	h.Add("sarah")
	assert.Equal(t, []string{"sarah", "Sarah"}, h.List())
}

func TestHistory_KeepsWhitespaceVariants(t *testing.T) {
	h := New(10)
	h.Add("head")
	h.Add(" head")
	assert.Equal(t, 2, h.Len())
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := New(0)
	for i := 0; i < 15; i++ {
		h.Add(fmt.Sprintf("q%d", i))
	}
	got := h.List()
	assert.Len(t, got, DefaultCapacity)
	assert.Equal(t, "q14", got[0])
	assert.Equal(t, "q5", got[len(got)-1])
}

func TestHistory_ListIsCopy(t *testing.T) {
	h := New(3)
	h.Add("x")
	got := h.List()
	got[0] = "mutated"
	assert.Equal(t, []string{"x"}, h.List())
}
