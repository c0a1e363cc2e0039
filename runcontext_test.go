package toplinks_test

import (
	"testing"

	"github.com/fwojciec/toplinks"
	"github.com/stretchr/testify/assert"
)

func TestRunContext(t *testing.T) {
	t.Parallel()

	t.Run("stores datasets by key", func(t *testing.T) {
		t.Parallel()

		rc := toplinks.NewRunContext("run-1")
		d := toplinks.Dataset{{Title: "a", Source: "https://a.example/"}}
		rc.Put(toplinks.KeyTopLinks, d)

		got, ok := rc.Get(toplinks.KeyTopLinks)
		assert.True(t, ok)
		assert.Equal(t, d, got)
		assert.Equal(t, "run-1", rc.RunID())
		assert.Equal(t, []string{toplinks.KeyTopLinks}, rc.Keys())
	})

	t.Run("reports missing keys", func(t *testing.T) {
		t.Parallel()

		rc := toplinks.NewRunContext("run-1")

		_, ok := rc.Get(toplinks.KeyTransformedData)
		assert.False(t, ok)
	})

	t.Run("nil context discards values", func(t *testing.T) {
		t.Parallel()

		var rc *toplinks.RunContext
		rc.Put(toplinks.KeyTopLinks, toplinks.Dataset{{Title: "a"}})

		_, ok := rc.Get(toplinks.KeyTopLinks)
		assert.False(t, ok)
		assert.Empty(t, rc.RunID())
		assert.Nil(t, rc.Keys())
	})
}
