package helper_test

import (
	"listo/helper"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryConnection(t *testing.T) {
	conn, err := helper.NewMemoryConnection()
	require.NoError(t, err)

	defer conn.Close()

	var tables []string

	err = conn.Read.Select(&tables, "SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('lists', 'items') ORDER BY name")
	require.NoError(t, err)
	assert.Equal(t, []string{"items", "lists"}, tables)
}

func TestRunner(t *testing.T) {
	conn, err := helper.NewMemoryConnection()
	require.NoError(t, err)

	defer conn.Close()

	t.Run("up again is a no-op", func(t *testing.T) {
		assert.NoError(t, helper.Runner(conn, "", helper.ActionUp))
	})

	t.Run("down removes the items table", func(t *testing.T) {
		require.NoError(t, helper.Runner(conn, "", helper.ActionDown))

		var count int

		require.NoError(t, conn.Read.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'items'"))
		assert.Equal(t, 0, count)
	})

	t.Run("step up restores it", func(t *testing.T) {
		require.NoError(t, helper.Runner(conn, "", helper.ActionStepUp))

		var count int

		require.NoError(t, conn.Read.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'items'"))
		assert.Equal(t, 1, count)
	})

	t.Run("unknown action", func(t *testing.T) {
		assert.Error(t, helper.Runner(conn, "", "sideways"))
	})
}
