package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagInputUnmarshal(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		var in TagInput
		require.NoError(t, json.Unmarshal([]byte(`"go, web"`), &in))
		require.True(t, in.IsScalar)
		require.Equal(t, "go, web", in.Scalar)
		require.False(t, in.IsZero())
	})

	t.Run("flat array", func(t *testing.T) {
		var in TagInput
		require.NoError(t, json.Unmarshal([]byte(`["go","web"]`), &in))
		require.False(t, in.IsScalar)
		require.Equal(t, []string{"go", "web"}, in.Items)
	})

	t.Run("nested array", func(t *testing.T) {
		var in TagInput
		require.NoError(t, json.Unmarshal([]byte(`["go",["web",["mongo"]]]`), &in))
		require.Equal(t, []string{"go", "web", "mongo"}, in.Items)
	})

	t.Run("empty array is not a scalar", func(t *testing.T) {
		var in TagInput
		require.NoError(t, json.Unmarshal([]byte(`[]`), &in))
		require.False(t, in.IsScalar)
		require.Empty(t, in.Items)
		require.False(t, in.IsZero())
	})

	t.Run("rejects numbers", func(t *testing.T) {
		var in TagInput
		require.Error(t, json.Unmarshal([]byte(`["go", 42]`), &in))
	})

	t.Run("rejects object", func(t *testing.T) {
		var in TagInput
		require.Error(t, json.Unmarshal([]byte(`{"tag":"go"}`), &in))
	})
}

func TestTagInputZero(t *testing.T) {
	var in TagInput
	require.True(t, in.IsZero())

	type payload struct {
		Tags TagInput `json:"tags"`
	}
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
	require.True(t, p.Tags.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"tags":[]}`), &p))
	require.False(t, p.Tags.IsZero())
}
