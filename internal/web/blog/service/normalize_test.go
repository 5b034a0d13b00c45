package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
)

func TestRepairTag(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"plain", "golang", "golang"},
		{"array literal", `["golang","web"]`, "golang"},
		{"array literal with spaces", ` [" golang "] `, "golang"},
		{"broken literal kept", `["golang`, `["golang`},
		{"invalid json kept", `["golang",]`, `["golang",]`},
		{"empty array kept", `[""]`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, repairTag(tc.in))
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"plain", "Golang", "golang"},
		{"trims", "  Web Dev  ", "web dev"},
		{"strips quotes", `"mongo"`, "mongo"},
		{"strips apostrophes", "it's", "its"},
		{"strips brackets", "[go]", "go"},
		{"array literal repaired", `["Go","Web"]`, "go"},
		{"normalizes away", `"[]"`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeTag(tc.in))
		})
	}
}

func TestNormalizeTagIdempotent(t *testing.T) {
	inputs := []string{"Golang", `["Go","Web"]`, `"mongo"`, "  Web Dev  ", "[go]", "it's", ""}
	for _, in := range inputs {
		once := NormalizeTag(in)
		require.Equal(t, once, NormalizeTag(once), "input %q", in)
	}
}

func TestCollectPostTags(t *testing.T) {
	t.Run("array preserved case no repair", func(t *testing.T) {
		in := dto.TagInput{Items: []string{"Go", "go", " Go ", `["x","y"]`, ""}}
		require.Equal(t, []string{"Go", "go", `["x","y"]`}, CollectPostTags(in))
	})

	t.Run("scalar json array", func(t *testing.T) {
		in := dto.TagInputFromString(`["Go","Web","Go"]`)
		require.Equal(t, []string{"Go", "Web"}, CollectPostTags(in))
	})

	t.Run("scalar comma split", func(t *testing.T) {
		in := dto.TagInputFromString("go, web , ,go")
		require.Equal(t, []string{"go", "web"}, CollectPostTags(in))
	})

	t.Run("scalar broken json falls back to split", func(t *testing.T) {
		in := dto.TagInputFromString(`["go",web]`)
		require.Equal(t, []string{`["go"`, `web]`}, CollectPostTags(in))
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, CollectPostTags(dto.TagInput{}))
	})
}

func TestUniqueNormalizedTags(t *testing.T) {
	got := UniqueNormalizedTags([][]string{
		{"a", "a", " A "},
		{`["b","a"]`, "C"},
	})
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestStripQuotedTag(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"plain preserved", "Go", "Go"},
		{"quotes stripped", `"Go"`, "Go"},
		{"apostrophes stripped", "'Web'", "Web"},
		{"array literal repaired first", `["Go","Web"]`, "Go"},
		{"brackets kept", "[legacy]", "[legacy]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, StripQuotedTag(tc.in))
		})
	}
}

func TestUniqueQuoteStrippedTags(t *testing.T) {
	got := UniqueQuoteStrippedTags([][]string{
		{`"Go"`, "Go", "'Web'"},
		{`["Go","Web"]`, "[legacy]"},
	})
	require.Equal(t, []string{"Go", "Web", "[legacy]"}, got)
}

func TestWithoutTag(t *testing.T) {
	tags := []string{"Go", "golang", `["go","x"]`, "web"}

	t.Run("exact normalized equality", func(t *testing.T) {
		require.Equal(t, []string{"golang", "web"}, WithoutTag(tags, "GO"))
	})

	t.Run("no substring matching", func(t *testing.T) {
		require.Equal(t, []string{"Go", `["go","x"]`, "web"}, WithoutTag(tags, "golang"))
	})

	t.Run("miss keeps everything", func(t *testing.T) {
		require.Equal(t, tags, WithoutTag(tags, "mongo"))
	})
}
