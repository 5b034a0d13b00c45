package service

import (
	"encoding/json"
	"strings"

	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
)

// repairTag undoes the historical double-serialization bug where a whole
// JSON array literal ended up stored as a single tag. A trimmed value that
// looks like `["..."]` is parsed and replaced by its first element; parse
// failures keep the value untouched.
func repairTag(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, `["`) || !strings.HasSuffix(s, `"]`) {
		return s
	}

	var arr []string
	if err := json.Unmarshal([]byte(s), &arr); err != nil || len(arr) == 0 {
		return s
	}

	return strings.TrimSpace(arr[0])
}

var tagJunkReplacer = strings.NewReplacer(`"`, "", "'", "", "[", "", "]", "")

// NormalizeTag maps a raw stored tag to its canonical comparison form:
// repaired, stripped of quote and bracket junk, trimmed, lowercased.
// Returns "" for tags that normalize away entirely.
// Idempotent: NormalizeTag(NormalizeTag(x)) == NormalizeTag(x).
func NormalizeTag(s string) string {
	s = repairTag(s)
	s = tagJunkReplacer.Replace(s)
	return strings.ToLower(strings.TrimSpace(s))
}

// StripQuotedTag is the lighter variant used by the legacy blog-tags view:
// the JSON-array-literal repair still applies, then only quotes and
// apostrophes are removed, case preserved.
func StripQuotedTag(s string) string {
	s = repairTag(s)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")
	return strings.TrimSpace(s)
}

// CollectPostTags resolves a request's tag field into the list stored on a
// new post. A scalar is parsed as a JSON array when possible, otherwise
// split on commas. Values are trimmed and deduped exactly, case preserved;
// no repair and no lowercasing happen on this path.
func CollectPostTags(in dto.TagInput) []string {
	var raw []string
	if in.IsScalar {
		if err := json.Unmarshal([]byte(in.Scalar), &raw); err != nil {
			raw = strings.Split(in.Scalar, ",")
		}
	} else {
		raw = in.Items
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}

// UniqueNormalizedTags flattens tag lists from many posts into the unique
// normalized tags, keeping the insertion order of first occurrence.
func UniqueNormalizedTags(tagLists [][]string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tags := range tagLists {
		for _, t := range tags {
			n := NormalizeTag(t)
			if n == "" {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	return out
}

// UniqueQuoteStrippedTags is the case-preserving variant backing the
// blogs-only tag listing.
func UniqueQuoteStrippedTags(tagLists [][]string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tags := range tagLists {
		for _, t := range tags {
			n := StripQuotedTag(t)
			if n == "" {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	return out
}

// WithoutTag returns tags minus every entry whose normalized form equals
// the normalized target. Comparison is exact, never substring.
func WithoutTag(tags []string, target string) []string {
	want := NormalizeTag(target)
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if NormalizeTag(t) == want {
			continue
		}
		out = append(out, t)
	}

	return out
}
