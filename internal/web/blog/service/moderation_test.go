package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

func TestEffectiveStatus(t *testing.T) {
	cases := []struct {
		role, requested, want string
	}{
		{model.RoleUser, model.StatusDraft, model.StatusDraft},
		{model.RoleAdmin, model.StatusDraft, model.StatusDraft},
		{model.RoleAdmin, model.StatusApproved, model.StatusApproved},
		{model.RoleAdmin, model.StatusPublic, model.StatusApproved},
		{model.RoleAdmin, model.StatusPending, model.StatusPending},
		{model.RoleAdmin, "whatever", model.StatusPending},
		{model.RoleUser, model.StatusApproved, model.StatusPending},
		{model.RoleUser, model.StatusPublic, model.StatusPending},
		{model.RoleUser, "", model.StatusPending},
		{"", model.StatusApproved, model.StatusPending},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, EffectiveStatus(tc.role, tc.requested),
			"role=%q requested=%q", tc.role, tc.requested)
	}
}

func TestWidenStatusFilter(t *testing.T) {
	require.Equal(t, []string{model.StatusApproved, model.StatusDraft},
		WidenStatusFilter(model.StatusApproved))
	require.Equal(t, []string{model.StatusPending}, WidenStatusFilter(model.StatusPending))
	require.Equal(t, []string{model.StatusRejected}, WidenStatusFilter(model.StatusRejected))
	require.Equal(t, []string{model.StatusDraft}, WidenStatusFilter(model.StatusDraft))
}
