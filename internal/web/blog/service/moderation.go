package service

import (
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

// EffectiveStatus decides the status actually stored for a newly created
// blog. Drafts stay drafts for everyone. Admins get approved when they asked
// for approved or public, anything else queues as pending. Non-admins always
// queue as pending.
func EffectiveStatus(role, requested string) string {
	if requested == model.StatusDraft {
		return model.StatusDraft
	}

	if role == model.RoleAdmin {
		if requested == model.StatusApproved || requested == model.StatusPublic {
			return model.StatusApproved
		}
		return model.StatusPending
	}

	return model.StatusPending
}

// WidenStatusFilter maps the admin listing's status filter to the stored
// statuses it matches. The approved view historically includes drafts.
func WidenStatusFilter(status string) []string {
	if status == model.StatusApproved {
		return []string{model.StatusApproved, model.StatusDraft}
	}

	return []string{status}
}
