// Package access decides, per user and per board, what is visible and what
// may be modified. Everything here is a pure function over data loaded by
// the repositories; there are no queries and no side effects, so the rules
// are testable without a database.
package access

import (
	"github.com/google/uuid"

	"shashoo/internal/model"
)

// Identity is the authenticated caller as supplied by the auth middleware.
// A nil *Identity means the request is unauthenticated.
type Identity struct {
	ID     uuid.UUID
	Role   string
	Status string
}

// IsAdmin reports whether the identity carries the admin role.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == model.RoleAdmin
}

// VisibilityLevels returns the board tiers the role may view by default.
// Unknown roles fall back to the basic tier.
func VisibilityLevels(role string) []string {
	switch role {
	case model.RoleAdmin:
		return []string{model.RoleBasic, model.RolePremium, model.RoleAdmin}
	case model.RolePremium:
		return []string{model.RoleBasic, model.RolePremium}
	default:
		return []string{model.RoleBasic}
	}
}

// VisibleBoards filters boards down to the set the identity may view:
// boards whose tier is within the role's visibility levels, plus boards
// explicitly granted through the allow-list. Grants are additive only, the
// result is never smaller than the role-tier default. Admins see the whole
// catalog, unauthenticated callers see nothing. Input order is preserved.
func VisibleBoards(id *Identity, boards []model.Board, grantedIDs []uuid.UUID) []model.Board {
	if id == nil {
		return nil
	}
	if id.IsAdmin() {
		return boards
	}

	levels := make(map[string]bool)
	for _, level := range VisibilityLevels(id.Role) {
		levels[level] = true
	}
	granted := make(map[uuid.UUID]bool, len(grantedIDs))
	for _, boardID := range grantedIDs {
		granted[boardID] = true
	}

	visible := make([]model.Board, 0, len(boards))
	for _, board := range boards {
		if levels[board.Visibility] || granted[board.ID] {
			visible = append(visible, board)
		}
	}
	return visible
}

// CanViewBoard reports whether the identity may view a single board.
// hasGrant is the existence of an allow-list row with can_view=true for
// this (board, user) pair.
func CanViewBoard(id *Identity, board model.Board, hasGrant bool) bool {
	if id == nil {
		return false
	}
	if id.IsAdmin() {
		return true
	}
	if hasGrant {
		return true
	}
	for _, level := range VisibilityLevels(id.Role) {
		if board.Visibility == level {
			return true
		}
	}
	return false
}

// CanModifyPost reports whether the identity may edit or delete a post.
// Only the original author or an admin may; authorship is an identity
// match, never a role comparison.
func CanModifyPost(id *Identity, post model.Post) bool {
	if id == nil {
		return false
	}
	if id.IsAdmin() {
		return true
	}
	return post.AuthorID == id.ID
}

// CanAdministerBoards reports whether the identity may create, update or
// delete boards and manage allow-list grants.
func CanAdministerBoards(id *Identity) bool {
	return id.IsAdmin()
}
