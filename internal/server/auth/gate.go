package auth

import "github.com/dmitrijs2005/gopherblog/internal/common"

// DefaultAdminUserID is the first registered account.
const DefaultAdminUserID int64 = 1

// RequireAdmin returns nil only for the authenticated principal whose id is
// adminID, and common.ErrForbidden otherwise.
func RequireAdmin(p Principal, adminID int64) error {
	if !p.Is(adminID) {
		return common.ErrForbidden
	}
	return nil
}
