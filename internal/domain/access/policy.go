package access

import "sponsio/internal/domain/users"

// CanPublish reports whether a creator may publish bookable slots. Admins
// pass unconditionally; everyone else needs a verified business identity.
func CanPublish(u *users.User) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin {
		return true
	}
	return u.BusinessVerified
}

// SkipsModeration reports whether creative uploads from this user bypass
// the content-safety classifier.
func SkipsModeration(u *users.User) bool {
	return u != nil && u.IsAdmin
}
