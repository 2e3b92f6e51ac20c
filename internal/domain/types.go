package domain

import "strconv"

// ID is used across domain entities.
type ID int64

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

// UserKey is the user id as stored on orders, empty for anonymous requests.
func (rc RequestContext) UserKey() string {
	if rc.UserID <= 0 {
		return ""
	}
	return strconv.FormatInt(int64(rc.UserID), 10)
}
