package model

import "strconv"

// AdminID is the stable identifier of an administrator account
type AdminID int64

// String returns the decimal form of the ID
func (id AdminID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseAdminID parses a decimal admin ID
func ParseAdminID(s string) (AdminID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return AdminID(v), nil
}

// Admin is one administrator account as held by the credential store.
// Password and PIN are opaque comparison values and must never be
// serialized into an API response.
type Admin struct {
	ID       AdminID `json:"admin_id" db:"admin_id"`
	Name     string  `json:"admin_name" db:"admin_name"`
	Username string  `json:"username" db:"username"`
	Password string  `json:"password" db:"password"`
	PIN      string  `json:"pin" db:"pin"`
}

// ProbeRow is a single row returned by a store liveness probe
type ProbeRow struct {
	Test int `json:"test" db:"test"`
}
