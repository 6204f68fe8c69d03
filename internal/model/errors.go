package model

import "errors"

// ErrInvalidAdmin is returned when saving an admin record missing a field lookups depend on
var ErrInvalidAdmin = errors.New("admin record is missing required fields")
