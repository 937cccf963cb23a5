package validation

import "errors"

var ErrFullNameIsRequired = errors.New("fullName is required")
var ErrEmailIsRequired = errors.New("email is required")
var ErrUsernameIsRequired = errors.New("username is required")
var ErrPasswordIsRequired = errors.New("password is required")
