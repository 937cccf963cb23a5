package http

import "errors"

var ErrAvatarFileIsRequired = errors.New("avatar file is missing")
var ErrFileIsRequired = errors.New("file is missing")
var ErrUsernameIsMissing = errors.New("username is missing")
