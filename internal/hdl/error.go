package hdl

import "errors"

var ErrInternal = errors.New("internal error")
var ErrDecodeRequest = errors.New("decode request")
var ErrFileTooLarge = errors.New("file too large")

var ErrMissingToken = errors.New("token is required")
var ErrToRetrievePathArg = errors.New("error to retrieve path argument")
var ErrFailedToGetUser = errors.New("failed to get user from context")
