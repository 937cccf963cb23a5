package validation

import "github.com/vidora/backend/internal/dto"

// CreateUserRequest fails fast on any blank required field, before any
// uniqueness check or media upload runs.
func CreateUserRequest(req *dto.CreateUserRequest) error {
	if req.FullName == "" {
		return ErrFullNameIsRequired
	}

	if req.Email == "" {
		return ErrEmailIsRequired
	}

	if req.Username == "" {
		return ErrUsernameIsRequired
	}

	if req.Password == "" {
		return ErrPasswordIsRequired
	}
	return nil
}

func LoginRequest(req *dto.LoginRequest) error {
	if req.Email == "" && req.Username == "" {
		return ErrEmailIsRequired
	}

	if req.Password == "" {
		return ErrPasswordIsRequired
	}
	return nil
}

func ChangePasswordRequest(req *dto.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return ErrPasswordIsRequired
	}
	return nil
}
