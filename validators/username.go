package validators

import (
	"errors"
	"regexp"
)

var (
	ErrUsernameEmpty   = errors.New("no username provided")
	ErrUsernameLength  = errors.New("username must be between 3 and 30 characters long")
	ErrUsernameCharset = errors.New("username may only contain lowercase letters, digits, dots and underscores")

	usernameRe = regexp.MustCompile(`^[a-z0-9._]+$`)
)

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if len(u) < 3 || len(u) > 30 {
		return ErrUsernameLength
	}

	if !usernameRe.MatchString(u) {
		return ErrUsernameCharset
	}

	return nil
}
