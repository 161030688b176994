package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	cases := []struct {
		email string
		want  error
	}{
		{"", ErrEmailEmpty},
		{strings.Repeat("a", 250) + "@x.com", ErrEmailTooLong},
		{"not-an-address", ErrEmailInvalid},
		{"Alice <alice@example.com>", ErrEmailInvalid},
		{"missing@tld@twice", ErrEmailInvalid},
		{"alice@example.com", nil},
		{"a.b+tag@sub.example.org", nil},
	}

	for _, c := range cases {
		assert.ErrorIs(t, EmailValidator(c.email), c.want, "email %q", c.email)
	}
}

func TestPasswordValidator(t *testing.T) {
	cases := []struct {
		password string
		want     error
	}{
		{"", ErrPasswordEmpty},
		{"short", ErrPasswordTooShort},
		{"1234567", ErrPasswordTooShort},
		{"12345678", nil},
		{strings.Repeat("a", 255), nil},
		{strings.Repeat("a", 256), ErrPasswordTooLong},
	}

	for _, c := range cases {
		assert.ErrorIs(t, PasswordValidator(c.password), c.want, "password of length %d", len(c.password))
	}
}

func TestUsernameValidator(t *testing.T) {
	cases := []struct {
		username string
		want     error
	}{
		{"", ErrUsernameEmpty},
		{"ab", ErrUsernameLength},
		{strings.Repeat("a", 31), ErrUsernameLength},
		{"Alice", ErrUsernameCharset},
		{"al ice", ErrUsernameCharset},
		{"al!ce", ErrUsernameCharset},
		{"alice", nil},
		{"al.ice_99", nil},
	}

	for _, c := range cases {
		assert.ErrorIs(t, UsernameValidator(c.username), c.want, "username %q", c.username)
	}
}
