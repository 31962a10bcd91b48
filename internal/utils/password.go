package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the login password before it is stored on the profile.
// The hash is write-only: nothing reads it back, the identity label is what
// actually keys the account.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
