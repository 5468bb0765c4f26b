package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier abstracts password hashing and comparison so handlers
// can be tested without paying bcrypt cost.
type PasswordVerifier interface {
	// Hash produces a storable hash of the plaintext password.
	Hash(password string) (string, error)

	// Compare reports whether the plaintext matches the stored hash.
	Compare(hashedPassword, password string) error
}

// bcryptVerifier implements PasswordVerifier using bcrypt.
type bcryptVerifier struct {
	cost int
}

// NewBcryptVerifier creates a PasswordVerifier backed by bcrypt at the
// given cost. Non-positive cost falls back to bcrypt's default.
func NewBcryptVerifier(cost int) PasswordVerifier {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptVerifier{cost: cost}
}

func (v *bcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (v *bcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
