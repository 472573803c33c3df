// Package auth holds the credential service (bcrypt), the token service (JWT)
// and the HTTP middleware that authenticates bearer tokens.
//
// CREDENTIAL FORMAT:
// bcrypt embeds a fresh random salt in every hash it produces:
//
//	$2a$12$<22-char salt><31-char hash>
//	 ^   ^
//	 |   cost
//	 version
//
// The full string is stored in users.password_hash. The 22-char salt segment is
// also copied to users.password_salt so the per-user salt is visible in the
// schema; VerifyCredential checks the two still agree before comparing.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/habitrack/internal/model"
)

// defaultCost is the bcrypt work factor. Cost 12 takes roughly 250ms on a
// modern server.
const defaultCost = 12

// maxPasswordBytes is the bcrypt input limit. Longer input is silently
// truncated by the algorithm, so it is rejected instead.
const maxPasswordBytes = 72

// salt segment position inside a bcrypt hash ("$2a$12$" is 7 bytes).
const (
	saltStart = 7
	saltEnd   = saltStart + 22
)

// ErrInvalidCredential is returned when a password does not match.
var ErrInvalidCredential = errors.New("auth: invalid password")

// PasswordService hashes and verifies user credentials at a fixed bcrypt cost.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceWithCost is used when the cost comes from configuration.
// Values outside bcrypt's range fall back to the default.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultCost
	}
	return &PasswordService{cost: cost}
}

// NewPasswordServiceForTest creates a PasswordService with the given cost
// without range checks. Do NOT use in production.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", fmt.Errorf("auth: password must be %d bytes or fewer", maxPasswordBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks whether a plaintext password matches a stored bcrypt hash.
// The comparison is constant-time.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredential
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}

// SetCredential replaces the user's stored hash and salt. The plaintext is not
// kept anywhere on the user.
func (p *PasswordService) SetCredential(user *model.User, plaintext string) error {
	hash, err := p.Hash(plaintext)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.PasswordSalt = saltOf(hash)
	return nil
}

// VerifyCredential recomputes the hash of plaintext with the user's stored salt
// and compares it to the stored hash.
func (p *PasswordService) VerifyCredential(user *model.User, plaintext string) error {
	if user.PasswordHash == "" {
		return ErrInvalidCredential
	}
	if user.PasswordSalt != "" && user.PasswordSalt != saltOf(user.PasswordHash) {
		return errors.New("auth: stored salt does not match stored hash")
	}
	return p.Verify(user.PasswordHash, plaintext)
}

func saltOf(hash string) string {
	if len(hash) < saltEnd {
		return ""
	}
	return hash[saltStart:saltEnd]
}
