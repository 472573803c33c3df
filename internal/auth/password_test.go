package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/sakif/habitrack/internal/model"
)

// newTestPasswordService uses bcrypt cost 4 (the minimum) so tests run in
// milliseconds.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(4)
}

// =========================================================================
// Hash / Verify
// =========================================================================

func TestHash_OutputLooksBcrypt(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() does not look like a bcrypt hash: %q", hash)
	}
}

func TestHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	ps := newTestPasswordService()

	hash1, _ := ps.Hash("same-password")
	hash2, _ := ps.Hash("same-password")

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for the same password (salt must be random)")
	}
}

func TestHash_RejectsPasswordOver72Bytes(t *testing.T) {
	ps := newTestPasswordService()

	if _, err := ps.Hash(strings.Repeat("a", 73)); err == nil {
		t.Fatal("Hash() should return an error for passwords longer than 72 bytes")
	}
	if _, err := ps.Hash(strings.Repeat("a", 72)); err != nil {
		t.Fatalf("Hash() should accept a 72-byte password, got error: %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := newTestPasswordService()
	hash, _ := ps.Hash("the-real-password")

	err := ps.Verify(hash, "the-wrong-password")
	if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("Verify() error = %v, want ErrInvalidCredential", err)
	}
}

func TestVerify_GarbageHash(t *testing.T) {
	ps := newTestPasswordService()

	err := ps.Verify("not-a-valid-bcrypt-hash", "password")
	if err == nil {
		t.Fatal("Verify() should return an error for a garbage hash")
	}
	if errors.Is(err, ErrInvalidCredential) {
		t.Error("a malformed hash is a storage problem, not a wrong password")
	}
}

func TestNewPasswordServiceWithCost_OutOfRangeFallsBack(t *testing.T) {
	if got := NewPasswordServiceWithCost(1).cost; got != defaultCost {
		t.Errorf("cost = %d, want %d", got, defaultCost)
	}
	if got := NewPasswordServiceWithCost(10).cost; got != 10 {
		t.Errorf("cost = %d, want 10", got)
	}
}

// =========================================================================
// SetCredential / VerifyCredential
// =========================================================================

func TestSetCredential_StoresHashAndSalt(t *testing.T) {
	ps := newTestPasswordService()
	user := &model.User{}

	if err := ps.SetCredential(user, "fakeUserPwd"); err != nil {
		t.Fatalf("SetCredential() error = %v", err)
	}

	if user.PasswordHash == "" || user.PasswordHash == "fakeUserPwd" {
		t.Fatalf("PasswordHash = %q", user.PasswordHash)
	}
	if len(user.PasswordSalt) != 22 {
		t.Errorf("PasswordSalt length = %d, want 22", len(user.PasswordSalt))
	}
	if !strings.Contains(user.PasswordHash, user.PasswordSalt) {
		t.Error("salt should be the salt segment of the hash")
	}
}

func TestSetCredential_NewSaltEachTime(t *testing.T) {
	ps := newTestPasswordService()
	a, b := &model.User{}, &model.User{}

	_ = ps.SetCredential(a, "fakeUserPwd")
	_ = ps.SetCredential(b, "fakeUserPwd")

	if a.PasswordSalt == b.PasswordSalt {
		t.Error("two credentials for the same password share a salt")
	}
}

func TestVerifyCredential(t *testing.T) {
	ps := newTestPasswordService()
	user := &model.User{}
	if err := ps.SetCredential(user, "correct-horse"); err != nil {
		t.Fatalf("SetCredential() error = %v", err)
	}

	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"correct", "correct-horse", false},
		{"wrong", "battery-staple", true},
		{"empty", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ps.VerifyCredential(user, tc.password)
			if (err != nil) != tc.wantErr {
				t.Errorf("VerifyCredential() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestVerifyCredential_TamperedSalt(t *testing.T) {
	ps := newTestPasswordService()
	user := &model.User{}
	_ = ps.SetCredential(user, "correct-horse")

	user.PasswordSalt = strings.Repeat("x", 22)

	if err := ps.VerifyCredential(user, "correct-horse"); err == nil {
		t.Fatal("VerifyCredential() should fail when salt and hash disagree")
	}
}

func TestVerifyCredential_NoCredential(t *testing.T) {
	ps := newTestPasswordService()

	err := ps.VerifyCredential(&model.User{}, "anything")
	if !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("error = %v, want ErrInvalidCredential", err)
	}
}
