package auth

import (
	"strings"
	"testing"
)

func TestPlaintextVerifier(t *testing.T) {
	v := NewPlaintextVerifier()

	stored, err := v.Hash("demo")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if stored != "demo" {
		t.Errorf("plaintext storage must keep the secret as-is, got %q", stored)
	}

	tests := []struct {
		name      string
		stored    string
		presented string
		want      bool
	}{
		{"match", "demo", "demo", true},
		{"mismatch", "demo", "Demo", false},
		{"empty presented", "demo", "", false},
		{"both empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Verify(tt.stored, tt.presented); got != tt.want {
				t.Errorf("Verify(%q, %q) = %v, want %v", tt.stored, tt.presented, got, tt.want)
			}
		})
	}
}

func TestBcryptVerifier(t *testing.T) {
	v := NewBcryptVerifier()

	stored, err := v.Hash("demo")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if stored == "demo" {
		t.Error("bcrypt storage must not keep the secret as-is")
	}
	if !strings.HasPrefix(stored, "$2") {
		t.Errorf("unexpected hash format: %q", stored)
	}

	if !v.Verify(stored, "demo") {
		t.Error("hashed secret does not verify")
	}
	if v.Verify(stored, "wrong") {
		t.Error("wrong secret verifies")
	}

	// Two hashes of the same secret differ (salted) but both verify.
	again, err := v.Hash("demo")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if again == stored {
		t.Error("expected salted hashes to differ")
	}
	if !v.Verify(again, "demo") {
		t.Error("second hash does not verify")
	}
}

func TestVerifiersInterchangeable(t *testing.T) {
	// The directory does Hash at write time and Verify at read time; any
	// verifier must round-trip through its own storage format.
	for _, v := range []struct {
		name string
		impl interface {
			Hash(string) (string, error)
			Verify(string, string) bool
		}
	}{
		{"plaintext", NewPlaintextVerifier()},
		{"bcrypt", NewBcryptVerifier()},
	} {
		t.Run(v.name, func(t *testing.T) {
			stored, err := v.impl.Hash("s3cret")
			if err != nil {
				t.Fatalf("hash: %v", err)
			}
			if !v.impl.Verify(stored, "s3cret") {
				t.Error("round trip failed")
			}
		})
	}
}
