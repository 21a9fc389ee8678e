package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if hash == "correct horse battery" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := CheckPassword("correct horse battery", hash); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}

	if err := CheckPassword("wrong password", hash); err == nil {
		t.Fatal("expected mismatched password to fail verification")
	}
}

func TestTamperedHashFailsVerification(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	tampered := []byte(hash)
	last := len(tampered) - 1
	if tampered[last] == 'a' {
		tampered[last] = 'b'
	} else {
		tampered[last] = 'a'
	}

	if err := CheckPassword("correct horse battery", string(tampered)); err == nil {
		t.Fatal("expected tampered hash to fail verification")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	second, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if first == second {
		t.Fatal("expected two hashes of the same input to differ")
	}
}
