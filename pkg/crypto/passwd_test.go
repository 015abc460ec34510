package crypto

import "testing"

func TestHashAndVerify(t *testing.T) {
	h, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h == "hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword("hunter2", h) {
		t.Error("correct password did not verify")
	}
	if VerifyPassword("hunter3", h) {
		t.Error("wrong password verified")
	}
	if VerifyPassword("", h) {
		t.Error("empty password verified")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same input are identical; salt missing")
	}
	if !VerifyPassword("same-input", a) || !VerifyPassword("same-input", b) {
		t.Error("salted hashes should both verify")
	}
}
