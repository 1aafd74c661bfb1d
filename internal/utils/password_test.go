package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash must not equal the plain password")
	}
	if !VerifyPassword(hash, "hunter2") {
		t.Error("correct password should verify")
	}
	if VerifyPassword(hash, "hunter3") {
		t.Error("wrong password should not verify")
	}
}

func TestHashPasswordDefaultCost(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("HashPassword with zero cost: %v", err)
	}
	if !VerifyPassword(hash, "pw") {
		t.Error("default-cost hash should verify")
	}
}
