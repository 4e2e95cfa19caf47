package auth

import (
	"strings"
	"testing"
)

func testHasher() *Hasher {
	return NewHasher(Params{Memory: 1024, Iterations: 1, Parallelism: 1})
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
	if !h.Verify("s3cret", encoded) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("wrong", encoded) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHasher_SaltsDiffer(t *testing.T) {
	h := testHasher()
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("expected distinct salts, got identical hashes")
	}
}

func TestHasher_VerifyRejectsMalformedAndEmpty(t *testing.T) {
	h := testHasher()
	for _, encoded := range []string{"", "plain", "$argon2i$v=19$m=1,t=1,p=1$AA$AA", "$argon2id$v=18$m=1024,t=1,p=1$AA$AA"} {
		if h.Verify("anything", encoded) {
			t.Fatalf("expected %q to be rejected", encoded)
		}
	}
}
