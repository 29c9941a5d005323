package password

import (
	"github.com/alexedwards/argon2id"
)

// Fixed work factor for the whole deployment; raising it raises login
// latency for every user, so it changes only with a rehash migration.
var params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type Hasher struct {
	pepper string
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// Hash salts and hashes a plaintext password. A fresh random salt is drawn
// per call, so hashing the same password twice yields different strings.
func (h *Hasher) Hash(plain string) (string, error) {
	return argon2id.CreateHash(plain+h.pepper, params)
}

// Verify reports whether plain matches the stored hash. A malformed stored
// hash yields false, not an error: the login path must not be able to tell
// a corrupt hash apart from a wrong password.
func (h *Hasher) Verify(plain, hash string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plain+h.pepper, hash)
	if err != nil {
		return false
	}
	return ok
}
