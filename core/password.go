package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-crypt/x/argon2"
	xbase64 "github.com/go-crypt/x/base64"
)

// argon2id parameters for new digests (19 MiB, 2 passes, 1 lane).
const (
	passwordTime    = 2
	passwordMemory  = 19 * 1024
	passwordThreads = 1
	passwordSaltLen = 16
	passwordKeyLen  = 32

	// upper bounds accepted when verifying stored digests
	maxPasswordTime    = 16
	maxPasswordMemory  = 256 * 1024
	maxPasswordThreads = 16

	passwordDigestPrefix = "$argon2id$"
)

var passwordEncoding = xbase64.AdaptedEncoding.WithPadding(base64.NoPadding)

type passwordParams struct {
	time, memory, threads uint32
}

// HashPassword returns an argon2id digest of password in PHC string form:
// "$argon2id$v=19$m=<KiB>,t=<passes>,p=<lanes>$<salt>$<key>".
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	salt := make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	params := passwordParams{time: passwordTime, memory: passwordMemory, threads: passwordThreads}
	key := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, passwordKeyLen)
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		passwordDigestPrefix, argon2.Version,
		params.memory, params.time, params.threads,
		passwordEncoding.EncodeToString(salt), passwordEncoding.EncodeToString(key)), nil
}

// IsPasswordDigest reports whether stored is a digest HashPassword can verify.
func IsPasswordDigest(stored string) bool {
	_, _, _, ok := parsePasswordDigest(stored)
	return ok
}

// VerifyPassword checks password against a stored value. Stored values that are
// not digests are treated as legacy clear text and compared in constant time.
func VerifyPassword(stored, password string) bool {
	if stored == "" {
		return false
	}
	params, salt, want, ok := parsePasswordDigest(stored)
	if !ok {
		if strings.HasPrefix(stored, passwordDigestPrefix) {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
	}
	got := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func parsePasswordDigest(stored string) (params passwordParams, salt, key []byte, ok bool) {
	rest, found := strings.CutPrefix(stored, passwordDigestPrefix)
	if !found {
		return params, nil, nil, false
	}
	parts := strings.Split(rest, "$")
	if len(parts) != 4 {
		return params, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[0], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, false
	}
	if _, err := fmt.Sscanf(parts[1], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return params, nil, nil, false
	}
	if params.time < 1 || params.time > maxPasswordTime ||
		params.threads < 1 || params.threads > maxPasswordThreads ||
		params.memory < 8*params.threads || params.memory > maxPasswordMemory {
		return params, nil, nil, false
	}

	salt, err := passwordEncoding.DecodeString(parts[2])
	if err != nil || len(salt) < 8 {
		return params, nil, nil, false
	}
	key, err = passwordEncoding.DecodeString(parts[3])
	if err != nil || len(key) < 16 {
		return params, nil, nil, false
	}
	return params, salt, key, true
}
