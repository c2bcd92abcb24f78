// Package clicks counts outbound redirects from the index to the
// externally hosted articles, without storing raw visitor data: IPs are
// hashed with a per-installation salt before they touch the database.
package clicks

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Click is a single recorded redirect through /go/:slug/:lang/.
type Click struct {
	ID        int64
	Slug      string
	Lang      string // upper-case language tag
	IPHash    string // salted hash, never the raw IP
	Referrer  string
	Timestamp time.Time
}

// SlugCount pairs an entry slug with its click count.
type SlugCount struct {
	Slug   string
	Lang   string
	Clicks int
}

// salt holds the per-installation random salt for IP hashing, protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing.
// Must be called once at startup before any clicks are recorded.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

// HashIP returns the salted hash of an IP address. Before InitSalt the
// hash is still deterministic but unsalted; callers should initialize
// the salt at startup.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(salt.value + ip))
	return hex.EncodeToString(sum[:])
}
