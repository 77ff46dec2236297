package engine

import "sync"

// AuthDatabase holds the username/password records the server checks client
// access against. A nil *AuthDatabase means access control is disabled.
type AuthDatabase struct {
	Realm string

	mu      sync.RWMutex
	records map[string]string
}

// NewAuthDatabase creates an empty database announcing the given realm.
func NewAuthDatabase(realm string) *AuthDatabase {
	return &AuthDatabase{
		Realm:   realm,
		records: make(map[string]string),
	}
}

// InsertUserRecord adds or replaces the password for username.
func (db *AuthDatabase) InsertUserRecord(username, password string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.records[username] = password
}

// Lookup returns the password recorded for username.
func (db *AuthDatabase) Lookup(username string) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	password, ok := db.records[username]
	return password, ok
}
