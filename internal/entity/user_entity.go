// FILE: internal/entity/user_entity.go
package entity

type SessionStatus string

const (
	SessionUnauthenticated SessionStatus = "unauthenticated"
	SessionAuthenticating  SessionStatus = "authenticating"
	SessionAuthenticated   SessionStatus = "authenticated"
)

// User is the server-owned account snapshot. It is replaced wholesale on
// every successful login/register/update/rehydrate and never patched
// field-by-field on the client.
//
// Timestamps stay as the wire strings: the backend emits ISO8601 without a
// timezone offset, which time.Time refuses to parse.
type User struct {
	Id        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FullName  string `json:"full_name,omitempty"`
	IsActive  bool   `json:"is_active"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Credential is the durable auth unit: a bearer token plus the last-known
// user snapshot, persisted and cleared together. A token without a usable
// snapshot forces a remote re-fetch on startup.
type Credential struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Session is a read-only snapshot of the process-local auth state.
// User is non-nil exactly when Status is SessionAuthenticated.
type Session struct {
	Status SessionStatus `json:"status"`
	User   *User         `json:"user,omitempty"`
}
