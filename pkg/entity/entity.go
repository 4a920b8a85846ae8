package entity

type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

type VerificationState string

const (
	// StateUnverified means the account was registered without a pending code.
	StateUnverified VerificationState = "unverified"
	// StatePending means a verification code was issued and not yet confirmed.
	StatePending  VerificationState = "pending"
	StateVerified VerificationState = "verified"
)

// Account is one directory record. Username is unique and immutable,
// the credential is compared by exact match.
type Account struct {
	Username    string            `json:"username"`
	Credential  string            `json:"credential"`
	Email       string            `json:"email,omitempty"`
	State       VerificationState `json:"state"`
	PendingCode string            `json:"pending_code,omitempty"`
	Role        Role              `json:"role"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Entry is one user's step count for one calendar date.
// Owner is derived from the storage key, not persisted inside the log document.
type Entry struct {
	ID    string `json:"id"`
	Owner string `json:"-"`
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// Stats are derived read-only figures over one step log.
type Stats struct {
	Count        int `json:"count"`
	TotalSteps   int `json:"total_steps"`
	AverageSteps int `json:"average_steps"`
}
