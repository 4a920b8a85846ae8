package lifecycle

import (
	"errors"
	"strings"

	"github.com/limbo/stepdiary/pkg/entity"
)

// Phase is the UI-session state. Registering and PendingVerification are
// modes layered on Anonymous: they never touch stored account state.
type Phase int

const (
	PhaseAnonymous Phase = iota
	PhaseRegistering
	PhasePendingVerification
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseRegistering:
		return "registering"
	case PhasePendingVerification:
		return "pending verification"
	case PhaseAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// HumanCheckQuestion is the fixed arithmetic challenge gating the
// password-change form.
const HumanCheckQuestion = "What is 7 + 5?"

const humanCheckAnswer = "12"

var ErrInvalidTransition = errors.New("operation isn't allowed in the current session phase")

// Machine holds one UI session. The authenticated username is the whole
// session identity, there is no token.
type Machine struct {
	phase           Phase
	username        string
	role            entity.Role
	pendingUsername string

	settingsOpen     bool
	settingsUnlocked bool
}

func New() *Machine {
	return &Machine{
		phase: PhaseAnonymous,
	}
}

func (m *Machine) Phase() Phase {
	return m.phase
}

// Identity returns the session identity while authenticated.
func (m *Machine) Identity() (string, entity.Role, bool) {
	if m.phase != PhaseAuthenticated {
		return "", "", false
	}
	return m.username, m.role, true
}

func (m *Machine) PendingUsername() string {
	return m.pendingUsername
}

func (m *Machine) BeginRegistration() error {
	if m.phase != PhaseAnonymous {
		return ErrInvalidTransition
	}
	m.phase = PhaseRegistering
	return nil
}

func (m *Machine) CancelRegistration() error {
	if m.phase != PhaseRegistering && m.phase != PhasePendingVerification {
		return ErrInvalidTransition
	}
	m.phase = PhaseAnonymous
	m.pendingUsername = ""
	return nil
}

// RegistrationSubmitted moves the session past the registration form:
// into PendingVerification when a code was issued, back to Anonymous
// otherwise.
func (m *Machine) RegistrationSubmitted(username string, pendingVerification bool) error {
	if m.phase != PhaseRegistering {
		return ErrInvalidTransition
	}
	if pendingVerification {
		m.phase = PhasePendingVerification
		m.pendingUsername = username
		return nil
	}
	m.phase = PhaseAnonymous
	return nil
}

func (m *Machine) VerificationCompleted() error {
	if m.phase != PhasePendingVerification {
		return ErrInvalidTransition
	}
	m.phase = PhaseAnonymous
	m.pendingUsername = ""
	return nil
}

func (m *Machine) LoggedIn(account *entity.Account) error {
	if m.phase != PhaseAnonymous {
		return ErrInvalidTransition
	}
	m.phase = PhaseAuthenticated
	m.username = account.Username
	m.role = account.Role
	return nil
}

// Logout drops the session identity and closes the settings gate.
func (m *Machine) Logout() error {
	if m.phase != PhaseAuthenticated {
		return ErrInvalidTransition
	}
	m.phase = PhaseAnonymous
	m.username = ""
	m.role = ""
	m.closeSettings()
	return nil
}

// OpenSettings is available only to authenticated non-admin users.
func (m *Machine) OpenSettings() error {
	if m.phase != PhaseAuthenticated || m.role == entity.RoleAdmin {
		return ErrInvalidTransition
	}
	m.settingsOpen = true
	return nil
}

func (m *Machine) SettingsOpen() bool {
	return m.settingsOpen
}

// AnswerHumanCheck unlocks the password-change form on a correct answer.
// Attempts are unlimited.
func (m *Machine) AnswerHumanCheck(answer string) bool {
	if !m.settingsOpen {
		return false
	}
	if strings.TrimSpace(answer) == humanCheckAnswer {
		m.settingsUnlocked = true
	}
	return m.settingsUnlocked
}

// SettingsUnlocked reports whether the human check has been passed in
// the currently open settings view.
func (m *Machine) SettingsUnlocked() bool {
	return m.settingsOpen && m.settingsUnlocked
}

// CloseSettings resets the human-check gate; it has to be answered again
// next time settings are opened.
func (m *Machine) CloseSettings() {
	m.closeSettings()
}

func (m *Machine) closeSettings() {
	m.settingsOpen = false
	m.settingsUnlocked = false
}
