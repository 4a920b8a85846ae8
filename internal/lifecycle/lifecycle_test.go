package lifecycle_test

import (
	"testing"

	"github.com/limbo/stepdiary/internal/lifecycle"
	"github.com/limbo/stepdiary/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationFlow(t *testing.T) {
	m := lifecycle.New()
	assert.Equal(t, lifecycle.PhaseAnonymous, m.Phase())

	t.Run("registration with verification", func(t *testing.T) {
		require.NoError(t, m.BeginRegistration())
		assert.Equal(t, lifecycle.PhaseRegistering, m.Phase())
		require.NoError(t, m.RegistrationSubmitted("alice", true))
		assert.Equal(t, lifecycle.PhasePendingVerification, m.Phase())
		assert.Equal(t, "alice", m.PendingUsername())
		require.NoError(t, m.VerificationCompleted())
		assert.Equal(t, lifecycle.PhaseAnonymous, m.Phase())
		assert.Empty(t, m.PendingUsername())
	})
	t.Run("registration without verification", func(t *testing.T) {
		require.NoError(t, m.BeginRegistration())
		require.NoError(t, m.RegistrationSubmitted("bob", false))
		assert.Equal(t, lifecycle.PhaseAnonymous, m.Phase())
	})
	t.Run("cancel returns to anonymous", func(t *testing.T) {
		require.NoError(t, m.BeginRegistration())
		require.NoError(t, m.CancelRegistration())
		assert.Equal(t, lifecycle.PhaseAnonymous, m.Phase())
	})
	t.Run("invalid transitions", func(t *testing.T) {
		assert.ErrorIs(t, m.RegistrationSubmitted("x", true), lifecycle.ErrInvalidTransition)
		assert.ErrorIs(t, m.VerificationCompleted(), lifecycle.ErrInvalidTransition)
		assert.ErrorIs(t, m.Logout(), lifecycle.ErrInvalidTransition)
	})
}

func TestAuthenticatedSession(t *testing.T) {
	m := lifecycle.New()
	account := &entity.Account{Username: "alice", Role: entity.RoleStandard}
	require.NoError(t, m.LoggedIn(account))
	assert.Equal(t, lifecycle.PhaseAuthenticated, m.Phase())

	username, role, ok := m.Identity()
	require.True(t, ok)
	assert.Equal(t, "alice", username)
	assert.Equal(t, entity.RoleStandard, role)

	t.Run("no double login", func(t *testing.T) {
		assert.ErrorIs(t, m.LoggedIn(account), lifecycle.ErrInvalidTransition)
	})
	t.Run("no registration while authenticated", func(t *testing.T) {
		assert.ErrorIs(t, m.BeginRegistration(), lifecycle.ErrInvalidTransition)
	})
	t.Run("logout drops the identity", func(t *testing.T) {
		require.NoError(t, m.Logout())
		assert.Equal(t, lifecycle.PhaseAnonymous, m.Phase())
		_, _, ok := m.Identity()
		assert.False(t, ok)
	})
}

func TestSettingsGate(t *testing.T) {
	t.Run("admin has no settings surface", func(t *testing.T) {
		m := lifecycle.New()
		require.NoError(t, m.LoggedIn(&entity.Account{Username: "admin", Role: entity.RoleAdmin}))
		assert.ErrorIs(t, m.OpenSettings(), lifecycle.ErrInvalidTransition)
	})
	t.Run("anonymous has no settings surface", func(t *testing.T) {
		m := lifecycle.New()
		assert.ErrorIs(t, m.OpenSettings(), lifecycle.ErrInvalidTransition)
	})

	m := lifecycle.New()
	require.NoError(t, m.LoggedIn(&entity.Account{Username: "alice", Role: entity.RoleStandard}))
	require.NoError(t, m.OpenSettings())

	t.Run("wrong answer keeps the gate closed", func(t *testing.T) {
		assert.False(t, m.AnswerHumanCheck("7"))
		assert.False(t, m.SettingsUnlocked())
	})
	t.Run("unlimited attempts, right answer opens", func(t *testing.T) {
		assert.True(t, m.AnswerHumanCheck(" 12 "))
		assert.True(t, m.SettingsUnlocked())
	})
	t.Run("closing settings resets the gate", func(t *testing.T) {
		m.CloseSettings()
		assert.False(t, m.SettingsUnlocked())
		require.NoError(t, m.OpenSettings())
		assert.False(t, m.SettingsUnlocked())
	})
	t.Run("logout resets the gate", func(t *testing.T) {
		assert.True(t, m.AnswerHumanCheck("12"))
		require.NoError(t, m.Logout())
		require.NoError(t, m.LoggedIn(&entity.Account{Username: "alice", Role: entity.RoleStandard}))
		require.NoError(t, m.OpenSettings())
		assert.False(t, m.SettingsUnlocked())
	})
	t.Run("answer outside open settings does nothing", func(t *testing.T) {
		m.CloseSettings()
		assert.False(t, m.AnswerHumanCheck("12"))
	})
}
