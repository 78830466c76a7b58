package atm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulvj/atm-inventory-be/internal/apperr"
)

func newManager(t *testing.T) *SessionManager {
	t.Helper()
	return NewSessionManager(NewAccountStore())
}

func TestLoginCreatesSessionOnMenu(t *testing.T) {
	m := newManager(t)

	sess, account, err := m.Login("1234")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, ScreenMenu, sess.Screen)
	assert.Equal(t, "Vijis Durai R", account.Name)

	got, err := m.Get(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestLoginRejectsUnknownPIN(t *testing.T) {
	m := newManager(t)

	_, _, err := m.Login("9999")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
}

func TestLogoutInvalidatesToken(t *testing.T) {
	m := newManager(t)

	sess, _, err := m.Login("6200")
	require.NoError(t, err)

	m.Logout(sess.Token)
	_, err = m.Get(sess.Token)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))

	// Logging out twice is harmless.
	m.Logout(sess.Token)
}

func TestScreenFlow(t *testing.T) {
	m := newManager(t)
	sess, _, err := m.Login("1234")
	require.NoError(t, err)

	// Menu -> overlay -> menu, for every overlay.
	for _, overlay := range []Screen{ScreenBalance, ScreenDeposit, ScreenWithdraw, ScreenHistory} {
		current, err := m.EnterScreen(sess.Token, overlay)
		require.NoError(t, err)
		assert.Equal(t, overlay, current)

		current, err = m.CloseScreen(sess.Token)
		require.NoError(t, err)
		assert.Equal(t, ScreenMenu, current)
	}
}

func TestOverlayOnlyReachableFromMenu(t *testing.T) {
	m := newManager(t)
	sess, _, err := m.Login("1234")
	require.NoError(t, err)

	_, err = m.EnterScreen(sess.Token, ScreenDeposit)
	require.NoError(t, err)

	// Overlay to overlay is illegal.
	_, err = m.EnterScreen(sess.Token, ScreenWithdraw)
	assert.True(t, apperr.IsKind(err, apperr.KindDomain))

	// The failed transition did not move the session.
	got, err := m.Get(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, ScreenDeposit, got.Screen)
}

func TestEnterRejectsNonOverlayTargets(t *testing.T) {
	m := newManager(t)
	sess, _, err := m.Login("1234")
	require.NoError(t, err)

	for _, target := range []Screen{ScreenLogin, ScreenMenu, Screen("receipt")} {
		_, err := m.EnterScreen(sess.Token, target)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "target %q", target)
	}
}

func TestCloseOnMenuIsNoOp(t *testing.T) {
	m := newManager(t)
	sess, _, err := m.Login("1234")
	require.NoError(t, err)

	current, err := m.CloseScreen(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, ScreenMenu, current)
}

func TestConcurrentScreenAccess(t *testing.T) {
	m := newManager(t)
	sess, _, err := m.Login("1234")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = m.EnterScreen(sess.Token, ScreenDeposit)
				_, _ = m.CloseScreen(sess.Token)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := m.Get(sess.Token)
				if !assert.NoError(t, err) {
					return
				}
				// A reader only ever observes a legal screen.
				assert.True(t, got.Screen == ScreenMenu || got.Screen == ScreenDeposit)
			}
		}()
	}
	wg.Wait()
}

func TestScreenOpsRequireActiveSession(t *testing.T) {
	m := newManager(t)

	_, err := m.EnterScreen("no-such-token", ScreenBalance)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
	_, err = m.CloseScreen("no-such-token")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
}
