package atm

import "github.com/rahulvj/atm-inventory-be/internal/apperr"

// Screen identifies what an authenticated session is currently looking at.
// The flow mirrors the original interface: a main menu with four modal
// overlays, each reachable only from the menu and closing back to it.
type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenMenu     Screen = "menu"
	ScreenBalance  Screen = "balance"
	ScreenDeposit  Screen = "deposit"
	ScreenWithdraw Screen = "withdraw"
	ScreenHistory  Screen = "history"
)

// overlays are the screens reachable from the menu.
var overlays = map[Screen]bool{
	ScreenBalance:  true,
	ScreenDeposit:  true,
	ScreenWithdraw: true,
	ScreenHistory:  true,
}

// IsOverlay reports whether s is one of the four modal overlays.
func (s Screen) IsOverlay() bool { return overlays[s] }

// Enter moves the session onto an overlay. Only legal from the menu.
func (sess *Session) Enter(target Screen) error {
	if !target.IsOverlay() {
		return apperr.Validation("unknown screen: " + string(target))
	}
	if sess.Screen != ScreenMenu {
		return apperr.Domain("screen only reachable from the menu")
	}
	sess.Screen = target
	return nil
}

// Close dismisses the current overlay and returns to the menu. Closing the
// menu itself is a no-op.
func (sess *Session) Close() {
	if sess.Screen.IsOverlay() {
		sess.Screen = ScreenMenu
	}
}
