package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rahulvj/atm-inventory-be/internal/apperr"
	"github.com/rahulvj/atm-inventory-be/internal/atm"
	"github.com/rahulvj/atm-inventory-be/internal/models"
)

// ATMHandler handles HTTP requests for the ATM app.
type ATMHandler struct {
	store    *atm.AccountStore
	sessions *atm.SessionManager
	logoPath string
}

// NewATMHandler creates a new ATMHandler.
func NewATMHandler(store *atm.AccountStore, sessions *atm.SessionManager, logoPath string) *ATMHandler {
	return &ATMHandler{store: store, sessions: sessions, logoPath: logoPath}
}

// sessionKey is the context key for the resolved ATM session.
type sessionKey struct{}

const sessionCookie = "atm_session"

// LoginPayload defines the structure for PIN login requests.
type LoginPayload struct {
	PIN string `json:"pin"`
}

// AmountPayload carries the raw text of a deposit or withdraw form.
type AmountPayload struct {
	Amount string `json:"amount"`
}

// Login authenticates a PIN and opens a session.
func (h *ATMHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	sess, account, err := h.sessions.Login(strings.TrimSpace(payload.PIN))
	if err != nil {
		log.Warn().Msg("Failed ATM login attempt")
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.Token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":   sess.Token,
		"screen":  sess.Screen,
		"account": account,
	})
}

// SessionMiddleware resolves the session token from the cookie or the
// Authorization header and stores the session in the request context.
func (h *ATMHandler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, "Bearer ")
			if len(parts) == 2 {
				token = parts[1]
			}
		}
		if token == "" {
			if cookie, err := r.Cookie(sessionCookie); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			writeError(w, apperr.Authentication("no active session"))
			return
		}

		sess, err := h.sessions.Get(token)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// session pulls the resolved session out of the request context. It is a
// copy made by the manager; the live screen state is only touched through
// manager calls.
func session(r *http.Request) atm.Session {
	sess, _ := r.Context().Value(sessionKey{}).(atm.Session)
	return sess
}

// Logout destroys the active session and clears the cookie.
func (h *ATMHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(session(r).Token)
	http.SetCookie(w, &http.Cookie{
		Name:    sessionCookie,
		Value:   "",
		Expires: time.Unix(0, 0),
		Path:    "/",
	})
	w.WriteHeader(http.StatusNoContent)
}

// GetAccount returns the display data of the active account.
func (h *ATMHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.store.Lookup(session(r).PIN)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// GetBalance returns the current balance.
func (h *ATMHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.store.Balance(session(r).PIN)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance":   balance,
		"formatted": fmt.Sprintf("$%.2f", balance),
	})
}

// Deposit adds funds to the active account.
func (h *ATMHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.transact(w, r, h.store.Deposit)
}

// Withdraw removes funds from the active account.
func (h *ATMHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.transact(w, r, h.store.Withdraw)
}

// transact is the shared deposit/withdraw flow: decode the form text,
// coerce it, apply the operation, report the new balance. The failure path
// leaves the account untouched and keeps the session on its screen.
func (h *ATMHandler) transact(w http.ResponseWriter, r *http.Request, op func(pin string, amount float64) (models.Account, error)) {
	var payload AmountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	amount, err := atm.ParseAmount(payload.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := op(session(r).PIN, amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance": account.Balance,
		"message": account.Transactions[len(account.Transactions)-1],
	})
}

// GetHistory returns the transaction log of the active account.
func (h *ATMHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.store.History(session(r).PIN)
	if err != nil {
		writeError(w, err)
		return
	}
	if transactions == nil {
		transactions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": transactions})
}

// GetScreen reports the session's current screen.
func (h *ATMHandler) GetScreen(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"screen": string(session(r).Screen)})
}

// SetScreen moves the session between the menu and its overlays. Posting
// "menu" closes the current overlay; posting an overlay name opens it.
func (h *ATMHandler) SetScreen(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Screen string `json:"screen"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	token := session(r).Token
	target := atm.Screen(payload.Screen)

	var current atm.Screen
	var err error
	if target == atm.ScreenMenu {
		current, err = h.sessions.CloseScreen(token)
	} else {
		current, err = h.sessions.EnterScreen(token, target)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"screen": string(current)})
}

// GetLogo serves the optional decorative asset. A missing file is not an
// error at startup; here it is simply a 404.
func (h *ATMHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.logoPath); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, h.logoPath)
}
