package seriesmanager

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/gob"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-diceware/diceware"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/scrypt"
)

const (
	sessionAccountID         = "account_id"
	requestContextKeyAccount = "account"
	adminUserName            = "admin"
)

func init() {
	// Register the Account struct with gob so that it can be stored in a session
	gob.Register(Account{})
}

var ErrAccountNotFound = errors.New("seriesmanager: account not found")

func NewAccount() *Account {
	return &Account{
		ID:      uuid.New(),
		Created: time.Now(),
	}
}

type Account struct {
	ID uuid.UUID

	Created time.Time
	Updated time.Time
	Deleted time.Time

	Name  string
	Group Group

	PasswordHash string `json:"-"`
	PasswordSalt string `json:"-"`

	DefaultPassword string `json:"-"`
}

func (a Account) NeedsPasswordReset() bool {
	return a.DefaultPassword != ""
}

func (a Account) HasGroupPrivilege(g Group) bool {
	if g == a.Group {
		return true
	}

	if a.Group == GroupAdmin {
		return true
	}

	return false
}

type Group string

const (
	GroupRead  Group = "read"
	GroupAdmin Group = "admin"
)

// MustLoginMiddleware rejects requests whose session account does not
// carry the required group privilege.
func (ah *AccountHandler) MustLoginMiddleware(requiredGroup Group, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := getSession(r)

		accountID, ok := sess.Values[sessionAccountID].(string)

		if !ok {
			ah.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
			return
		}

		account, err := ah.store.FindAccountByID(accountID)

		if err != nil {
			logrus.WithError(err).Errorf("Could not find account for id: %s", accountID)
			delete(sess.Values, sessionAccountID)
			_ = sess.Save(r, w)

			ah.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
			return
		}

		if !account.HasGroupPrivilege(requiredGroup) {
			ah.respondJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient privileges"})
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestContextKeyAccount, account)))
	})
}

func (ah *AccountHandler) AdminAccessMiddleware(next http.Handler) http.Handler {
	return ah.MustLoginMiddleware(GroupAdmin, next)
}

func AccountFromRequest(r *http.Request) *Account {
	u, ok := r.Context().Value(requestContextKeyAccount).(*Account)

	if !ok {
		return &Account{}
	}

	return u
}

type AccountHandler struct {
	*BaseHandler

	store          Store
	accountManager *AccountManager
}

func NewAccountHandler(baseHandler *BaseHandler, store Store, accountManager *AccountManager) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    baseHandler,
		store:          store,
		accountManager: accountManager,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ah *AccountHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if err := ah.decodeBody(r, &req); err != nil {
		ah.respondError(w, r, err)
		return
	}

	err := ah.accountManager.login(req.Username, req.Password, r, w)

	switch err {
	case nil:
		ah.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	case ErrAccountNeedsPassword:
		ah.respondJSON(w, http.StatusOK, map[string]bool{"success": true, "needsPassword": true})
	case ErrInvalidUsernameOrPassword:
		ah.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case ErrTooManyLoginAttempts:
		ah.respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: err.Error()})
	default:
		ah.respondError(w, r, err)
	}
}

func (ah *AccountHandler) logout(w http.ResponseWriter, r *http.Request) {
	sess := getSession(r)
	delete(sess.Values, sessionAccountID)

	_ = sess.Save(r, w)

	ah.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type newPasswordRequest struct {
	Password string `json:"password"`
}

func (ah *AccountHandler) newPassword(w http.ResponseWriter, r *http.Request) {
	var req newPasswordRequest

	if err := ah.decodeBody(r, &req); err != nil {
		ah.respondError(w, r, err)
		return
	}

	if len(req.Password) < 8 {
		ah.respondError(w, r, ValidationError("passwords must be at least 8 characters"))
		return
	}

	account := AccountFromRequest(r)

	if account.Name == "" {
		ah.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
		return
	}

	if err := ah.accountManager.changePassword(account, req.Password); err != nil {
		ah.respondError(w, r, err)
		return
	}

	ah.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (ah *AccountHandler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := ah.store.ListAccounts()

	if err != nil {
		ah.respondError(w, r, err)
		return
	}

	ah.respondJSON(w, http.StatusOK, accounts)
}

type accountRequest struct {
	Username string `json:"username"`
	Group    Group  `json:"group"`
}

func (ah *AccountHandler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest

	if err := ah.decodeBody(r, &req); err != nil {
		ah.respondError(w, r, err)
		return
	}

	if req.Username == "" {
		ah.respondError(w, r, ValidationError("an account needs a username"))
		return
	}

	if req.Group != GroupRead && req.Group != GroupAdmin {
		ah.respondError(w, r, ValidationError("account group must be read or admin"))
		return
	}

	account, defaultPassword, err := ah.accountManager.createAccount(req.Username, req.Group)

	if err != nil {
		ah.respondError(w, r, err)
		return
	}

	ah.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"account":         account,
		"defaultPassword": defaultPassword,
	})
}

func (ah *AccountHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	account, err := ah.accountManager.resetPassword(chi.URLParam(r, "accountID"))

	if err != nil {
		ah.respondError(w, r, err)
		return
	}

	ah.respondJSON(w, http.StatusOK, map[string]interface{}{
		"account":         account,
		"defaultPassword": account.DefaultPassword,
	})
}

func (ah *AccountHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := ah.store.DeleteAccount(chi.URLParam(r, "accountID")); err != nil {
		ah.respondError(w, r, err)
		return
	}

	ah.respondJSON(w, http.StatusNoContent, nil)
}

var (
	ErrAccountNeedsPassword      = errors.New("seriesmanager: account needs to set a password")
	ErrInvalidUsernameOrPassword = errors.New("seriesmanager: invalid username or password")
)

type AccountManager struct {
	store    Store
	throttle LoginThrottle
}

func NewAccountManager(store Store, throttle LoginThrottle) *AccountManager {
	return &AccountManager{
		store:    store,
		throttle: throttle,
	}
}

func (am *AccountManager) login(username, password string, r *http.Request, w http.ResponseWriter) error {
	if err := am.throttle.Allow(username); err != nil {
		return err
	}

	accounts, err := am.store.ListAccounts()

	if err != nil {
		return err
	}

	for _, account := range accounts {
		if username != account.Name {
			continue
		}

		if (account.NeedsPasswordReset() && password == account.DefaultPassword) ||
			(account.Name == adminUserName && config != nil && config.Accounts.AdminPasswordOverride != "" && password == config.Accounts.AdminPasswordOverride) {
			// first log in of the account, direct them to set a password
			am.throttle.Success(username)

			sess := getSession(r)
			sess.Values[sessionAccountID] = account.ID.String()

			if err := sess.Save(r, w); err != nil {
				return err
			}

			return ErrAccountNeedsPassword
		}

		passwordHash, err := hashPassword([]byte(password), []byte(account.PasswordSalt))

		if err != nil {
			return err
		}

		if subtle.ConstantTimeCompare([]byte(account.PasswordHash), []byte(passwordHash)) == 1 {
			am.throttle.Success(username)

			sess := getSession(r)
			sess.Values[sessionAccountID] = account.ID.String()

			return sess.Save(r, w)
		}

		break
	}

	am.throttle.Failure(username)

	return ErrInvalidUsernameOrPassword
}

func (am *AccountManager) createAccount(username string, group Group) (*Account, string, error) {
	existing, err := am.store.FindAccountByName(username)

	if err != nil && err != ErrAccountNotFound {
		return nil, "", err
	}

	if existing != nil {
		return nil, "", ValidationError("an account with that username already exists")
	}

	defaultPass, err := diceware.Generate(4)

	if err != nil {
		return nil, "", err
	}

	account := NewAccount()
	account.Name = username
	account.Group = group
	account.DefaultPassword = strings.Join(defaultPass, "-")

	if err := am.store.UpsertAccount(account); err != nil {
		return nil, "", err
	}

	return account, account.DefaultPassword, nil
}

func (am *AccountManager) resetPassword(accountID string) (*Account, error) {
	account, err := am.store.FindAccountByID(accountID)

	if err != nil {
		return nil, err
	}

	defaultPass, err := diceware.Generate(4)

	if err != nil {
		return nil, err
	}

	account.DefaultPassword = strings.Join(defaultPass, "-")
	account.PasswordSalt = ""
	account.PasswordHash = ""

	return account, am.store.UpsertAccount(account)
}

func (am *AccountManager) changePassword(account *Account, password string) error {
	salt, err := generateSalt()

	if err != nil {
		return err
	}

	pass, err := hashPassword([]byte(password), []byte(salt))

	if err != nil {
		return err
	}

	account.DefaultPassword = ""
	account.PasswordSalt = salt
	account.PasswordHash = pass

	return am.store.UpsertAccount(account)
}

func hashPassword(password, salt []byte) (string, error) {
	pass, err := scrypt.Key(password, salt, 16384, 8, 1, 64)

	if err != nil {
		return "", err
	}

	return hex.EncodeToString(pass), nil
}

func generateSalt() (string, error) {
	salt := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, salt)

	if err != nil {
		return "", err
	}

	return hex.EncodeToString(salt), err
}
