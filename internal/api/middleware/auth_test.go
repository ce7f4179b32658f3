package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/lobby-accounts/internal/model"
	"github.com/mcoot/lobby-accounts/internal/services/auth"
	"github.com/mcoot/lobby-accounts/internal/testutil"
)

type fakeAuthenticator map[string]model.Caller

func (f fakeAuthenticator) Authenticate(ctx context.Context, token string) (model.Caller, error) {
	caller, ok := f[token]
	if !ok {
		return model.Caller{}, auth.ErrInvalidSession
	}
	return caller, nil
}

func echoCaller(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := MustGetCaller(r.Context())
		assert.Equal(t, "tok", GetToken(r.Context()))
		_, _ = w.Write([]byte(caller.Name + " " + caller.Roles.String()))
	})
}

func TestAuthResolvesCallerFromBearerToken(t *testing.T) {
	authn := fakeAuthenticator{"tok": {Name: "maex", Roles: model.RoleSet{model.RoleAdmin}}}
	h := Auth(authn)(echoCaller(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "maex [ROLE_ADMIN]", rr.Body.String())
}

func TestAuthAcceptsQueryToken(t *testing.T) {
	authn := fakeAuthenticator{"tok": {Name: "alice", Roles: model.RoleSet{model.RolePlayer}}}
	h := Auth(authn)(echoCaller(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?access_token=tok", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthRejectsMissingAndUnknownTokens(t *testing.T) {
	h := Auth(fakeAuthenticator{})(echoCaller(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRecoveryWritesJSONError(t *testing.T) {
	h := Recovery(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "INTERNAL_ERROR")
}
