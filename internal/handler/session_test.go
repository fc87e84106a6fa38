package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlexZinkM/solana-login/internal/crypto"
	"github.com/AlexZinkM/solana-login/internal/model"
	"github.com/AlexZinkM/solana-login/internal/network"
	"github.com/AlexZinkM/solana-login/internal/provider"
	"github.com/AlexZinkM/solana-login/internal/session"

	"github.com/stretchr/testify/require"
)

type fakeController struct {
	snap      session.Snapshot
	loginErr  error
	logoutErr error
	switchErr error
	logouts   []bool
	switches  []string
}

func (f *fakeController) Snapshot() session.Snapshot { return f.snap }

func (f *fakeController) Login(ctx context.Context) error { return f.loginErr }

func (f *fakeController) Logout(ctx context.Context, fast bool) error {
	f.logouts = append(f.logouts, fast)
	return f.logoutErr
}

func (f *fakeController) SwitchNetwork(ctx context.Context, id string) error {
	f.switches = append(f.switches, id)
	if f.switchErr != nil {
		return f.switchErr
	}
	f.snap.Network = model.DefaultNetworks()[model.NetworkID(id)]
	return nil
}

type staticNetworks []model.NetworkConfig

func (n staticNetworks) Networks() []model.NetworkConfig { return n }

func newHandler(t *testing.T, ctrl *fakeController, exportPath string) *SessionHandler {
	t.Helper()
	all := model.DefaultNetworks()
	networks := staticNetworks{all[model.NetworkMainnet], all[model.NetworkDevnet], all[model.NetworkTestnet]}
	h, err := NewSessionHandler(ctrl, networks, exportPath, func(string) ([]byte, error) {
		return []byte("pw"), nil
	}, nil)
	require.NoError(t, err)
	return h
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestNewSessionHandlerValidates(t *testing.T) {
	_, err := NewSessionHandler(nil, nil, "wallet.cwt", nil, nil)
	require.Error(t, err)

	_, err = NewSessionHandler(&fakeController{}, nil, "", nil, nil)
	require.Error(t, err)
}

func TestGetSession(t *testing.T) {
	kp, err := crypto.DeriveKeypair(bytes.Repeat([]byte{0x01}, 32))
	require.NoError(t, err)
	ctrl := &fakeController{snap: session.Snapshot{
		Status:  model.StatusLoggedIn,
		Network: model.DefaultNetworks()[model.NetworkDevnet],
		Keypair: kp,
		Account: &model.AccountState{Exists: true, Lamports: 2_000_000_000},
	}}
	h := newHandler(t, ctrl, "wallet.cwt")

	rec := httptest.NewRecorder()
	h.GetSession(rec, httptest.NewRequest(http.MethodGet, "/session", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decode[model.SessionResponse](t, rec)
	require.Equal(t, model.StatusLoggedIn, resp.Status)
	require.Equal(t, model.NetworkDevnet, resp.Network.ID)
	require.Equal(t, kp.PublicKey.String(), resp.Address)
	require.Equal(t, "2.000000000", resp.SOL)

	rec = httptest.NewRecorder()
	h.GetSession(rec, httptest.NewRequest(http.MethodPost, "/session", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLoginErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: %w", session.ErrLoginFailed, provider.ErrCancelled), http.StatusUnauthorized, "LOGIN_FAILED"},
		{fmt.Errorf("%w: cannot login while logged_in", session.ErrInvalidState), http.StatusConflict, "INVALID_STATE"},
		{session.ErrSuperseded, http.StatusConflict, "SUPERSEDED"},
		{fmt.Errorf("%w: boom", session.ErrProviderInitFailed), http.StatusInternalServerError, "PROVIDER_INIT_FAILED"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			h := newHandler(t, &fakeController{loginErr: tc.err}, "wallet.cwt")

			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/session/login", nil))

			require.Equal(t, tc.status, rec.Code)
			resp := decode[model.ErrorResponse](t, rec)
			require.Equal(t, tc.code, resp.Code)
			require.Equal(t, tc.err.Error(), resp.Error)
		})
	}
}

func TestLogoutFastFlag(t *testing.T) {
	ctrl := &fakeController{snap: session.Snapshot{Status: model.StatusLoggedOut}}
	h := newHandler(t, ctrl, "wallet.cwt")

	for _, target := range []string{"/session/logout", "/session/logout?fast=true", "/session/logout?fast=false"} {
		rec := httptest.NewRecorder()
		h.Logout(rec, httptest.NewRequest(http.MethodPost, target, nil))
		require.Equal(t, http.StatusOK, rec.Code, target)
	}
	require.Equal(t, []bool{false, true, false}, ctrl.logouts)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/session/logout?fast=maybe", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, ctrl.logouts, 3)
}

func TestNetworkGet(t *testing.T) {
	ctrl := &fakeController{snap: session.Snapshot{Network: model.DefaultNetworks()[model.NetworkTestnet]}}
	h := newHandler(t, ctrl, "wallet.cwt")

	rec := httptest.NewRecorder()
	h.Network(rec, httptest.NewRequest(http.MethodGet, "/network", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.NetworkResponse](t, rec)
	require.Equal(t, model.NetworkTestnet, resp.Active.ID)
	require.Len(t, resp.Networks, 3)
	require.Equal(t, model.NetworkMainnet, resp.Networks[0].ID)
}

func TestNetworkPut(t *testing.T) {
	ctrl := &fakeController{}
	h := newHandler(t, ctrl, "wallet.cwt")

	rec := httptest.NewRecorder()
	h.Network(rec, httptest.NewRequest(http.MethodPut, "/network", strings.NewReader(`{"network":"devnet"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"devnet"}, ctrl.switches)
	require.Equal(t, model.NetworkDevnet, decode[model.NetworkResponse](t, rec).Active.ID)
}

func TestNetworkPutInvalid(t *testing.T) {
	ctrl := &fakeController{switchErr: fmt.Errorf("%w: %q", network.ErrInvalidNetworkID, "localnet")}
	h := newHandler(t, ctrl, "wallet.cwt")

	rec := httptest.NewRecorder()
	h.Network(rec, httptest.NewRequest(http.MethodPut, "/network", strings.NewReader(`{"network":"localnet"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_NETWORK", decode[model.ErrorResponse](t, rec).Code)

	rec = httptest.NewRecorder()
	h.Network(rec, httptest.NewRequest(http.MethodPut, "/network", strings.NewReader(`{`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, ctrl.switches, 1)

	for _, body := range []string{`{}`, `{"network":""}`} {
		rec = httptest.NewRecorder()
		h.Network(rec, httptest.NewRequest(http.MethodPut, "/network", strings.NewReader(body)))
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, "INVALID_NETWORK", decode[model.ErrorResponse](t, rec).Code)
	}
	require.Len(t, ctrl.switches, 1)

	rec = httptest.NewRecorder()
	h.Network(rec, httptest.NewRequest(http.MethodDelete, "/network", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExportRequiresLogin(t *testing.T) {
	h := newHandler(t, &fakeController{snap: session.Snapshot{Status: model.StatusLoggedOut}}, "wallet.cwt")

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodPost, "/session/export", nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "INVALID_STATE", decode[model.ErrorResponse](t, rec).Code)
}

func TestExportRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))

	kp, err := crypto.DeriveKeypair(bytes.Repeat([]byte{0x01}, 32))
	require.NoError(t, err)
	h := newHandler(t, &fakeController{snap: session.Snapshot{
		Status:  model.StatusLoggedIn,
		Network: model.DefaultNetworks()[model.NetworkDevnet],
		Keypair: kp,
	}}, path)

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodPost, "/session/export", nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "FILE_EXISTS", decode[model.ErrorResponse](t, rec).Code)
}
