package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/AlexZinkM/solana-login/internal/model"
	"github.com/AlexZinkM/solana-login/internal/network"
	"github.com/AlexZinkM/solana-login/internal/session"
	"github.com/AlexZinkM/solana-login/solana"

	"go.uber.org/zap"
)

// Controller is the part of session.Controller the handlers drive
type Controller interface {
	Snapshot() session.Snapshot
	Login(ctx context.Context) error
	Logout(ctx context.Context, fast bool) error
	SwitchNetwork(ctx context.Context, id string) error
}

// Networks lists the selectable networks
type Networks interface {
	Networks() []model.NetworkConfig
}

// PasswordReader reads the keystore export password. The caller clears the result.
type PasswordReader func(prompt string) ([]byte, error)

// SessionHandler exposes the session controller over HTTP
type SessionHandler struct {
	ctrl         Controller
	networks     Networks
	exportPath   string
	readPassword PasswordReader
	log          *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(ctrl Controller, networks Networks, exportPath string, readPassword PasswordReader, log *zap.Logger) (*SessionHandler, error) {
	if ctrl == nil {
		return nil, errors.New("session controller is required")
	}
	if exportPath == "" {
		return nil, errors.New("EXPORT_FILE_PATH not set")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionHandler{
		ctrl:         ctrl,
		networks:     networks,
		exportPath:   exportPath,
		readPassword: readPassword,
		log:          log,
	}, nil
}

// GetSession handles GET /session
// @Summary      Get session state
// @Description  Returns the login status, active network, derived keypair and account state
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /session [get]
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, solana.DescribeSession(h.ctrl.Snapshot()))
}

// Login handles POST /session/login
// @Summary      Log in
// @Description  Runs interactive login with the authentication provider of the active network
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /session/login [post]
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if err := h.ctrl.Login(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solana.DescribeSession(h.ctrl.Snapshot()))
}

// Logout handles POST /session/logout
// @Summary      Log out
// @Description  Ends the session. fast=true keeps the provider session for quick restore.
// @Tags         session
// @Produce      json
// @Param        fast  query     bool  false  "Skip full provider teardown"
// @Success      200   {object}  model.SessionResponse
// @Failure      400   {object}  model.ErrorResponse
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	fast := false
	if raw := r.URL.Query().Get("fast"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid fast flag: use true or false", Code: "INVALID_REQUEST"})
			return
		}
		fast = v
	}

	if err := h.ctrl.Logout(r.Context(), fast); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solana.DescribeSession(h.ctrl.Snapshot()))
}

// Network handles GET and PUT /network
// @Summary      Get or switch the active network
// @Description  GET returns the active network and the list of networks. PUT persists a new active network and re-initializes the session.
// @Tags         network
// @Accept       json
// @Produce      json
// @Param        request  body      model.NetworkRequest  false  "Network to switch to (PUT only)"
// @Success      200      {object}  model.NetworkResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /network [get]
// @Router       /network [put]
func (h *SessionHandler) Network(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		var req model.NetworkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
			return
		}
		if req.Network == "" {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "network is required", Code: "INVALID_NETWORK"})
			return
		}
		if err := h.ctrl.SwitchNetwork(r.Context(), req.Network); err != nil {
			h.writeError(w, err)
			return
		}
	default:
		http.Error(w, "Method not allowed. Should be GET or PUT", http.StatusMethodNotAllowed)
		return
	}

	resp := model.NetworkResponse{Active: h.ctrl.Snapshot().Network}
	if h.networks != nil {
		resp.Networks = h.networks.Networks()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export handles POST /session/export
// @Summary      Export keystore
// @Description  Encrypts the session keypair into a .cwt file. The password is read from the terminal.
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.ExportResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /session/export [post]
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	snap := h.ctrl.Snapshot()
	if snap.Status != model.StatusLoggedIn || snap.Keypair == nil {
		h.writeError(w, session.ErrInvalidState)
		return
	}
	defer snap.Keypair.Zero()

	if h.readPassword == nil {
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "password input is not available", Code: "INTERNAL"})
		return
	}

	// Get password as []byte, use it, then zero it immediately
	password, err := h.readPassword("Enter keystore password: ")
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer clear(password)

	address, err := solana.ExportKeystore(h.exportPath, snap.Network.ID, snap.Keypair, password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("keystore exported", zap.String("address", address), zap.String("path", h.exportPath))
	writeJSON(w, http.StatusOK, model.ExportResponse{
		Success: true,
		Message: "Keystore exported successfully",
		Address: address,
	})
}

// writeError maps controller errors to status codes
func (h *SessionHandler) writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, network.ErrInvalidNetworkID):
		status, code = http.StatusBadRequest, "INVALID_NETWORK"
	case errors.Is(err, session.ErrInvalidState):
		status, code = http.StatusConflict, "INVALID_STATE"
	case errors.Is(err, session.ErrLoginFailed):
		status, code = http.StatusUnauthorized, "LOGIN_FAILED"
	case solana.IsFileExistsError(err):
		status, code = http.StatusConflict, "FILE_EXISTS"
	case errors.Is(err, session.ErrSuperseded):
		status, code = http.StatusConflict, "SUPERSEDED"
	case errors.Is(err, session.ErrProviderInitFailed):
		code = "PROVIDER_INIT_FAILED"
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
