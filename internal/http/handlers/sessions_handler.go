package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"chargehub/internal/service"
)

// SessionsHandler exposes the lifecycle operations to the presentation layer.
type SessionsHandler struct {
	manager *service.Manager
	logger  *zap.Logger
}

// NewSessionsHandler builds handler set.
func NewSessionsHandler(manager *service.Manager, logger *zap.Logger) *SessionsHandler {
	return &SessionsHandler{
		manager: manager,
		logger:  logger,
	}
}

// HandleStart handles POST /sessions/start.
func (h *SessionsHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req service.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	session, err := h.manager.Start(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("start session failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"session": session})
}

// HandleStop handles POST /sessions/stop. Stopping with no active session is
// a normal outcome reported as a null record.
func (h *SessionsHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	record := h.manager.Stop()
	writeJSON(w, http.StatusOK, map[string]interface{}{"record": record})
}

// HandleQuery handles GET /sessions.
func (h *SessionsHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.Query())
}
