// Package web is presentation glue: a JSON API over the mirror and the
// session resolver for the browser client. All ordering rules live below
// it; this layer only translates refusals into status codes the UI turns
// into disabled controls.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"class-order/logging"
	"class-order/mirror"
	"class-order/models"
	"class-order/notify"
	"class-order/services"
	"class-order/session"

	"github.com/julienschmidt/httprouter"
)

type Server struct {
	mirror   *mirror.Mirror
	sessions *session.Resolver
	notifier *notify.Notifier
}

func NewServer(m *mirror.Mirror, r *session.Resolver, n *notify.Notifier) *Server {
	return &Server{mirror: m, sessions: r, notifier: n}
}

func (s *Server) Router() *httprouter.Router {
	router := httprouter.New()

	router.POST("/api/login", s.handleLogin)
	router.POST("/api/logout", s.handleLogout)
	router.GET("/api/state", s.handleState)
	router.GET("/api/menu", s.handleMenu)
	router.POST("/api/retry-sync", s.handleRetrySync)

	router.POST("/api/cart/add", s.student(s.handleCartAdd))
	router.POST("/api/cart/remove", s.student(s.handleCartRemove))
	router.POST("/api/cart/quantity", s.student(s.handleCartQuantity))
	router.POST("/api/order/submit", s.student(s.handleSubmit))
	router.POST("/api/order/cancel", s.student(s.handleCancel))

	router.POST("/api/admin/system", s.admin(s.handleSystem))
	router.POST("/api/admin/deadline", s.admin(s.handleDeadline))
	router.POST("/api/admin/maxprice", s.admin(s.handleMaxPrice))
	router.POST("/api/admin/reset-order", s.admin(s.handleResetOrder))
	router.POST("/api/admin/reset-all", s.admin(s.handleResetAll))
	router.GET("/api/admin/orders", s.admin(s.handleAdminOrders))
	router.GET("/api/admin/stats", s.admin(s.handleAdminStats))
	router.GET("/api/admin/export.csv", s.admin(s.handleExport))

	return router
}

// identity pulls the acting identity out of the bearer token.
func (s *Server) identity(r *http.Request) (models.Identity, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return models.Identity{}, false
	}
	return s.sessions.Resolve(strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
}

type identityHandler func(http.ResponseWriter, *http.Request, models.Identity)

func (s *Server) student(h identityHandler) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id, ok := s.identity(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		if id.Role != models.RoleStudent {
			writeError(w, http.StatusForbidden, "student session required")
			return
		}
		h(w, r, id)
	}
}

func (s *Server) admin(h identityHandler) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id, ok := s.identity(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		if !id.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin session required")
			return
		}
		h(w, r, id)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.GetLogger().Warnf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writePolicy maps a core refusal onto a status code. Policy refusals are
// 409s the UI shows as disabled controls, not failures.
func writePolicy(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	case errors.Is(err, mirror.ErrUnknownItem), errors.Is(err, mirror.ErrNoOrder):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrClosed),
		errors.Is(err, services.ErrSubmitted),
		errors.Is(err, services.ErrNeedMain),
		errors.Is(err, services.ErrOverBudget),
		errors.Is(err, services.ErrEmptyCart):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
