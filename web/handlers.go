package web

import (
	"net/http"
	"time"

	"class-order/logging"
	"class-order/menu"
	"class-order/models"
	"class-order/services"
	"class-order/session"

	"github.com/julienschmidt/httprouter"
)

type loginRequest struct {
	Name       string `json:"name"`
	SeatNumber string `json:"seatNumber"`
	IsAdmin    bool   `json:"isAdmin"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Token    string          `json:"token"`
	Identity models.Identity `json:"identity"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	token, id, err := s.sessions.Login(req.Name, req.SeatNumber, req.IsAdmin, req.Password)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, loginResponse{Token: token, Identity: id})
	case session.ErrBadPassword:
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 {
		s.sessions.Logout(auth[7:])
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// stateResponse is everything the client view derives from: the caller's
// order (students), settings, current submit blockers and the advisory
// countdown.
type stateResponse struct {
	Identity         *models.Identity       `json:"identity,omitempty"`
	Settings         models.SystemSettings  `json:"settings"`
	Order            *models.Order          `json:"order,omitempty"`
	SubmitBlockers   []string               `json:"submitBlockers,omitempty"`
	MainCount        int                    `json:"mainCount"`
	SetCount         int                    `json:"setCount"`
	DeadlineSecsLeft *int64                 `json:"deadlineSecondsLeft,omitempty"`
	SyncError        string                 `json:"syncError,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	st := s.mirror.Settings()
	resp := stateResponse{Settings: st}

	if id, ok := s.identity(r); ok {
		resp.Identity = &id
		if id.Role == models.RoleStudent {
			if o, ok := s.mirror.OrderFor(id.ID); ok {
				resp.Order = &o
				resp.SubmitBlockers = services.SubmitBlockers(o, st)
				resp.MainCount = services.MainCount(o)
				resp.SetCount = services.SetCount(o)
			}
		}
	}

	if st.Deadline != nil {
		left := (*st.Deadline - time.Now().UnixMilli()) / 1000
		if left < 0 {
			left = 0
		}
		resp.DeadlineSecsLeft = &left
	}
	if err := s.mirror.LastWriteError(); err != nil {
		resp.SyncError = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMenu(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, menu.Items())
}

func (s *Server) handleRetrySync(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]bool{"retried": s.mirror.Retry()})
}

type cartRequest struct {
	ItemID string `json:"itemId"`
	Delta  int    `json:"delta"`
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request, id models.Identity) {
	var req cartRequest
	if !decode(w, r, &req) {
		return
	}
	writePolicy(w, s.mirror.AddItem(id.ID, req.ItemID))
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request, id models.Identity) {
	var req cartRequest
	if !decode(w, r, &req) {
		return
	}
	writePolicy(w, s.mirror.RemoveItem(id.ID, req.ItemID))
}

func (s *Server) handleCartQuantity(w http.ResponseWriter, r *http.Request, id models.Identity) {
	var req cartRequest
	if !decode(w, r, &req) {
		return
	}
	writePolicy(w, s.mirror.AdjustQuantity(id.ID, req.ItemID, req.Delta))
}

func (s *Server) handleSubmit(w http.ResponseWriter, _ *http.Request, id models.Identity) {
	err := s.mirror.Submit(id.ID)
	if err == nil {
		if o, ok := s.mirror.OrderFor(id.ID); ok {
			s.notifier.OrderSubmitted(o)
		}
	}
	writePolicy(w, err)
}

func (s *Server) handleCancel(w http.ResponseWriter, _ *http.Request, id models.Identity) {
	writePolicy(w, s.mirror.Cancel(id.ID))
}

// --- Admin ---

type systemRequest struct {
	IsOpen bool `json:"isOpen"`
}

func (s *Server) handleSystem(w http.ResponseWriter, r *http.Request, _ models.Identity) {
	var req systemRequest
	if !decode(w, r, &req) {
		return
	}
	s.mirror.ToggleSystem(req.IsOpen)
	s.notifier.SystemToggled(req.IsOpen)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type deadlineRequest struct {
	Deadline *int64 `json:"deadline"` // unix milliseconds, null clears
}

func (s *Server) handleDeadline(w http.ResponseWriter, r *http.Request, _ models.Identity) {
	var req deadlineRequest
	if !decode(w, r, &req) {
		return
	}
	s.mirror.SetDeadline(req.Deadline)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type maxPriceRequest struct {
	MaxPrice int64 `json:"maxPrice"`
}

func (s *Server) handleMaxPrice(w http.ResponseWriter, r *http.Request, _ models.Identity) {
	var req maxPriceRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.mirror.SetMaxPrice(req.MaxPrice); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type resetOrderRequest struct {
	OrderID string `json:"orderId"`
}

func (s *Server) handleResetOrder(w http.ResponseWriter, r *http.Request, _ models.Identity) {
	var req resetOrderRequest
	if !decode(w, r, &req) {
		return
	}
	writePolicy(w, s.mirror.ResetOrder(req.OrderID))
}

func (s *Server) handleResetAll(w http.ResponseWriter, _ *http.Request, _ models.Identity) {
	s.mirror.ResetAll()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, _ *http.Request, _ models.Identity) {
	writeJSON(w, http.StatusOK, services.SortBySeat(s.mirror.Orders()))
}

func (s *Server) handleAdminStats(w http.ResponseWriter, _ *http.Request, _ models.Identity) {
	writeJSON(w, http.StatusOK, services.Aggregate(s.mirror.Orders()))
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request, _ models.Identity) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.ExportFilename(time.Now())+`"`)
	if err := services.ExportCSV(w, s.mirror.Orders()); err != nil {
		// Headers are out the door already; log and give up on this one.
		logging.GetLogger().Warnf("csv export: %v", err)
	}
}
