// Package mirror keeps a local, observable copy of the shared orders
// collection and settings singleton. Local mutations validate against the
// policy engine, apply optimistically, then replicate outward as
// whole-document writes; any remote change replaces the entire local
// state with a fresh snapshot. Concurrent writers resolve by whichever
// write lands last.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"class-order/logging"
	"class-order/menu"
	"class-order/models"
	"class-order/services"

	"github.com/google/uuid"
)

// RemoteStore is the slice of the shared store the mirror depends on.
type RemoteStore interface {
	LoadOrders(ctx context.Context) (map[string]models.Order, error)
	LoadSettings(ctx context.Context) (models.SystemSettings, bool, error)
	PutOrder(ctx context.Context, userID string, o models.Order) error
	DeleteOrder(ctx context.Context, userID string) error
	DeleteAllOrders(ctx context.Context) error
	PutSettings(ctx context.Context, st models.SystemSettings) error
	Watch(ctx context.Context) <-chan struct{}
}

var (
	ErrNoOrder     = errors.New("no order for this user")
	ErrUnknownItem = errors.New("unknown menu item")
)

const (
	opPutOrder = iota
	opDeleteOrder
	opDeleteAll
	opPutSettings
)

type writeOp struct {
	kind     int
	userID   string
	order    models.Order
	settings models.SystemSettings
}

// Mirror is the action/query interface the surface talks to.
type Mirror struct {
	store    RemoteStore
	defaults models.SystemSettings

	mu           sync.Mutex
	orders       map[string]models.Order
	settings     models.SystemSettings
	lastWriteErr error
	lastFailed   *writeOp

	writes  chan writeOp
	updates chan struct{}
}

func New(store RemoteStore, defaults models.SystemSettings) *Mirror {
	return &Mirror{
		store:    store,
		defaults: defaults,
		orders:   make(map[string]models.Order),
		settings: defaults,
		writes:   make(chan writeOp, 1024),
		updates:  make(chan struct{}, 1),
	}
}

// Start performs the initial blocking load and launches the writer and
// snapshot loops. A store that is unreachable here aborts startup; there
// is nothing useful to do without the shared state.
func (m *Mirror) Start(ctx context.Context) error {
	orders, err := m.store.LoadOrders(ctx)
	if err != nil {
		return fmt.Errorf("initial order load: %w", err)
	}
	settings, ok, err := m.store.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("initial settings load: %w", err)
	}

	m.mu.Lock()
	m.orders = orders
	if ok {
		m.settings = settings
	} else {
		// First client ever: publish the defaults so every later client
		// agrees on the cap.
		m.enqueueLocked(writeOp{kind: opPutSettings, settings: m.settings})
	}
	m.mu.Unlock()

	go m.writer(ctx)
	go m.watch(ctx)
	return nil
}

func (m *Mirror) watch(ctx context.Context) {
	for range m.store.Watch(ctx) {
		m.reload(ctx)
	}
}

// reload replaces the whole local mirror with a fresh snapshot. Optimistic
// local state lives only until the next snapshot lands.
func (m *Mirror) reload(ctx context.Context) {
	log := logging.GetLogger()
	orders, err := m.store.LoadOrders(ctx)
	if err != nil {
		log.Warnf("mirror reload: %v", err)
		return
	}
	settings, ok, err := m.store.LoadSettings(ctx)
	if err != nil {
		log.Warnf("mirror reload: %v", err)
		return
	}

	m.mu.Lock()
	m.orders = orders
	if ok {
		m.settings = settings
	}
	m.mu.Unlock()
	m.signal()
}

func (m *Mirror) signal() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

// Updated ticks after every snapshot replacement so the surface can
// refresh what it shows.
func (m *Mirror) Updated() <-chan struct{} {
	return m.updates
}

// writer drains queued writes one at a time, preserving the order local
// mutations were issued in.
func (m *Mirror) writer(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-m.writes:
			m.perform(op)
		}
	}
}

// perform pushes one whole-document write. The remote ops carry no
// timeout or cancellation; a failure is terminal for this attempt and the
// optimistic local state stays as it is.
func (m *Mirror) perform(op writeOp) {
	ctx := context.Background()
	var err error
	switch op.kind {
	case opPutOrder:
		err = m.store.PutOrder(ctx, op.userID, op.order)
	case opDeleteOrder:
		err = m.store.DeleteOrder(ctx, op.userID)
	case opDeleteAll:
		err = m.store.DeleteAllOrders(ctx)
	case opPutSettings:
		err = m.store.PutSettings(ctx, op.settings)
	}

	m.mu.Lock()
	if err != nil {
		m.lastWriteErr = err
		failed := op
		m.lastFailed = &failed
	} else {
		m.lastWriteErr = nil
		m.lastFailed = nil
	}
	m.mu.Unlock()

	if err != nil {
		logging.GetLogger().Warnf("remote write failed, local state kept: %v", err)
	}
}

func (m *Mirror) enqueueLocked(op writeOp) {
	select {
	case m.writes <- op:
	default:
		// Queue full means the store has been down for a while; surface it
		// like any other failed write so Retry can recover.
		m.lastWriteErr = errors.New("write queue full")
		failed := op
		m.lastFailed = &failed
	}
}

// LastWriteError reports the transient sync failure, if any. It clears on
// the next successful write.
func (m *Mirror) LastWriteError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastWriteErr
}

// Retry re-enqueues the failed write using the current local document.
// Reports whether there was anything to retry.
func (m *Mirror) Retry() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastFailed == nil {
		return false
	}
	op := *m.lastFailed
	switch op.kind {
	case opPutOrder:
		if o, ok := m.orders[op.userID]; ok {
			op.order = o.Clone()
		} else {
			op.kind = opDeleteOrder
		}
	case opPutSettings:
		op.settings = m.settings
	}
	m.lastFailed = nil
	m.enqueueLocked(op)
	return true
}

// --- Queries ---

// Orders returns a copy of every order in the mirror.
func (m *Mirror) Orders() []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o.Clone())
	}
	return out
}

// OrderFor returns the order owned by one user id.
func (m *Mirror) OrderFor(userID string) (models.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[userID]
	if !ok {
		return models.Order{}, false
	}
	return o.Clone(), true
}

func (m *Mirror) Settings() models.SystemSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// --- Student actions ---

// EnsureOrder creates and persists a fresh draft for the identity if none
// exists yet, and returns the current order either way.
func (m *Mirror) EnsureOrder(id models.Identity) models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[id.ID]; ok {
		return o.Clone()
	}
	o := models.Order{
		ID:         "ord_" + uuid.NewString(),
		UserID:     id.ID,
		UserName:   id.Name,
		SeatNumber: id.SeatNumber,
		Items:      []models.CartLine{},
		Status:     models.StatusDraft,
		Timestamp:  time.Now().UnixMilli(),
	}
	m.orders[id.ID] = o
	m.enqueueLocked(writeOp{kind: opPutOrder, userID: id.ID, order: o})
	return o.Clone()
}

// AddItem puts one more of a catalog item into the user's cart.
func (m *Mirror) AddItem(userID, itemID string) error {
	item, ok := menu.ByID(itemID)
	if !ok {
		return ErrUnknownItem
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[userID]
	if !ok {
		return ErrNoOrder
	}
	o = o.Clone()
	if err := services.CanAddItem(o, m.settings, item); err != nil {
		return err
	}
	services.AddItem(&o, item)
	m.orders[userID] = o
	m.enqueueLocked(writeOp{kind: opPutOrder, userID: userID, order: o})
	return nil
}

// RemoveItem drops a line entirely. Removing an absent line is a no-op.
func (m *Mirror) RemoveItem(userID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[userID]
	if !ok {
		return ErrNoOrder
	}
	o = o.Clone()
	if err := services.CanMutate(o, m.settings); err != nil {
		return err
	}
	if !hasLine(o, itemID) {
		return nil
	}
	services.RemoveItem(&o, itemID)
	m.orders[userID] = o
	m.enqueueLocked(writeOp{kind: opPutOrder, userID: userID, order: o})
	return nil
}

// AdjustQuantity adds delta to an existing line, floored at zero; zero
// removes the line. Adjusting an absent line is a no-op.
func (m *Mirror) AdjustQuantity(userID, itemID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[userID]
	if !ok {
		return ErrNoOrder
	}
	o = o.Clone()
	line, ok := findLine(o, itemID)
	if !ok {
		return nil
	}
	if err := services.CanAdjust(o, m.settings, line.Item, delta); err != nil {
		return err
	}
	services.AdjustQuantity(&o, itemID, delta)
	m.orders[userID] = o
	m.enqueueLocked(writeOp{kind: opPutOrder, userID: userID, order: o})
	return nil
}

// Submit transitions DRAFT -> SUBMITTED when no policy blocker applies.
func (m *Mirror) Submit(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[userID]
	if !ok {
		return ErrNoOrder
	}
	o = o.Clone()
	services.Recompute(&o) // never trust a stale total at the gate
	if err := services.CanSubmit(o, m.settings); err != nil {
		return err
	}
	o.Status = models.StatusSubmitted
	o.Timestamp = time.Now().UnixMilli()
	m.orders[userID] = o
	m.enqueueLocked(writeOp{kind: opPutOrder, userID: userID, order: o})
	return nil
}

// Cancel undoes a submission, items unchanged. The state machine allows it
// any time; the surface hides the control once ordering closes.
func (m *Mirror) Cancel(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[userID]
	if !ok {
		return ErrNoOrder
	}
	if o.Status != models.StatusSubmitted {
		return nil
	}
	o = o.Clone()
	o.Status = models.StatusDraft
	o.Timestamp = time.Now().UnixMilli()
	m.orders[userID] = o
	m.enqueueLocked(writeOp{kind: opPutOrder, userID: userID, order: o})
	return nil
}

// --- Admin actions ---

func (m *Mirror) ToggleSystem(isOpen bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.IsOpen = isOpen
	m.enqueueLocked(writeOp{kind: opPutSettings, settings: m.settings})
}

// SetDeadline sets or clears the advisory countdown. Reaching the deadline
// never closes ordering by itself.
func (m *Mirror) SetDeadline(ts *int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.Deadline = ts
	m.enqueueLocked(writeOp{kind: opPutSettings, settings: m.settings})
}

func (m *Mirror) SetMaxPrice(v int64) error {
	if v <= 0 {
		return errors.New("max price must be positive")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.MaxPrice = v
	m.enqueueLocked(writeOp{kind: opPutSettings, settings: m.settings})
	return nil
}

// ResetOrder clears one order back to an empty draft, whatever its status.
func (m *Mirror) ResetOrder(orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for userID, o := range m.orders {
		if o.ID != orderID {
			continue
		}
		o = o.Clone()
		o.Items = []models.CartLine{}
		o.TotalPrice = 0
		o.Status = models.StatusDraft
		o.Timestamp = time.Now().UnixMilli()
		m.orders[userID] = o
		m.enqueueLocked(writeOp{kind: opPutOrder, userID: userID, order: o})
		return nil
	}
	return ErrNoOrder
}

// ResetAll deletes every order in the collection.
func (m *Mirror) ResetAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = make(map[string]models.Order)
	m.enqueueLocked(writeOp{kind: opDeleteAll})
}

func hasLine(o models.Order, itemID string) bool {
	_, ok := findLine(o, itemID)
	return ok
}

func findLine(o models.Order, itemID string) (models.CartLine, bool) {
	for _, l := range o.Items {
		if l.Item.ID == itemID {
			return l, true
		}
	}
	return models.CartLine{}, false
}
