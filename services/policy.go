package services

import (
	"errors"

	"class-order/models"
)

// Policy refusals. These are normal outcomes surfaced as disabled controls,
// never hard failures.
var (
	ErrClosed     = errors.New("ordering is closed")
	ErrSubmitted  = errors.New("order already submitted")
	ErrNeedMain   = errors.New("set items need a matching main item")
	ErrOverBudget = errors.New("total exceeds the budget cap")
	ErrEmptyCart  = errors.New("cart is empty")
)

// Submit blocker codes for the surface.
const (
	BlockClosed     = "closed"
	BlockEmptyCart  = "empty_cart"
	BlockOverBudget = "over_budget"
	BlockNeedMain   = "need_main"
)

// CanMutate gates every student cart mutation: the system must be open and
// the order still a draft.
func CanMutate(o models.Order, st models.SystemSettings) error {
	if !st.IsOpen {
		return ErrClosed
	}
	if o.Status == models.StatusSubmitted {
		return ErrSubmitted
	}
	return nil
}

// CanAddItem additionally enforces the soft set/main rule: an increment of
// a SET line may not push the SET count above the MAIN count.
func CanAddItem(o models.Order, st models.SystemSettings, item models.MenuItem) error {
	if err := CanMutate(o, st); err != nil {
		return err
	}
	if item.Category == models.CategorySet && SetCount(o)+1 > MainCount(o) {
		return ErrNeedMain
	}
	return nil
}

// CanAdjust gates quantity changes. Only increments are subject to the
// set/main rule; decrements always pass the category check.
func CanAdjust(o models.Order, st models.SystemSettings, item models.MenuItem, delta int) error {
	if err := CanMutate(o, st); err != nil {
		return err
	}
	if delta > 0 && item.Category == models.CategorySet && SetCount(o)+delta > MainCount(o) {
		return ErrNeedMain
	}
	return nil
}

// SubmitBlockers lists everything currently preventing submission, in
// display order. The hard set/main check here also covers a MAIN item
// removed after SET items were added.
func SubmitBlockers(o models.Order, st models.SystemSettings) []string {
	var blockers []string
	if !st.IsOpen {
		blockers = append(blockers, BlockClosed)
	}
	if len(o.Items) == 0 {
		blockers = append(blockers, BlockEmptyCart)
	}
	if o.TotalPrice > st.MaxPrice {
		blockers = append(blockers, BlockOverBudget)
	}
	if SetCount(o) > MainCount(o) {
		blockers = append(blockers, BlockNeedMain)
	}
	return blockers
}

// CanSubmit returns nil when the order may transition DRAFT -> SUBMITTED,
// or the first blocking refusal.
func CanSubmit(o models.Order, st models.SystemSettings) error {
	if o.Status == models.StatusSubmitted {
		return ErrSubmitted
	}
	for _, b := range SubmitBlockers(o, st) {
		switch b {
		case BlockClosed:
			return ErrClosed
		case BlockEmptyCart:
			return ErrEmptyCart
		case BlockOverBudget:
			return ErrOverBudget
		case BlockNeedMain:
			return ErrNeedMain
		}
	}
	return nil
}
