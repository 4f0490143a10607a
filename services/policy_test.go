package services

import (
	"testing"

	"class-order/models"

	"github.com/stretchr/testify/assert"
)

func openSettings() models.SystemSettings {
	return models.SystemSettings{IsOpen: true, MaxPrice: 170}
}

func TestCanMutate(t *testing.T) {
	o := draft()
	st := openSettings()

	if err := CanMutate(o, st); err != nil {
		t.Fatalf("open draft should be mutable: %v", err)
	}

	st.IsOpen = false
	if err := CanMutate(o, st); err != ErrClosed {
		t.Errorf("closed system: err = %v, want ErrClosed", err)
	}

	st.IsOpen = true
	o.Status = models.StatusSubmitted
	if err := CanMutate(o, st); err != ErrSubmitted {
		t.Errorf("submitted order: err = %v, want ErrSubmitted", err)
	}
}

func TestSetItemNeedsMatchingMain(t *testing.T) {
	st := openSettings()
	set := item("s1", 65, models.CategorySet)
	main := item("m1", 78, models.CategoryMain)

	o := draft()
	if err := CanAddItem(o, st, set); err != ErrNeedMain {
		t.Fatalf("set without main: err = %v, want ErrNeedMain", err)
	}

	AddItem(&o, main)
	if err := CanAddItem(o, st, set); err != nil {
		t.Fatalf("one main allows one set: %v", err)
	}
	AddItem(&o, set)
	if err := CanAddItem(o, st, set); err != ErrNeedMain {
		t.Errorf("second set on one main: err = %v, want ErrNeedMain", err)
	}

	// Increments through AdjustQuantity follow the same rule.
	if err := CanAdjust(o, st, set, 1); err != ErrNeedMain {
		t.Errorf("set increment past mains: err = %v, want ErrNeedMain", err)
	}
	if err := CanAdjust(o, st, set, -1); err != nil {
		t.Errorf("set decrement should always pass the category check: %v", err)
	}
	// Non-set items are never category-gated.
	if err := CanAdjust(o, st, main, 3); err != nil {
		t.Errorf("main increment: %v", err)
	}
}

// The classic budget scenario: 大麥克 ($78 MAIN) plus A經典配餐 ($65 SET) is
// $143 under the $170 cap with set/main balanced, so it submits.
func TestSubmitScenarioWithinBudget(t *testing.T) {
	st := openSettings()
	o := draft()
	AddItem(&o, item("m1", 78, models.CategoryMain))
	AddItem(&o, item("s1", 65, models.CategorySet))

	assert.Equal(t, int64(143), o.TotalPrice)
	assert.NoError(t, CanSubmit(o, st))
	assert.Empty(t, SubmitBlockers(o, st))
}

// One more SET than MAIN blocks submission regardless of total.
func TestSubmitScenarioSetMainViolated(t *testing.T) {
	st := openSettings()
	o := draft()
	AddItem(&o, item("m1", 78, models.CategoryMain))
	AddItem(&o, item("s1", 65, models.CategorySet))
	o.Items = append(o.Items, models.CartLine{Item: item("s2", 70, models.CategorySet), Quantity: 1})
	Recompute(&o)

	assert.ErrorIs(t, CanSubmit(o, st), ErrNeedMain)
	assert.Contains(t, SubmitBlockers(o, st), BlockNeedMain)
}

// $171 against a $170 cap blocks even with the set/main rule satisfied.
func TestSubmitScenarioOverBudget(t *testing.T) {
	st := openSettings()
	o := draft()
	AddItem(&o, item("a", 132, models.CategoryMain))
	AddItem(&o, item("b", 39, models.CategorySnack))

	assert.Equal(t, int64(171), o.TotalPrice)
	assert.ErrorIs(t, CanSubmit(o, st), ErrOverBudget)
	assert.Equal(t, []string{BlockOverBudget}, SubmitBlockers(o, st))
}

func TestSubmitBlockedWhenClosedOrEmpty(t *testing.T) {
	st := openSettings()
	o := draft()

	assert.ErrorIs(t, CanSubmit(o, st), ErrEmptyCart)

	AddItem(&o, item("m1", 78, models.CategoryMain))
	st.IsOpen = false
	assert.ErrorIs(t, CanSubmit(o, st), ErrClosed)
	assert.Equal(t, []string{BlockClosed}, SubmitBlockers(o, st))
}

// Removing the MAIN after SETs were added must be caught at the gate even
// though every single add was legal at the time.
func TestSubmitCatchesMainRemovedAfterSet(t *testing.T) {
	st := openSettings()
	o := draft()
	AddItem(&o, item("m1", 78, models.CategoryMain))
	AddItem(&o, item("s1", 65, models.CategorySet))
	RemoveItem(&o, "m1")

	assert.ErrorIs(t, CanSubmit(o, st), ErrNeedMain)
}

func TestBlockersStackInDisplayOrder(t *testing.T) {
	st := models.SystemSettings{IsOpen: false, MaxPrice: 10}
	o := draft()
	AddItem(&o, item("s1", 65, models.CategorySet))

	got := SubmitBlockers(o, st)
	want := []string{BlockClosed, BlockOverBudget, BlockNeedMain}
	assert.Equal(t, want, got)
}
