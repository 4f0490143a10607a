// Package services holds the pure order/cart logic: mutations, the policy
// engine, aggregation and export. Nothing here touches the store; the
// mirror applies these functions to its local state and pushes the result.
package services

import (
	"time"

	"class-order/models"
)

func touch(o *models.Order) {
	Recompute(o)
	o.Timestamp = time.Now().UnixMilli()
}

// Recompute rederives TotalPrice from the surviving lines. The stored
// total is never trusted.
func Recompute(o *models.Order) {
	var total int64
	for _, l := range o.Items {
		total += l.Item.Price * int64(l.Quantity)
	}
	o.TotalPrice = total
}

// AddItem increments an existing line by one or appends a new line with
// quantity one.
func AddItem(o *models.Order, item models.MenuItem) {
	for i := range o.Items {
		if o.Items[i].Item.ID == item.ID {
			o.Items[i].Quantity++
			touch(o)
			return
		}
	}
	o.Items = append(o.Items, models.CartLine{Item: item, Quantity: 1})
	touch(o)
}

// RemoveItem drops the line entirely regardless of quantity. An absent id
// is a no-op.
func RemoveItem(o *models.Order, itemID string) {
	for i := range o.Items {
		if o.Items[i].Item.ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			touch(o)
			return
		}
	}
}

// AdjustQuantity adds delta to an existing line, floored at zero; zero
// removes the line. An absent id is a no-op.
func AdjustQuantity(o *models.Order, itemID string, delta int) {
	for i := range o.Items {
		if o.Items[i].Item.ID != itemID {
			continue
		}
		q := o.Items[i].Quantity + delta
		if q <= 0 {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
		} else {
			o.Items[i].Quantity = q
		}
		touch(o)
		return
	}
}

// MainCount is the aggregate quantity of MAIN lines in the order.
func MainCount(o models.Order) int {
	return categoryCount(o, models.CategoryMain)
}

// SetCount is the aggregate quantity of SET lines in the order.
func SetCount(o models.Order) int {
	return categoryCount(o, models.CategorySet)
}

func categoryCount(o models.Order, c models.Category) int {
	n := 0
	for _, l := range o.Items {
		if l.Item.Category == c {
			n += l.Quantity
		}
	}
	return n
}
