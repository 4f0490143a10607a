package services

import (
	"sort"

	"class-order/models"
)

type ItemStat struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Total int64  `json:"total"`
}

type Summary struct {
	Items          []ItemStat `json:"items"`
	Revenue        int64      `json:"revenue"`
	SubmittedCount int        `json:"submittedCount"`
	OrderCount     int        `json:"orderCount"`
}

// Aggregate builds the per-item summary over SUBMITTED orders, most
// ordered first.
func Aggregate(orders []models.Order) Summary {
	byItem := make(map[string]*ItemStat)
	var order []string // first-seen order for deterministic ties
	s := Summary{OrderCount: len(orders)}

	for _, o := range orders {
		if o.Status != models.StatusSubmitted {
			continue
		}
		s.SubmittedCount++
		for _, l := range o.Items {
			st, ok := byItem[l.Item.ID]
			if !ok {
				st = &ItemStat{ID: l.Item.ID, Name: l.Item.Name}
				byItem[l.Item.ID] = st
				order = append(order, l.Item.ID)
			}
			st.Qty += l.Quantity
			st.Total += int64(l.Quantity) * l.Item.Price
		}
	}

	items := make([]ItemStat, 0, len(byItem))
	for _, id := range order {
		items = append(items, *byItem[id])
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Qty > items[j].Qty })
	for _, it := range items {
		s.Revenue += it.Total
	}
	s.Items = items
	return s
}

// SortBySeat orders a copy of the orders by seat number ascending.
func SortBySeat(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	copy(out, orders)
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out
}
