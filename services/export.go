package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"class-order/models"
)

// ExportCSV writes the admin export: an aggregated per-item summary, then
// one row per SUBMITTED order sorted by seat number. A UTF-8 BOM goes
// first so spreadsheet imports keep the Chinese item names intact.
func ExportCSV(w io.Writer, orders []models.Order) error {
	if _, err := w.Write([]byte("\xEF\xBB\xBF")); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)

	sum := Aggregate(orders)
	records := [][]string{
		{"=== 彙總統計 ==="},
		{"品項", "數量", "金額"},
	}
	for _, it := range sum.Items {
		records = append(records, []string{it.Name, strconv.Itoa(it.Qty), strconv.FormatInt(it.Total, 10)})
	}
	records = append(records,
		[]string{"總計", "", strconv.FormatInt(sum.Revenue, 10)},
		[]string{},
		[]string{"=== 個人明細 ==="},
		[]string{"座號", "姓名", "餐點內容", "總金額"},
	)

	for _, o := range SortBySeat(orders) {
		if o.Status != models.StatusSubmitted {
			continue
		}
		records = append(records, []string{
			o.SeatNumber,
			o.UserName,
			cartDetail(o),
			strconv.FormatInt(o.TotalPrice, 10),
		})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// cartDetail renders a cart as a single field, e.g. "大麥克*1; 薯條(中)*2".
func cartDetail(o models.Order) string {
	parts := make([]string, len(o.Items))
	for i, l := range o.Items {
		parts[i] = fmt.Sprintf("%s*%d", l.Item.Name, l.Quantity)
	}
	return strings.Join(parts, "; ")
}

// ExportFilename names the download for a given day.
func ExportFilename(t time.Time) string {
	return "lunch_order_" + t.Format("2006-01-02") + ".csv"
}
