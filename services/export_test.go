package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"class-order/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	burger := item("m1", 78, models.CategoryMain)
	combo := item("s1", 65, models.CategorySet)

	orders := []models.Order{
		submittedOrder("12", "林同學", line(burger, 1)),
		submittedOrder("03", "陳同學", line(burger, 1), line(combo, 1)),
	}
	d := submittedOrder("01", "王同學", line(burger, 2))
	d.Status = models.StatusDraft
	orders = append(orders, d)

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, orders))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "missing UTF-8 BOM")

	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(out, "\xEF\xBB\xBF"), "\n"), "\n")

	assert.Equal(t, "=== 彙總統計 ===", lines[0])
	assert.Equal(t, "品項,數量,金額", lines[1])
	// Two burgers submitted vs one combo: burgers first.
	assert.Equal(t, "item-m1,2,156", lines[2])
	assert.Equal(t, "item-s1,1,65", lines[3])
	assert.Equal(t, "總計,,221", lines[4])
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "=== 個人明細 ===", lines[6])
	assert.Equal(t, "座號,姓名,餐點內容,總金額", lines[7])
	// Detail rows: seat ascending, drafts excluded.
	assert.Equal(t, "03,陳同學,item-m1*1; item-s1*1,143", lines[8])
	assert.Equal(t, "12,林同學,item-m1*1,78", lines[9])
	assert.Len(t, lines, 10)
}

func TestExportCSVNoOrders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, nil))

	out := strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF")
	assert.Contains(t, out, "=== 彙總統計 ===")
	assert.Contains(t, out, "總計,,0")
	assert.Contains(t, out, "=== 個人明細 ===")
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC)
	if got := ExportFilename(ts); got != "lunch_order_2026-01-09.csv" {
		t.Errorf("filename = %q", got)
	}
}
