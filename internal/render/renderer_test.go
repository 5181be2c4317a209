package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"salesnote/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var fixedNow = time.Date(2026, 10, 19, 20, 5, 9, 0, time.UTC)

func sampleOrder(n int) model.Order {
	items := make([]model.LineItem, 0, n)
	total := decimal.Zero
	for i := 0; i < n; i++ {
		li := model.NewLineItem(
			fmt.Sprintf("li-%03d", i), "C1", fmt.Sprintf("P%d", i),
			decimal.NewFromInt(2), decimal.RequireFromString("12.5"), fixedNow,
		)
		items = append(items, li)
		total = total.Add(li.Amount)
	}

	addr := model.PostalAddress{Street: "Av. Reforma 1", Neighborhood: "Centro", Municipality: "Cuauhtémoc", State: "CDMX"}
	return model.Order{
		ID:              "order-1",
		ClientID:        "C1",
		BillingAddress:  datatypes.NewJSONType(addr),
		ShippingAddress: datatypes.NewJSONType(addr),
		LineItems:       datatypes.NewJSONSlice(items),
		Total:           total,
		CreatedAt:       fixedNow,
	}
}

func plain() *Renderer {
	return New(WithCompression(false))
}

func TestRender_Deterministic(t *testing.T) {
	r := New()
	order := sampleOrder(3)

	a, err := r.Render(order, fixedNow)
	require.NoError(t, err)
	b, err := r.Render(order, fixedNow)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(a, []byte("%PDF-")))
	assert.Equal(t, a, b)
}

func TestRender_SinglePageContent(t *testing.T) {
	out, err := plain().Render(sampleOrder(2), fixedNow)
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "(NOTA DE VENTA)")
	assert.Contains(t, s, "(ID: order-1)")
	assert.Contains(t, s, "(Producto ID)")
	assert.Contains(t, s, "($12.5)")
	assert.Contains(t, s, "($25)")
	assert.Contains(t, s, "(Total: $50)")
	assert.NotContains(t, s, emptyOrderText)
}

func TestRender_EmptyOrder(t *testing.T) {
	order := sampleOrder(0)

	out, err := plain().Render(order, fixedNow)
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "("+emptyOrderText+")")
	assert.NotContains(t, s, "(Producto ID)")
	assert.NotContains(t, s, totalLabel)
}

func TestRender_RowsHaveGrid(t *testing.T) {
	cases := []struct {
		name  string
		items int
	}{
		{name: "4行", items: 4},
		{name: "1行", items: 1},
		{name: "空", items: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := plain().Render(sampleOrder(tc.items), fixedNow)
			require.NoError(t, err)
			s := string(out)

			//行ごとに枠1つ＋区切り線3本
			assert.Equal(t, tc.items, strings.Count(s, " re S"))
			assert.Equal(t, 3*tc.items, strings.Count(s, " l S"))
		})
	}
}

var fontSizeRe = regexp.MustCompile(`([0-9.]+) Tf`)

// after の直後に切り替えたフォントサイズ
func fontSizeAfter(t *testing.T, s, after string) string {
	t.Helper()
	idx := strings.Index(s, after)
	require.GreaterOrEqual(t, idx, 0, "%s not found", after)
	m := fontSizeRe.FindStringSubmatch(s[idx:])
	require.NotNil(t, m)
	return m[1]
}

func TestRender_FontSizes(t *testing.T) {
	out, err := plain().Render(sampleOrder(2), fixedNow)
	require.NoError(t, err)
	//明細行は9pt
	assert.Equal(t, "9.00", fontSizeAfter(t, string(out), "(Importe)"))

	out, err = plain().Render(sampleOrder(0), fixedNow)
	require.NoError(t, err)
	//空の注文の案内は10pt
	assert.Equal(t, "10.00", fontSizeAfter(t, string(out), "(Detalle de Productos)"))
}

func TestRender_FooterUsesLocation(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)

	out, err := New(WithCompression(false), WithLocation(loc)).Render(sampleOrder(1), fixedNow)
	require.NoError(t, err)

	assert.Contains(t, string(out), "(Generado el: 19/10/2026 14:05:09)")
}

func TestRender_PaginatesAndRepeatsHeader(t *testing.T) {
	order := sampleOrder(60)

	pdf, tr, err := plain().draw(order, fixedNow)
	require.NoError(t, err)

	require.GreaterOrEqual(t, pdf.PageCount(), 2)
	require.GreaterOrEqual(t, len(tr.headerPages), 2)
	require.Len(t, tr.rowPages, 60)

	headers := map[int]bool{}
	for _, p := range tr.headerPages {
		assert.False(t, headers[p], "header drawn twice on page %d", p)
		headers[p] = true
	}
	for i, p := range tr.rowPages {
		assert.True(t, headers[p], "row %d on page %d without header", i, p)
	}

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.Equal(t, len(tr.headerPages), strings.Count(buf.String(), "(Producto ID)"))
}

func TestRender_LongProductIDWraps(t *testing.T) {
	order := sampleOrder(1)
	order.LineItems[0].ProductID = strings.Repeat("segment ", 20)

	pdf, tr, err := plain().draw(order, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, 1, pdf.PageCount())
	assert.Equal(t, []int{1}, tr.rowPages)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$25", money(decimal.RequireFromString("25.00")))
	assert.Equal(t, "$12.5", money(decimal.RequireFromString("12.50")))
	assert.Equal(t, "$0.333", money(decimal.RequireFromString("0.333")))
}
