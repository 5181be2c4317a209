package render

import (
	"bytes"
	"math"
	"time"

	"salesnote/internal/domain/model"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Renderer は注文を1種類のレイアウトのPDFにする。
// 同じ注文・同じnowなら同じバイト列を返す。
type Renderer struct {
	loc      *time.Location
	compress bool
}

type Option func(*Renderer)

// フッターの日時をこのタイムゾーンで出す
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

func WithCompression(on bool) Option {
	return func(r *Renderer) { r.compress = on }
}

func New(opts ...Option) *Renderer {
	r := &Renderer{loc: time.UTC, compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Render(order model.Order, now time.Time) ([]byte, error) {
	pdf, _, err := r.draw(order, now)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "write pdf")
	}
	return buf.Bytes(), nil
}

// どのページに表ヘッダー・行を描いたか（テスト用）
type trace struct {
	headerPages []int
	rowPages    []int
}

func (r *Renderer) draw(order model.Order, now time.Time) (*fpdf.Fpdf, trace, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Nota de venta "+order.ID, true)

	cv := canvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	cv.pageWidth, cv.pageHeight = pdf.GetPageSize()

	var tr trace
	pdf.AddPage()
	c := cursor{y: pageMargin, page: 1}

	c = cv.drawTitle(c, order.ID)
	c = cv.drawInfoBox(c, order)
	c = cv.drawSectionTitle(c)

	if len(order.LineItems) == 0 {
		//空の注文は合計行を出さない
		c = cv.drawEmptyNotice(c)
	} else {
		c = cv.drawHeaderRow(c)
		tr.headerPages = append(tr.headerPages, c.page)
		c = c.down(headerAdvance)

		for _, item := range order.LineItems {
			if c.overflows(cv.pageHeight) {
				pdf.AddPage()
				c = c.nextPage(pageMargin)
				c = cv.drawHeaderRow(c)
				tr.headerPages = append(tr.headerPages, c.page)
				c = c.down(headerAdvance)
			}
			c = cv.drawRow(c, item)
			tr.rowPages = append(tr.rowPages, c.page)
		}
		c = cv.drawTotal(c, order.Total)
	}

	cv.drawFooter(c, now.In(r.loc))

	if err := pdf.Error(); err != nil {
		return nil, trace{}, errors.Wrap(err, "render pdf")
	}
	return pdf, tr, nil
}

type canvas struct {
	pdf        *fpdf.Fpdf
	tr         func(string) string
	pageWidth  float64
	pageHeight float64
}

func (cv canvas) contentWidth() float64 {
	return cv.pageWidth - 2*pageMargin
}

func (cv canvas) font(style string, size float64, color rgb) {
	cv.pdf.SetFont("Helvetica", style, size)
	cv.pdf.SetTextColor(color.r, color.g, color.b)
}

func (cv canvas) text(x, y, w, h float64, s, align string) {
	cv.pdf.SetXY(x, y)
	cv.pdf.CellFormat(w, h, cv.tr(s), "", 0, align, false, 0, "")
}

func (cv canvas) width(s string) float64 {
	return cv.pdf.GetStringWidth(cv.tr(s))
}

func (cv canvas) rect(x, y, w, h float64, fill rgb, border *rgb) {
	cv.pdf.SetFillColor(fill.r, fill.g, fill.b)
	style := "F"
	if border != nil {
		cv.pdf.SetDrawColor(border.r, border.g, border.b)
		style = "FD"
	}
	cv.pdf.Rect(x, y, w, h, style)
}

// 枠線だけ
func (cv canvas) stroke(x, y, w, h float64) {
	cv.pdf.SetDrawColor(colorBorder.r, colorBorder.g, colorBorder.b)
	cv.pdf.SetLineWidth(gridLineWidth)
	cv.pdf.Rect(x, y, w, h, "D")
}

func (cv canvas) vline(x, top, bottom float64) {
	cv.pdf.SetDrawColor(colorBorder.r, colorBorder.g, colorBorder.b)
	cv.pdf.SetLineWidth(gridLineWidth)
	cv.pdf.Line(x, top, x, bottom)
}

func (cv canvas) drawTitle(c cursor, orderID string) cursor {
	cv.font("B", 24, colorText)
	cv.text(pageMargin, c.y, cv.contentWidth(), 28, titleText, "C")
	c = c.down(38)

	cv.font("", 12, colorMuted)
	cv.text(pageMargin, c.y, cv.contentWidth(), 14, "ID: "+orderID, "C")
	return c.down(38)
}

func (cv canvas) drawInfoBox(c cursor, order model.Order) cursor {
	top := c.y
	cv.rect(pageMargin, top, tableWidth, infoBoxHeight, colorRowShade, &colorBorder)

	left := pageMargin + 10
	right := pageMargin + tableWidth/2 + 10
	colW := tableWidth/2 - 20

	cv.font("B", 14, colorText)
	cv.text(left, top+10, tableWidth-20, 16, infoTitleText, "L")

	cv.font("", 10, colorText)
	cv.text(left, top+32, tableWidth-20, lineHeight, clientLabel+" "+order.ClientID, "L")

	cv.drawAddress(left, top+52, colW, billingLabel, order.BillingAddress.Data())
	cv.drawAddress(right, top+52, colW, shippingLabel, order.ShippingAddress.Data())

	return c.down(infoBoxAdvance)
}

func (cv canvas) drawAddress(x, y, w float64, label string, a model.PostalAddress) {
	cv.font("B", 10, colorText)
	cv.text(x, y, w, lineHeight, label, "L")

	cv.font("", 9, colorMuted)
	lines := []string{
		"Domicilio: " + a.Street,
		"Colonia: " + a.Neighborhood,
		"Municipio: " + a.Municipality,
		"Estado: " + a.State,
	}
	for i, l := range lines {
		cv.text(x, y+16+float64(i)*lineHeight, w, lineHeight, l, "L")
	}
}

func (cv canvas) drawSectionTitle(c cursor) cursor {
	cv.font("B", 16, colorText)
	cv.text(pageMargin, c.y, tableWidth, 18, detailTitleText, "L")
	return c.down(28)
}

func (cv canvas) drawEmptyNotice(c cursor) cursor {
	cv.font("I", 10, colorMuted)
	cv.text(pageMargin, c.y, cv.contentWidth(), 14, emptyOrderText, "C")
	return c.down(20)
}

func (cv canvas) drawHeaderRow(c cursor) cursor {
	cv.rect(pageMargin, c.y, tableWidth, headerHeight, colorHeaderFill, &colorBorder)

	cv.font("B", 10, colorText)
	x := pageMargin
	for _, col := range tableColumns {
		cv.text(x+cellPadding, c.y, col.width-2*cellPadding, headerHeight, col.title, col.align)
		x += col.width
	}
	return c
}

func (cv canvas) drawRow(c cursor, item model.LineItem) cursor {
	cv.font("", 9, colorMuted)
	lines := wrapWords(item.ProductID, colProduct-2*cellPadding, cv.width)
	rowHeight := math.Max(float64(len(lines))*lineHeight, minRowHeight)

	top := c.y - cellPadding
	bottom := c.y + rowHeight + cellPadding
	if c.shaded {
		cv.rect(pageMargin, top, tableWidth, bottom-top, colorRowShade, nil)
	}

	//行の枠と列の区切り線
	cv.stroke(pageMargin, top, tableWidth, bottom-top)
	sep := pageMargin
	for _, col := range tableColumns[:len(tableColumns)-1] {
		sep += col.width
		cv.vline(sep, top, bottom)
	}

	x := pageMargin
	for i, l := range lines {
		cv.text(x+cellPadding, c.y+float64(i)*lineHeight, colProduct-2*cellPadding, lineHeight, l, "L")
	}
	x += colProduct

	cells := []string{money(item.UnitPrice), item.Quantity.String(), money(item.Amount)}
	for i, s := range cells {
		col := tableColumns[i+1]
		cv.text(x+cellPadding, c.y, col.width-2*cellPadding, lineHeight, s, col.align)
		x += col.width
	}

	return c.down(rowHeight + 2*cellPadding).flipShade()
}

func (cv canvas) drawTotal(c cursor, total decimal.Decimal) cursor {
	c = c.down(10)
	cv.font("B", 12, colorText)
	cv.text(pageMargin, c.y, tableWidth, 14, totalLabel+" "+money(total), "R")
	return c.down(16)
}

func (cv canvas) drawFooter(c cursor, now time.Time) {
	c = c.down(footerGap)
	if c.y+lineHeight > cv.pageHeight-pageMargin {
		cv.pdf.AddPage()
		c = c.nextPage(pageMargin)
	}
	cv.font("", 9, colorMuted)
	cv.text(pageMargin, c.y, cv.contentWidth(), lineHeight, footerLabel+" "+now.Format(footerTimeLayout), "C")
}

// 丸めない、区切りもつけない
func money(d decimal.Decimal) string {
	return "$" + d.String()
}
