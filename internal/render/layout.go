package render

// 単位はpt（A4縦）
const (
	pageMargin = 50.0
	tableWidth = 500.0

	colProduct  = 230.0
	colPrice    = 90.0
	colQuantity = 70.0
	colAmount   = 110.0

	cellPadding   = 5.0
	lineHeight    = 12.0
	minRowHeight  = 20.0
	headerHeight  = 20.0
	headerAdvance = 25.0

	// 行を描く前に y+bottomReserve がページ高を超えたら改ページ
	bottomReserve = 150.0

	infoBoxHeight  = 150.0
	infoBoxAdvance = 160.0
	footerGap      = 36.0

	gridLineWidth = 0.5
)

type rgb struct{ r, g, b int }

var (
	colorHeaderFill = rgb{0xe6, 0xe6, 0xe6}
	colorBorder     = rgb{0xdd, 0xdd, 0xdd}
	colorRowShade   = rgb{0xf9, 0xf9, 0xf9}
	colorText       = rgb{0x33, 0x33, 0x33}
	colorMuted      = rgb{0x66, 0x66, 0x66}
)

const (
	titleText       = "NOTA DE VENTA"
	infoTitleText   = "Información General"
	clientLabel     = "Cliente ID:"
	billingLabel    = "Dirección de Facturación:"
	shippingLabel   = "Dirección de Envío:"
	detailTitleText = "Detalle de Productos"
	emptyOrderText  = "No hay productos en esta nota de venta"
	totalLabel      = "Total:"
	footerLabel     = "Generado el:"

	// es-MX: d/m/yyyy hh:mm:ss
	footerTimeLayout = "2/1/2006 15:04:05"
)

type column struct {
	title string
	width float64
	align string
}

var tableColumns = [4]column{
	{"Producto ID", colProduct, "L"},
	{"Precio Unitario", colPrice, "R"},
	{"Cantidad", colQuantity, "R"},
	{"Importe", colAmount, "R"},
}
