package render

// 描画位置。値で受け渡し、各ステップは新しいcursorを返す。
type cursor struct {
	y      float64
	page   int
	shaded bool
}

func (c cursor) down(dy float64) cursor {
	c.y += dy
	return c
}

// 網掛けの状態はページをまたいで引き継ぐ
func (c cursor) nextPage(top float64) cursor {
	return cursor{y: top, page: c.page + 1, shaded: c.shaded}
}

func (c cursor) flipShade() cursor {
	c.shaded = !c.shaded
	return c
}

func (c cursor) overflows(pageHeight float64) bool {
	return c.y+bottomReserve > pageHeight
}
