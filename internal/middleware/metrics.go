package middleware

import (
	"time"

	"salesnote/internal/metrics"

	"github.com/labstack/echo/v4"
)

// 全ルートの応答時間とステータス種別を記録する
func Metrics(rec metrics.Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				//ステータスを確定させてから記録
				c.Error(err)
			}

			route := c.Request().Method + " " + c.Path()
			rec.RecordDuration(time.Since(start).Milliseconds(), route)
			rec.IncrementClass(metrics.StatusClass(c.Response().Status))
			return nil
		}
	}
}
