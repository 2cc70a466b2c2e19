package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one line per handled request.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()
			log.Printf("%s %s %d %dB %s ip=%s",
				req.Method,
				req.RequestURI,
				res.Status,
				res.Size,
				time.Since(start),
				c.RealIP(),
			)

			return err
		}
	}
}
