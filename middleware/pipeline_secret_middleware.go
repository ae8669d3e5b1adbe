// ABOUTME: Shared-secret guard for the pipeline trigger endpoints
// ABOUTME: Accepts the secret in the X-Pipeline-Secret header or the secret query parameter
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PipelineSecretHeader carries the shared secret on trigger requests.
const PipelineSecretHeader = "X-Pipeline-Secret"

// PipelineSecret rejects requests that do not present secret. An empty secret
// disables the check.
func PipelineSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}
		expected := []byte(secret)

		return func(c echo.Context) error {
			got := c.Request().Header.Get(PipelineSecretHeader)
			if got == "" {
				got = c.QueryParam("secret")
			}
			if subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid pipeline secret")
			}
			return next(c)
		}
	}
}
