package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"internship_admin/internal/controller"
)

// HeaderConfirm carries the user's answer to a delete confirmation.
const HeaderConfirm = "X-Confirm"

// ConfirmationMiddleware stores the answer to a destructive-action prompt in
// the request context, read from ?confirm= or the X-Confirm header.
// A missing or unparsable answer counts as no.
func ConfirmationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("confirm")
		if raw == "" {
			raw = c.GetHeader(HeaderConfirm)
		}
		confirmed, _ := strconv.ParseBool(raw)
		ctx := controller.WithConfirmation(c.Request.Context(), confirmed)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
