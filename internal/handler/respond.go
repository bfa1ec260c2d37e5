package handler

import (
	"log/slog"
	"net/http"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps a classified error to its HTTP status and a JSON
// {error: ...} body. Internal errors are logged with their cause; the client
// only ever sees the classified message.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
