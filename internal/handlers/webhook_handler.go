package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ucPayment "github.com/estudiobarber/turnos-api/internal/usecase/payment"
)

type WebhookHandler struct {
	processUC *ucPayment.ProcessWebhook
}

func NewWebhookHandler(processUC *ucPayment.ProcessWebhook) *WebhookHandler {
	return &WebhookHandler{processUC: processUC}
}

type WebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// HandlePayment receives Mercado Pago notifications. It always answers 200:
// internal reconciliation failures are logged, never surfaced, so the
// provider does not retry what a retry cannot fix.
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": string(ucPayment.AckIgnored)})
		return
	}

	ack := h.processUC.Execute(c.Request.Context(), ucPayment.WebhookInput{
		Type:   req.Type,
		DataID: req.Data.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": string(ack)})
}
