package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/internal/app/service/gateway"
	"github.com/fatflowers/texttopay/pkg/logctx"
	"github.com/fatflowers/texttopay/pkg/response"
)

// @Summary      Create payment
// @Description  Sends a single-invoice text-to-pay request to an existing customer. Amount is in minor units (cents).
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body gateway.PaymentRequest true "Payment request"
// @Success      200  {object}  handlers.SwaggerPayment
// @Failure      400  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /api/payments [post]
func ApiCreatePayment(gw gateway.Gateway, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req gateway.PaymentRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
		p, err := gw.CreatePayment(c.Request.Context(), &req)
		if err != nil {
			logctx.FromGin(c, log).Errorw("create_payment_failed", "customer_id", req.CustomerID, "error", err.Error())
			response.Error(c, err)
			return
		}
		logctx.FromGin(c, log).Infow("payment_created", "payment_id", p.ID, "customer_id", req.CustomerID, "amount", req.Amount)
		response.Raw(c, http.StatusOK, p.Raw)
	}
}

func RegisterPaymentRoutes(r gin.IRouter, gw gateway.Gateway, log *zap.SugaredLogger) {
	r.POST("/payments", ApiCreatePayment(gw, log))
}
