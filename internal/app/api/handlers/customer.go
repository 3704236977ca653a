package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/internal/app/service/gateway"
	"github.com/fatflowers/texttopay/pkg/apperr"
	"github.com/fatflowers/texttopay/pkg/logctx"
	"github.com/fatflowers/texttopay/pkg/response"
)

type CreateCustomerRequest struct {
	Name  string `json:"name" example:"Jane Doe"`
	Phone string `json:"phone" example:"+12125551234"`
}

// bindJSON decodes the body into dst. An empty body leaves dst zero so the
// field checks downstream produce their usual message.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Validation("Invalid request body: %s", err.Error())
	}
	return nil
}

// @Summary      Create customer
// @Description  Creates a provider customer from a name and an E.164 phone number and relays the provider response.
// @Tags         Customer
// @Accept       json
// @Produce      json
// @Param        request body handlers.CreateCustomerRequest true "Customer"
// @Success      200  {object}  handlers.SwaggerCustomer
// @Failure      400  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /api/customers [post]
func ApiCreateCustomer(gw gateway.Gateway, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCustomerRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
		cust, err := gw.CreateCustomer(c.Request.Context(), req.Name, req.Phone)
		if err != nil {
			logctx.FromGin(c, log).Errorw("create_customer_failed", "error", err.Error())
			response.Error(c, err)
			return
		}
		response.Raw(c, http.StatusOK, cust.Raw)
	}
}

// @Summary      Get customer
// @Description  Fetches a provider customer by id.
// @Tags         Customer
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  handlers.SwaggerCustomer
// @Failure      500  {object}  response.ErrorBody
// @Router       /api/customers/{id} [get]
func ApiGetCustomer(gw gateway.Gateway, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cust, err := gw.GetCustomer(c.Request.Context(), c.Param("id"))
		if err != nil {
			logctx.FromGin(c, log).Errorw("get_customer_failed", "customer_id", c.Param("id"), "error", err.Error())
			response.Error(c, err)
			return
		}
		response.Raw(c, http.StatusOK, cust.Raw)
	}
}

func RegisterCustomerRoutes(r gin.IRouter, gw gateway.Gateway, log *zap.SugaredLogger) {
	r.POST("/customers", ApiCreateCustomer(gw, log))
	r.GET("/customers/:id", ApiGetCustomer(gw, log))
}
