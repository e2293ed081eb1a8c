package handlers

import (
	"log"
	"net/http"

	request "portal_pagos/internal/adapter/http/dto/request"
	response "portal_pagos/internal/adapter/http/dto/response"
	"portal_pagos/internal/usecase"
	"portal_pagos/pkg"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler serves the debt listing and the start of a payment.
type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// ListDebts returns the outstanding debts of the RUT in the query string.
func (h *CheckoutHandler) ListDebts(c *gin.Context) {
	var query request.DebtsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		appErr := pkg.NewValidationError([]string{"The RUT is required."})
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] list-debts start rut=%s", query.RUT)

	debts, err := h.usecase.ListDebts(c.Request.Context(), query.RUT)
	if err != nil {
		log.Printf("[checkout][handler] list-debts failed rut=%s err=%v", query.RUT, err)
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromDebts(query.RUT, debts))
}

// StartPayment validates the selection and opens the payment at the chosen
// gateway.
func (h *CheckoutHandler) StartPayment(c *gin.Context) {
	var payload request.CheckoutRequest
	if err := c.ShouldBind(&payload); err != nil {
		log.Printf("[checkout][handler] invalid payload err=%v", err)
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] start gateway=%s rut=%s selected=%d", payload.Gateway, payload.RUT, len(payload.SelectedIDs))

	res, err := h.usecase.Start(c.Request.Context(), usecase.CheckoutInput{
		Gateway:     payload.Gateway,
		RUT:         payload.RUT,
		Email:       payload.Email,
		SelectedIDs: payload.SelectedIDs,
	})
	if err != nil {
		log.Printf("[checkout][handler] start failed gateway=%s err=%v", payload.Gateway, err)
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] start success gateway=%s id=%s", res.Gateway, res.TransactionID)

	c.JSON(http.StatusCreated, response.FromCheckout(res))
}
