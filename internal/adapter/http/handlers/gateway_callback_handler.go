package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	response "portal_pagos/internal/adapter/http/dto/response"
	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase"
	"portal_pagos/pkg"

	"github.com/gin-gonic/gin"
)

// GatewayCallbackHandler receives what the gateways send back: browser
// returns, which render the outcome, and server notifications, which answer
// in the format each gateway expects.
type GatewayCallbackHandler struct {
	usecase usecase.IConfirmationUseCase
}

func NewGatewayCallbackHandler(uc usecase.IConfirmationUseCase) *GatewayCallbackHandler {
	return &GatewayCallbackHandler{usecase: uc}
}

// WebpayReturn commits token_ws, or records the abort when Webpay sends
// TBK_TOKEN instead.
func (h *GatewayCallbackHandler) WebpayReturn(c *gin.Context) {
	h.confirmAndRender(c, entities.GatewayWebpay, callbackRequest(c))
}

// FlowReturn is where Flow sends the customer once the payment ends.
func (h *GatewayCallbackHandler) FlowReturn(c *gin.Context) {
	h.confirmAndRender(c, entities.GatewayFlow, callbackRequest(c))
}

// FlowConfirm is Flow's server to server confirmation. Flow only reads the
// status code, the body is plain text.
func (h *GatewayCallbackHandler) FlowConfirm(c *gin.Context) {
	req := callbackRequest(c)
	if _, err := h.usecase.Confirm(c.Request.Context(), entities.GatewayFlow, req); err != nil {
		log.Printf("[confirm][handler] flow confirm failed token=%s err=%v", req.Param("token"), err)
		c.String(http.StatusInternalServerError, "ERROR")
		return
	}
	c.String(http.StatusOK, "OK")
}

// MercadoPagoWebhook handles payment notifications. Notifications that do not
// belong to the portal are acknowledged with 202 so they are not retried.
func (h *GatewayCallbackHandler) MercadoPagoWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}
	req := entities.ConfirmationRequest{Params: flatten(c.Request.URL.Query()), Body: body}

	res, err := h.usecase.Confirm(c.Request.Context(), entities.GatewayMercadoPago, req)
	switch {
	case errors.Is(err, entities.ErrNotificationIgnored):
		log.Printf("[confirm][handler] mercadopago notification ignored err=%v", err)
		c.JSON(http.StatusAccepted, gin.H{"status": "ignored"})
		return
	case err != nil:
		log.Printf("[confirm][handler] mercadopago webhook failed err=%v", err)
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"transaction_id": res.Confirmation.TransactionID,
		"outcome":        res.Report.Outcome,
	})
}

// MercadoPagoReturn is the back_url of the checkout preference.
func (h *GatewayCallbackHandler) MercadoPagoReturn(c *gin.Context) {
	h.confirmAndRender(c, entities.GatewayMercadoPago, callbackRequest(c))
}

// ZumpagoResponse is where Zumpago sends the customer with the encrypted
// result.
func (h *GatewayCallbackHandler) ZumpagoResponse(c *gin.Context) {
	h.confirmAndRender(c, entities.GatewayZumpago, callbackRequest(c))
}

// ZumpagoNotify always answers OK; Zumpago does not act on anything else.
func (h *GatewayCallbackHandler) ZumpagoNotify(c *gin.Context) {
	req := callbackRequest(c)
	if req.Param("xml") != "" {
		if _, err := h.usecase.Confirm(c.Request.Context(), entities.GatewayZumpago, req); err != nil {
			log.Printf("[confirm][handler] zumpago notify failed err=%v", err)
		}
	}
	c.String(http.StatusOK, "OK")
}

// ZumpagoCancel is shown when the customer leaves Zumpago without paying.
func (h *GatewayCallbackHandler) ZumpagoCancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"gateway":   entities.GatewayZumpago,
		"status":    entities.FinalStateCancelled,
		"message":   "The payment was cancelled.",
		"start_url": pkg.StartOverURL,
	})
}

// GetTransaction returns the reporting state of a stored transaction.
func (h *GatewayCallbackHandler) GetTransaction(c *gin.Context) {
	gateway, ok := entities.ParseGateway(c.Param("gateway"))
	if !ok {
		c.JSON(errUnknownGateway.HTTPStatus, errUnknownGateway.ToHTTPError())
		return
	}
	id := c.Param("id")

	doc, err := h.usecase.GetTransaction(c.Request.Context(), gateway, id)
	if err != nil {
		log.Printf("[confirm][handler] get-transaction failed gateway=%s id=%s err=%v", gateway, id, err)
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	res, err := response.FromTransactionDocument(gateway, doc)
	if err != nil {
		log.Printf("[confirm][handler] get-transaction malformed gateway=%s id=%s err=%v", gateway, id, err)
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GatewayCallbackHandler) confirmAndRender(c *gin.Context, gateway entities.Gateway, req entities.ConfirmationRequest) {
	log.Printf("[confirm][handler] %s return start", gateway)
	res, err := h.usecase.Confirm(c.Request.Context(), gateway, req)
	if err != nil {
		log.Printf("[confirm][handler] %s return failed err=%v", gateway, err)
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromConfirmation(res))
}

// callbackRequest collects the query string and the posted form of a
// gateway callback.
func callbackRequest(c *gin.Context) entities.ConfirmationRequest {
	if err := c.Request.ParseForm(); err != nil {
		log.Printf("[confirm][handler] could not parse callback form err=%v", err)
	}
	return entities.ConfirmationRequest{Params: flatten(c.Request.Form)}
}

func flatten(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		for _, item := range v {
			if strings.TrimSpace(item) != "" {
				out[k] = item
				break
			}
		}
	}
	return out
}
