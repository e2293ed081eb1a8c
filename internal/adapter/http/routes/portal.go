package routes

import (
	"portal_pagos/internal/adapter/http/handlers"
	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	PathDebts        = "/debts"
	PathPayments     = "/payments"
	PathTransactions = "/transactions"

	PathWebpayReturn       = "/webpay/return"
	PathFlowReturn         = "/flow/return"
	PathFlowConfirm        = "/flow/confirm"
	PathMercadoPagoReturn  = "/mercadopago/return"
	PathMercadoPagoWebhook = "/mercadopago/webhook"
	PathZumpagoResponse    = "/zumpago/response"
	PathZumpagoNotify      = "/zumpago/notify"
	PathZumpagoCancel      = "/zumpago/cancel"

	apiPrefix = "/v1"
)

func addPortalRoutes(rg *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler, callbackHandler *handlers.GatewayCallbackHandler) {
	rg.GET(PathDebts, checkoutHandler.ListDebts)
	rg.POST(PathPayments, checkoutHandler.StartPayment)

	// Browser returns arrive as GET or POST depending on the gateway.
	rg.Match([]string{"GET", "POST"}, PathWebpayReturn, callbackHandler.WebpayReturn)
	rg.Match([]string{"GET", "POST"}, PathFlowReturn, callbackHandler.FlowReturn)
	rg.Match([]string{"GET", "POST"}, PathMercadoPagoReturn, callbackHandler.MercadoPagoReturn)
	rg.Match([]string{"GET", "POST"}, PathZumpagoResponse, callbackHandler.ZumpagoResponse)
	rg.GET(PathZumpagoCancel, callbackHandler.ZumpagoCancel)

	// Server to server notifications.
	rg.POST(PathFlowConfirm, callbackHandler.FlowConfirm)
	rg.POST(PathMercadoPagoWebhook, callbackHandler.MercadoPagoWebhook)
	rg.Match([]string{"GET", "POST"}, PathZumpagoNotify, callbackHandler.ZumpagoNotify)
}

// addTransactionRoutes exposes the reporting state of stored transactions.
// It is only registered when PORTAL_DEBUG_TRANSACTIONS is set.
func addTransactionRoutes(rg *gin.RouterGroup, callbackHandler *handlers.GatewayCallbackHandler) {
	rg.GET(PathTransactions+"/:gateway/:id", callbackHandler.GetTransaction)
}

// callbackURLs are the absolute portal urls handed to each gateway.
func callbackURLs(baseURL string) map[entities.Gateway]usecase.CallbackURLs {
	base := baseURL + apiPrefix
	return map[entities.Gateway]usecase.CallbackURLs{
		entities.GatewayWebpay: {
			Return: base + PathWebpayReturn,
		},
		entities.GatewayFlow: {
			Return:  base + PathFlowReturn,
			Confirm: base + PathFlowConfirm,
		},
		entities.GatewayMercadoPago: {
			Return:  base + PathMercadoPagoReturn,
			Confirm: base + PathMercadoPagoWebhook,
			Cancel:  base + PathMercadoPagoReturn,
		},
		entities.GatewayZumpago: {
			Return:  base + PathZumpagoResponse,
			Confirm: base + PathZumpagoNotify,
			Cancel:  base + PathZumpagoCancel,
		},
	}
}
