package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"portal_pagos/internal/adapter/http/handlers"
	"portal_pagos/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

func TestCallbackURLs(t *testing.T) {
	urls := callbackURLs("https://portal.example.cl")

	if got := urls[entities.GatewayWebpay].Return; got != "https://portal.example.cl/v1/webpay/return" {
		t.Fatalf("unexpected webpay return url %q", got)
	}
	if got := urls[entities.GatewayFlow].Confirm; got != "https://portal.example.cl/v1/flow/confirm" {
		t.Fatalf("unexpected flow confirm url %q", got)
	}
	if got := urls[entities.GatewayMercadoPago].Confirm; got != "https://portal.example.cl/v1/mercadopago/webhook" {
		t.Fatalf("unexpected mercado pago webhook %q", got)
	}
	if got := urls[entities.GatewayZumpago].Cancel; got != "https://portal.example.cl/v1/zumpago/cancel" {
		t.Fatalf("unexpected zumpago cancel url %q", got)
	}
}

func TestPingRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	addPingRoutes(r.Group("/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestTransactionRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hasTransactionRoute := func(r *gin.Engine) bool {
		for _, route := range r.Routes() {
			if route.Path == "/v1"+PathTransactions+"/:gateway/:id" {
				return true
			}
		}
		return false
	}

	r := gin.New()
	v1 := r.Group("/v1")
	callbackHandler := handlers.NewGatewayCallbackHandler(nil)
	addPortalRoutes(v1, handlers.NewCheckoutHandler(nil), callbackHandler)
	if hasTransactionRoute(r) {
		t.Fatalf("transaction inspection must not be part of the public routes")
	}

	addTransactionRoutes(v1, callbackHandler)
	if !hasTransactionRoute(r) {
		t.Fatalf("transaction inspection route not registered")
	}
}
