package main

import (
	_ "portal_pagos/docs"
	"portal_pagos/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Portal de Pagos API
// @version         1.0
// @description     Debt lookup, multi-gateway checkout (Webpay, Flow, Mercado Pago, Zumpago) and legacy IngresarPago reporting.

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
