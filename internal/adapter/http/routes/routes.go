package routes

import (
	"context"
	"log"
	"net/http"
	"strconv"

	_ "portal_pagos/docs" // This will be auto-generated
	"portal_pagos/internal/adapter/http/handlers"
	"portal_pagos/internal/adapter/persistence/repository"
	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/infrastructure/cache"
	"portal_pagos/internal/infrastructure/config"
	"portal_pagos/internal/infrastructure/database"
	"portal_pagos/internal/infrastructure/debts"
	"portal_pagos/internal/infrastructure/legacy"
	"portal_pagos/internal/infrastructure/lock"
	"portal_pagos/internal/infrastructure/messaging"
	"portal_pagos/internal/infrastructure/metrics"
	"portal_pagos/internal/infrastructure/payments"
	"portal_pagos/internal/infrastructure/reportlog"
	"portal_pagos/internal/usecase"
	"portal_pagos/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg := config.Load()
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	getRoutes(cfg)

	err := router.Run(":" + strconv.Itoa(cfg.Port))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg config.Config) {
	if cfg.GatewayMock {
		log.Printf("[routes] payment gateway mock mode enabled")
	}

	stores := newTransactionStores(cfg)

	rdb := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
	snapshots := cache.NewSnapshotCache(rdb)
	var locker interfaces.IReportLocker = lock.NewKeyedMutex()
	if rdb != nil {
		locker = lock.NewRedisLease(rdb)
	}

	var publisher interfaces.IReportPublisher = messaging.NoopReportPublisher{}
	if cfg.KafkaBroker != "" {
		publisher = messaging.NewKafkaReportPublisher(cfg.KafkaBroker, cfg.PaymentsReportedTopic)
	}

	reportLog := reportlog.NewFileReportLog(cfg.LogDir)
	reportMetrics := metrics.NewReportMetrics(prometheus.DefaultRegisterer)
	legacyRouter := legacy.NewRouter(cfg.IngresarPago.Default, cfg.IngresarPago.Companies, nil)
	debtLookup := debts.NewSoapDebtLookup(nil, cfg.DebtWSDL, cfg.DebtWSDLFallback)

	gateways := newPaymentGateways(cfg)
	adapters := make(map[entities.Gateway]interfaces.IGatewayAdapter, len(gateways))
	reporters := make(map[entities.Gateway]usecase.ILegacyReporter, len(gateways))
	for g, gw := range gateways {
		adapters[g] = gw
		reporters[g] = usecase.NewLegacyReporter(g, stores[g], legacyRouter,
			usecase.WithReportLocker(locker, 0),
			usecase.WithReportLog(reportLog),
			usecase.WithReportPublisher(publisher),
			usecase.WithReportMetrics(reportMetrics),
			usecase.WithDateLocation(cfg.Location),
		)
	}

	checkoutUseCase := usecase.NewCheckoutUseCase(debtLookup, snapshots, gateways, stores, callbackURLs(cfg.PublicBaseURL), cfg.DebtSnapshotTTL)
	confirmationUseCase := usecase.NewConfirmationUseCase(adapters, stores, reporters, snapshots)

	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase)
	callbackHandler := handlers.NewGatewayCallbackHandler(confirmationUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPortalRoutes(v1, checkoutHandler, callbackHandler)
	if cfg.ExposeTransactions {
		log.Printf("transaction inspection endpoint enabled")
		addTransactionRoutes(v1, callbackHandler)
	}
}

func newTransactionStores(cfg config.Config) map[entities.Gateway]interfaces.ITransactionStore {
	stores := make(map[entities.Gateway]interfaces.ITransactionStore, len(entities.Gateways))
	if cfg.StorageDriver == "dynamodb" {
		ddb := database.ConnectDynamoDB()
		if err := database.EnsureTransactionsTable(context.Background(), ddb, cfg.TransactionsTable); err != nil {
			log.Fatalf("Failed to prepare the transactions table: %v", err)
		}
		for _, g := range entities.Gateways {
			stores[g] = repository.NewTransactionDynamoRepository(ddb, string(g))
		}
		return stores
	}
	for _, g := range entities.Gateways {
		stores[g] = repository.NewTransactionFileRepository(cfg.StorageDir, string(g))
	}
	return stores
}

func newPaymentGateways(cfg config.Config) map[entities.Gateway]interfaces.IPaymentGateway {
	gateways := map[entities.Gateway]interfaces.IPaymentGateway{}
	httpClient := &http.Client{Timeout: payments.GatewayTimeout}

	if gw, err := payments.NewWebpayGateway(cfg.Webpay, httpClient); err != nil {
		log.Printf("Webpay gateway not configured: %v", err)
	} else {
		gateways[entities.GatewayWebpay] = gw
	}
	if gw, err := payments.NewFlowGateway(cfg.Flow, httpClient); err != nil {
		log.Printf("Flow gateway not configured: %v", err)
	} else {
		gateways[entities.GatewayFlow] = gw
	}
	if gw, err := payments.NewMercadoPagoGateway(cfg.MercadoPago); err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		gateways[entities.GatewayMercadoPago] = gw
	}
	if gw, err := payments.NewZumpagoGateway(cfg.Zumpago, nil); err != nil {
		log.Printf("Zumpago gateway not configured: %v", err)
	} else {
		gateways[entities.GatewayZumpago] = gw
	}
	return gateways
}

func setMiddlewares() {
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
