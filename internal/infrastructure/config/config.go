package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Config holds every setting the portal reads from the environment.
type Config struct {
	Port          int
	PublicBaseURL string

	// Location is the zone legacy payment and accounting dates are rendered in.
	Location *time.Location

	// ExposeTransactions registers the transaction inspection endpoint.
	ExposeTransactions bool

	StorageDriver     string
	StorageDir        string
	TransactionsTable string

	RedisAddr     string
	RedisPassword string

	KafkaBroker           string
	PaymentsReportedTopic string

	LogDir string

	DebtWSDL         string
	DebtWSDLFallback string
	DebtSnapshotTTL  time.Duration

	IngresarPago IngresarPagoConfig

	Webpay      WebpayConfig
	Flow        FlowConfig
	MercadoPago MercadoPagoConfig
	Zumpago     ZumpagoConfig

	GatewayMock bool
}

// IngresarPagoConfig lists the legacy endpoints. Companies map normalized
// company RUTs to a dedicated endpoint; the rest use Default.
type IngresarPagoConfig struct {
	Default   string
	Companies map[string]string
}

type WebpayConfig struct {
	BaseURL      string
	CommerceCode string
	APIKey       string
}

type FlowConfig struct {
	BaseURL       string
	APIKey        string
	SecretKey     string
	PaymentMethod string
}

type MercadoPagoConfig struct {
	AccessToken string
	PublicKey   string
}

// ZumpagoConfig keys are handed to the payload cipher. AllowPlainCipher lets
// the passthrough cipher run outside mock mode, for deployments where a proxy
// handles Zumpago's encryption.
type ZumpagoConfig struct {
	URL              string
	CompanyCode      string
	PaymentMethods   string
	XMLKey           string
	VerificationKey  string
	AllowPlainCipher bool
}

const (
	defaultDebtWSDL         = "http://ws.homenet.cl/Test_HN_2025.php?wsdl"
	defaultIngresarPagoWSDL = "http://ws.homenet.cl/Test_HN_2025.php?wsdl"

	companyPrimary    = "764430824"
	companyVillarrica = "765316081"
	companyGorbea     = "76734662K"

	defaultTimezone = "America/Santiago"

	minSnapshotTTL     = 30 * time.Second
	defaultSnapshotTTL = 120 * time.Second
)

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	ingresar := getenvDefault("INGRESAR_PAGO_WSDL", defaultIngresarPagoWSDL)

	return Config{
		Port:          getenvInt("PORT", 8080),
		PublicBaseURL: strings.TrimRight(getenvDefault("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		Location:           location(getenvDefault("PORTAL_TIMEZONE", defaultTimezone)),
		ExposeTransactions: getenvBool("PORTAL_DEBUG_TRANSACTIONS"),

		StorageDriver:     strings.ToLower(getenvDefault("STORAGE_DRIVER", "file")),
		StorageDir:        getenvDefault("STORAGE_DIR", "storage/transactions"),
		TransactionsTable: getenvDefault("TRANSACTIONS_TABLE", "portal_transactions"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		KafkaBroker:           os.Getenv("KAFKA_BROKER"),
		PaymentsReportedTopic: getenvDefault("PAYMENTS_REPORTED_TOPIC", "payments.reported"),

		LogDir: getenvDefault("LOG_DIR", "storage/logs"),

		DebtWSDL:         getenvDefault("DEBT_WSDL", defaultDebtWSDL),
		DebtWSDLFallback: getenvDefault("DEBT_WSDL_FALLBACK", defaultDebtWSDL),
		DebtSnapshotTTL:  snapshotTTL(getenvDuration("DEBT_SNAPSHOT_TTL", defaultSnapshotTTL)),

		IngresarPago: IngresarPagoConfig{
			Default: ingresar,
			Companies: map[string]string{
				companyPrimary:    ingresar,
				companyVillarrica: getenvDefault("INGRESAR_PAGO_WSDL_VILLARRICA", ingresar),
				companyGorbea:     getenvDefault("INGRESAR_PAGO_WSDL_GORBEA", ingresar),
			},
		},

		Webpay: WebpayConfig{
			BaseURL:      getenvDefault("WEBPAY_BASE_URL", "https://webpay3gint.transbank.cl"),
			CommerceCode: getenvDefault("WEBPAY_COMMERCE_CODE", "597055555532"),
			APIKey:       getenvDefault("WEBPAY_API_KEY", "579B532A7440BB0C9079DED94D31EA1615BACEB56610332264630D42D0A36B1C"),
		},
		Flow: FlowConfig{
			BaseURL:       getenvDefault("FLOW_BASE_URL", "https://sandbox.flow.cl/api"),
			APIKey:        os.Getenv("FLOW_API_KEY"),
			SecretKey:     os.Getenv("FLOW_SECRET_KEY"),
			PaymentMethod: getenvDefault("FLOW_PAYMENT_METHOD", "9"),
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
			PublicKey:   os.Getenv("MERCADOPAGO_PUBLIC_KEY"),
		},
		Zumpago: ZumpagoConfig{
			URL:              getenvDefault("ZUMPAGO_URL", "https://www.zumpago.cl/pagos/WebPagos.aspx"),
			CompanyCode:      os.Getenv("ZUMPAGO_COMPANY_CODE"),
			PaymentMethods:   getenvDefault("ZUMPAGO_PAYMENT_METHODS", "016"),
			XMLKey:           os.Getenv("ZUMPAGO_XML_KEY"),
			VerificationKey:  os.Getenv("ZUMPAGO_VERIFICATION_KEY"),
			AllowPlainCipher: getenvBool("ZUMPAGO_ALLOW_PLAIN_CIPHER"),
		},

		GatewayMock: MockEnabled(),
	}
}

// MockEnabled reports whether gateways should answer locally instead of
// calling the real providers.
func MockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		if strings.EqualFold(strings.TrimSpace(os.Getenv(key)), "mock") || getenvBool(key) {
			return true
		}
	}
	return false
}

func getenvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func location(name string) *time.Location {
	loc, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		log.Printf("[config] unknown timezone %q, using %s err=%v", name, defaultTimezone, err)
		if loc, err = time.LoadLocation(defaultTimezone); err != nil {
			return time.Local
		}
	}
	return loc
}

func snapshotTTL(d time.Duration) time.Duration {
	if d < minSnapshotTTL {
		return minSnapshotTTL
	}
	return d
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// getenvDuration accepts Go durations ("90s") and plain seconds ("90").
func getenvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return def
}
