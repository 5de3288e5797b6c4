package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Redis    RedisConfig
	Notify   NotifyConfig
	Delivery DeliveryConfig
	Storage  StorageConfig
	Stock    StockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Store    string // postgres | memory
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host      string
	Port      int
	RateLimit int // peticiones por minuto y por IP; 0 desactiva el limitador
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché de productos destacados. Addr vacío = caché deshabilitada (Noop).
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	FeaturedTTL time.Duration
}

// NotifyConfig tamaño de la cola y número de workers del despachador de notificaciones.
type NotifyConfig struct {
	QueueSize int
	Workers   int
}

// DeliveryConfig proveedores para el envío de credenciales (email y SMS).
type DeliveryConfig struct {
	ResendAPIKey     string
	EmailFrom        string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	Timeout          time.Duration
}

// StorageConfig almacenamiento local de imágenes subidas.
type StorageConfig struct {
	UploadDir     string
	PublicBaseURL string
}

// StockConfig umbral de alerta de stock bajo (0 = sin alertas).
type StockConfig struct {
	LowStockThreshold int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "retail-ops-api"),
			Store:    strings.ToLower(getString(v, "APP_STORE", "postgres")),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "retail_ops"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 1440),
			Issuer:     getString(v, "JWT_ISSUER", "retail-ops-api"),
		},
		HTTP: HTTPConfig{
			Host:      getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:      getInt(v, "HTTP_PORT", 8080),
			RateLimit: getInt(v, "HTTP_RATE_LIMIT", 120),
		},
		Redis: RedisConfig{
			Addr:        getString(v, "REDIS_ADDR", ""),
			Password:    getString(v, "REDIS_PASSWORD", ""),
			DB:          getInt(v, "REDIS_DB", 0),
			FeaturedTTL: time.Duration(getInt(v, "FEATURED_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Notify: NotifyConfig{
			QueueSize: getInt(v, "NOTIFY_QUEUE_SIZE", 256),
			Workers:   getInt(v, "NOTIFY_WORKERS", 2),
		},
		Delivery: DeliveryConfig{
			ResendAPIKey:     getString(v, "RESEND_API_KEY", ""),
			EmailFrom:        getString(v, "EMAIL_FROM", "no-reply@retail-ops.local"),
			SMTPHost:         getString(v, "SMTP_HOST", ""),
			SMTPPort:         getInt(v, "SMTP_PORT", 587),
			SMTPUser:         getString(v, "SMTP_USER", ""),
			SMTPPassword:     getString(v, "SMTP_PASSWORD", ""),
			TwilioAccountSID: getString(v, "TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:  getString(v, "TWILIO_AUTH_TOKEN", ""),
			TwilioFromNumber: getString(v, "TWILIO_FROM_NUMBER", ""),
			Timeout:          time.Duration(getInt(v, "DELIVERY_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Storage: StorageConfig{
			UploadDir:     getString(v, "UPLOAD_DIR", "./uploads"),
			PublicBaseURL: getString(v, "PUBLIC_BASE_URL", "http://localhost:8080"),
		},
		Stock: StockConfig{
			LowStockThreshold: getInt(v, "LOW_STOCK_THRESHOLD", 3),
		},
	}

	if cfg.App.Store != "postgres" && cfg.App.Store != "memory" {
		return nil, fmt.Errorf("APP_STORE inválido: %q (postgres | memory)", cfg.App.Store)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET es obligatorio")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
