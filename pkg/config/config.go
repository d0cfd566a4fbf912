package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Redis   RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	LogLevel  string
	HotelName string // encabezado del estado de cuenta
}

// StorageConfig selecciona el driver de persistencia.
type StorageConfig struct {
	Driver      string // postgres | memory
	AutoMigrate bool
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
	MaxConns    int32
	MinConns    int32
	ForceIPv4   bool // solo tcp4: redes de contenedores sin salida IPv6
}

// ConnectionString devuelve DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN arma el connection string con la contraseña escapada.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host     string
	Port     int
	DocsPath string // swagger.json/yaml; si no existe no se monta /docs
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT. Secret vacío desactiva la autenticación.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Enabled indica si la API exige token.
func (c JWTConfig) Enabled() bool { return c.Secret != "" }

// RedisConfig configuración de la caché del resumen de habitaciones.
type RedisConfig struct {
	Addr     string // vacío = sin caché
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// Load lee la configuración desde variables de entorno (y opcionalmente .env / config.env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig() // opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:       v.GetString("APP_ENV"),
			Name:      v.GetString("APP_NAME"),
			LogLevel:  v.GetString("LOG_LEVEL"),
			HotelName: v.GetString("HOTEL_NAME"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			MinConns:    v.GetInt32("DB_MIN_CONNS"),
			ForceIPv4:   v.GetBool("DB_FORCE_IPV4"),
		},
		HTTP: HTTPConfig{
			Host:     v.GetString("HTTP_HOST"),
			Port:     v.GetInt("HTTP_PORT"),
			DocsPath: v.GetString("DOCS_PATH"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		},
	}

	switch cfg.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER inválido: %q (postgres|memory)", cfg.Storage.Driver)
	}
	if cfg.HTTP.Port <= 0 {
		return nil, fmt.Errorf("HTTP_PORT inválido: %d", cfg.HTTP.Port)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "gestion-hotel")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HOTEL_NAME", "Hotel")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "gestion_hotel")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("DB_FORCE_IPV4", false)
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("DOCS_PATH", "./docs/swagger.json")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 480)
	v.SetDefault("JWT_ISSUER", "gestion-hotel")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL_SECONDS", 30)
}
