package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	OTP      OTPConfig
	SMTP     SMTPConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret            string
	AccessExpiration  int // in minutes
	RefreshExpiration int // in minutes
	Issuer            string
}

// OTPConfig contains the OTP lifecycle policy knobs. The defaults must stay
// aligned with the wait times communicated to users in the mail templates.
type OTPConfig struct {
	CodeTTL              int // seconds a code stays verifiable
	CooldownTTL          int // seconds between two issuances
	RequestWindowTTL     int // seconds of the request window
	SpamLockTTL          int // seconds an identity stays spam locked
	AccountLockTTL       int // seconds an identity stays account locked
	MaxRequestsPerWindow int // issuances allowed inside the window
	MaxFailedAttempts    int // wrong guesses before the account lock
}

// SMTPConfig contains outbound mail configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  int // in seconds
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
	Type     string
}
