package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	Auth0Domain   string `env:"AUTH0_DOMAIN,required"`
	Auth0Audience string `env:"AUTH0_AUDIENCE,required"`
	JWTSecret     string `env:"JWT_SECRET"`
	JWTSecretFile string `env:"JWT_SECRET_FILE"`
	SMTPHost      string `env:"SMTP_HOST"`
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser      string `env:"SMTP_USER"`
	SMTPPass      string `env:"SMTP_PASS"`
	SMTPFrom      string `env:"SMTP_FROM"`
	SMTPFromName  string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS    bool   `env:"SMTP_USE_TLS" envDefault:"false"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SigningSecret resuelve el secreto de firma para app tokens. Si
// JWT_SECRET_FILE está configurado (montado desde un secret store), su
// contenido tiene prioridad sobre JWT_SECRET.
func (c *Config) SigningSecret() (string, error) {
	if c.JWTSecretFile != "" {
		data, err := os.ReadFile(c.JWTSecretFile)
		if err != nil {
			return "", fmt.Errorf("read jwt secret file: %w", err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("jwt secret file %s is empty", c.JWTSecretFile)
		}
		return secret, nil
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return "", fmt.Errorf("jwt secret not configured")
	}
	return c.JWTSecret, nil
}
