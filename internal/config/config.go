package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	sharedinfra "salesboard/internal/shared/infrastructure"
	standsdomain "salesboard/internal/stands/domain"
)

// ErrNoAccessCode est retournée quand aucun code d'accès n'est configuré
var ErrNoAccessCode = errors.New("ACCESS_CODE or ACCESS_CODE_HASH must be set")

// DBConfig regroupe la connexion à la base de persistance
type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string
}

// DSN retourne la chaîne de connexion du driver configuré
func (c DBConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Config regroupe la configuration de l'application
type Config struct {
	HTTPPort        string
	EcommercePath   string
	StandsPath      string
	ProductsPath    string
	Delimiter       rune
	ProductsDelim   rune
	AccessCode      string
	AccessCodeHash  string
	SessionSecret   string
	TitleExceptions []string
	StoreAliases    map[string]string
	DB              DBConfig
	LogLevel        string
}

// LoadDotEnv charge .env s'il existe; un fichier absent n'est pas une erreur
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load lit la configuration depuis l'environnement avec des valeurs par défaut
func Load() (Config, error) {
	delimiter, err := sharedinfra.ParseDelimiter(getEnv("CSV_DELIMITER", ";"))
	if err != nil {
		return Config{}, fmt.Errorf("CSV_DELIMITER: %w", err)
	}
	// products.csv est exporté avec des virgules, indépendamment des autres exports
	productsDelim, err := sharedinfra.ParseDelimiter(getEnv("PRODUCTS_DELIMITER", ","))
	if err != nil {
		return Config{}, fmt.Errorf("PRODUCTS_DELIMITER: %w", err)
	}
	aliases, err := standsdomain.ParseStoreAliases(getEnv("STANDS_STORE_ALIASES", standsdomain.DefaultStoreAlias))
	if err != nil {
		return Config{}, fmt.Errorf("STANDS_STORE_ALIASES: %w", err)
	}

	port := getEnv("HTTP_PORT", "8080")
	if _, err := strconv.Atoi(port); err != nil {
		return Config{}, fmt.Errorf("invalid HTTP_PORT value %q", port)
	}

	return Config{
		HTTPPort:        port,
		EcommercePath:   getEnv("ECOMMERCE_FILE", "datasets/ecommerce_raw.csv"),
		StandsPath:      getEnv("STANDS_FILE", "datasets/stands.csv"),
		ProductsPath:    getEnv("PRODUCTS_FILE", "datasets/products.csv"),
		Delimiter:       delimiter,
		ProductsDelim:   productsDelim,
		AccessCode:      os.Getenv("ACCESS_CODE"),
		AccessCodeHash:  os.Getenv("ACCESS_CODE_HASH"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		TitleExceptions: splitList(getEnv("STANDS_TITLE_EXCEPTIONS", standsdomain.DefaultTitleException)),
		StoreAliases:    aliases,
		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "salesboard"),
			Password: getEnv("DB_PASSWORD", "salesboard"),
			Name:     getEnv("DB_NAME", "salesboard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "salesboard.db"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Validate vérifie la configuration nécessaire au serveur web
func (c Config) Validate() error {
	if c.AccessCode == "" && c.AccessCodeHash == "" {
		return ErrNoAccessCode
	}
	return nil
}

// CleaningRules retourne les règles de nettoyage des stands configurées
func (c Config) CleaningRules() standsdomain.CleaningRules {
	return standsdomain.NewCleaningRules(c.TitleExceptions, c.StoreAliases)
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
