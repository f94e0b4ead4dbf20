package config

import (
	"errors"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "CSV_DELIMITER", "PRODUCTS_DELIMITER", "STANDS_STORE_ALIASES", "STANDS_TITLE_EXCEPTIONS", "DB_DRIVER", "ACCESS_CODE", "ACCESS_CODE_HASH"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPPort != "8080" || cfg.Delimiter != ';' || cfg.ProductsDelim != ',' {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.StoreAliases["JUNCAL"] != "ALTOPALERMO" || len(cfg.TitleExceptions) != 1 || cfg.TitleExceptions[0] != "PACÍFICO" {
		t.Fatalf("unexpected cleaning defaults %+v / %+v", cfg.StoreAliases, cfg.TitleExceptions)
	}
	if !errors.Is(cfg.Validate(), ErrNoAccessCode) {
		t.Fatal("expected ErrNoAccessCode without access code")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CSV_DELIMITER", ",")
	t.Setenv("PRODUCTS_DELIMITER", "tab")
	t.Setenv("ACCESS_CODE", "secret")
	t.Setenv("STANDS_TITLE_EXCEPTIONS", "PACÍFICO, DOT")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/x.db")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPPort != "9090" || cfg.Delimiter != ',' || cfg.ProductsDelim != '\t' || cfg.Validate() != nil {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.TitleExceptions) != 2 || cfg.TitleExceptions[1] != "DOT" {
		t.Fatalf("exceptions = %v", cfg.TitleExceptions)
	}
	if cfg.DB.DSN() != "/tmp/x.db" {
		t.Fatalf("dsn = %q", cfg.DB.DSN())
	}
	if got := cfg.CleaningRules().CleanTitle("DOT", "A B"); got != "A B" {
		t.Fatalf("configured exception ignored: %q", got)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "http")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non numeric port")
	}

	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("CSV_DELIMITER", "#")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported delimiter")
	}

	t.Setenv("CSV_DELIMITER", ";")
	t.Setenv("PRODUCTS_DELIMITER", "#")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported products delimiter")
	}
}

func TestPostgresDSN(t *testing.T) {
	c := DBConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	if got := c.DSN(); got != "host=db port=5432 user=u password=p dbname=n sslmode=disable" {
		t.Fatalf("dsn = %q", got)
	}
}
