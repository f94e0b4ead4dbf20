package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	sharedinfra "salesboard/internal/shared/infrastructure"
)

// EcommerceFixture est un export e-commerce minimal: une commande de deux lignes
// (la seconde sans date ni total), deux commandes simples en mars, une en avril
const EcommerceFixture = "order_id;order_num;date;email;total;article_title;article_quantity;shipping_method;origin;promo_code;invoice_url\n" +
	"1;1001;01/03/24;a@x.com;15.000,00;Camisa;1;Correo;web;;http://f/1\n" +
	";;;;;Pantalon;2;;;;\n" +
	"2;1002;02/03/24;b@x.com;3.000.000;Camisa;1;Moto;web;PROMO;http://f/2\n" +
	"3;1003;15/04/24;c@x.com;1.000.000;Gorra;5;Moto;tienda;;http://f/3\n"

// StandsFixture est un export des stands: une ligne JUNCAL (regroupée avec ALTOPALERMO)
// et une ligne incomplète écartée au nettoyage
const StandsFixture = "Fecha;Origen - Base de datos;Comprobante;Item - Cantidad;Artículo - Código;Artículo;" +
	"Item - Monto sin impuestos;Item - Monto con impuestos;Item - Descuento sin impuestos;" +
	"Item - Descuento con impuestos;Item - Monto Neto sin impuestos;Item - Monto Neto\n" +
	"01/03/2024;UNICENTER;F1;2;10;A Camisa Azul;800;1000;0;0;800;1000\n" +
	"01/03/2024;JUNCAL;F2;1;11;B Gorra;300;400;0;0;300;400\n" +
	"02/03/2024;ALTOPALERMO;F3;1;11;B Gorra;300;400;0;0;300;400\n" +
	"03/03/2024;UNICENTER;;1;12;C Medias;100;100;0;0;100;100\n"

// ProductsFixture est un catalogue de trois variantes dont une illisible
const ProductsFixture = "ID,Variant ID,Title,Status,Price,Stock,SKU,Weight\n" +
	"1,10,Remera Básica,active,\"1,500.00\",5,777,0.2\n" +
	"2,20,Gorra,draft,--,Ilimitado,--,0.1\n" +
	"x,30,Buzo,active,900,1,779,0.5\n"

// TestContext contient les fichiers et l'infrastructure partagée d'un test.
// Ne contient PAS les services pour éviter les import cycles.
type TestContext struct {
	Dir           string
	EcommercePath string
	StandsPath    string
	ProductsPath  string

	Cache  *sharedinfra.InMemoryCache
	Logger *log.Logger
}

// SetupTestContext écrit les fixtures dans un répertoire temporaire
func SetupTestContext(tb testing.TB) *TestContext {
	tb.Helper()

	dir := tb.TempDir()
	return &TestContext{
		Dir:           dir,
		EcommercePath: WriteFile(tb, dir, "ecommerce_raw.csv", EcommerceFixture),
		StandsPath:    WriteFile(tb, dir, "stands.csv", StandsFixture),
		ProductsPath:  WriteFile(tb, dir, "products.csv", ProductsFixture),
		Cache:         sharedinfra.NewInMemoryCache(),
		Logger:        sharedinfra.NewDiscardLogger(),
	}
}

// WriteFile écrit un fichier et retourne son chemin
func WriteFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// SetupSQLiteDB ouvre une base SQLite en mémoire, fermée en fin de test
func SetupSQLiteDB(tb testing.TB) *sqlx.DB {
	tb.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		tb.Fatalf("Failed to open sqlite: %v", err)
	}
	// une seule connexion: chaque connexion :memory: est une base distincte
	db.SetMaxOpenConns(1)
	tb.Cleanup(func() { db.Close() })
	return db
}

// SetupTestDB ouvre la base PostgreSQL de test (skip si indisponible)
func SetupTestDB(tb testing.TB) *sqlx.DB {
	tb.Helper()

	_ = godotenv.Load("../.env", "../../.env")

	db, err := sqlx.Open("postgres", postgresDSN())
	if err != nil {
		tb.Skip("Database not available:", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		tb.Skip("Database not available:", err)
	}
	tb.Cleanup(func() { db.Close() })
	return db
}

func postgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "salesboard"),
		getEnv("DB_PASSWORD", "salesboard"),
		getEnv("DB_NAME", "salesboard_test"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
