package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// COERCITION "BEST-EFFORT"
//
// Les exports sont sales: montants avec séparateurs, dates dans plusieurs
// formats, cellules vides. Aucune de ces fonctions ne retourne d'erreur:
// une valeur illisible devient 0 (nombres) ou une date nulle (ok == false).
// ============================================================================

// DigitsOnly supprime tout ce qui n'est pas un chiffre ASCII
func DigitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

// DigitsToInt convertit les chiffres d'une chaîne en entier; 0 si aucun chiffre ou dépassement
func DigitsToInt(raw string) int64 {
	digits := DigitsOnly(raw)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// CoerceInt convertit un nombre (entier ou décimal) en entier tronqué vers zéro.
// Accepte "12", "12.0", " 3 " et la notation locale "1.234,50" (point = milliers,
// virgule = décimales). Vide ou illisible → 0.
func CoerceInt(raw string) int64 {
	d, ok := ParseDecimal(raw)
	if !ok {
		return 0
	}
	return d.IntPart()
}

// ParseDecimal lit un nombre décimal; la présence d'une virgule active la notation locale
func ParseDecimal(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// IntegralString normalise un identifiant numérique lu comme flottant ("1001.0" → "1001").
// Les identifiants non numériques sont retournés tels quels (sans espaces).
func IntegralString(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return s
	}
	return strconv.FormatInt(int64(f), 10)
}

// ParseDateFirst essaie chaque layout dans l'ordre et retourne la première date valide.
// Seul le premier mot est considéré: une heure éventuelle ("01/03/24 10:15") est ignorée.
func ParseDateFirst(raw string, layouts ...string) (time.Time, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, fields[0]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ForwardFill propage la dernière valeur présente vers les valeurs manquantes suivantes.
// C'est la politique de repli explicite des normaliseurs (équivalent d'un ffill).
type ForwardFill[T any] struct {
	last T
	has  bool
}

// Next retourne v si elle est présente, sinon la dernière valeur vue.
// Le booléen indique qu'une valeur a été propagée; sans valeur précédente
// la valeur nulle de T est retournée avec filled == false.
func (f *ForwardFill[T]) Next(v T, present bool) (value T, filled bool) {
	if present {
		f.last = v
		f.has = true
		return v, false
	}
	if f.has {
		return f.last, true
	}
	var zero T
	return zero, false
}
