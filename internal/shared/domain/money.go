package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// DefaultCurrency est la devise des exports (montants entiers, sans centimes)
const DefaultCurrency = "ARS"

// Money représente un montant entier dans une devise
type Money struct {
	amount   int64
	currency string
}

// NewMoney crée une nouvelle instance de Money avec validation
func NewMoney(amount int64, currency string) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: currency,
	}, nil
}

// MustNewMoney crée un Money en paniquant si invalide
func MustNewMoney(amount int64, currency string) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(fmt.Sprintf("invalid money: %v", err))
	}
	return m
}

// Amount retourne le montant
func (m Money) Amount() int64 {
	return m.amount
}

// AddAmount ajoute un montant brut dans la même devise
func (m Money) AddAmount(amount int64) Money {
	return Money{amount: m.amount + amount, currency: m.currency}
}

// Average divise le montant par n; retourne 0 quand n vaut 0
func (m Money) Average(n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(m.amount) / float64(n)
}

// String formate le montant à la manière du tableau de bord: "$15.000"
func (m Money) String() string {
	return "$" + FormatThousands(m.amount)
}

// MarshalJSON expose le montant comme un nombre
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.amount, 10)), nil
}

// FormatThousands formate un entier avec des points comme séparateurs de milliers
func FormatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3+1)
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
