package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout est le format des dates échangées avec l'UI (paramètres de requête)
const DateLayout = "2006-01-02"

// ErrInvalidDateRange est retournée quand une borne de période est illisible
var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange représente une période calendaire inclusive [start, end]
// DESIGN PATTERN: Value Object (DDD)
//   - Immutable: pas de setters, valeurs fixées à la création
//   - Les bornes sont tronquées au jour (UTC), l'heure est ignorée
//   - start > end est autorisé et représente une période vide
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange crée une période inclusive à partir de deux dates calendaires
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		start: TruncateDay(start),
		end:   TruncateDay(end),
	}
}

// NewDateRangeFromDays crée un DateRange couvrant les `days` derniers jours jusqu'à aujourd'hui
func NewDateRangeFromDays(days int, now time.Time) (DateRange, error) {
	if days < 0 {
		return DateRange{}, fmt.Errorf("%w: days cannot be negative", ErrInvalidDateRange)
	}
	return NewDateRange(now.AddDate(0, 0, -days), now), nil
}

// DefaultDateRange retourne la période par défaut du tableau de bord:
// du premier jour du mois courant jusqu'à aujourd'hui
func DefaultDateRange(now time.Time) DateRange {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return NewDateRange(first, now)
}

// ParseDateRange construit une période depuis deux chaînes YYYY-MM-DD.
// Une chaîne vide reprend la borne de `fallback`.
func ParseDateRange(start, end string, fallback DateRange) (DateRange, error) {
	s, e := fallback.start, fallback.end
	if start != "" {
		t, err := time.Parse(DateLayout, start)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidDateRange, start)
		}
		s = t
	}
	if end != "" {
		t, err := time.Parse(DateLayout, end)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidDateRange, end)
		}
		e = t
	}
	return NewDateRange(s, e), nil
}

// Start retourne la date de début
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la date de fin
func (dr DateRange) End() time.Time {
	return dr.end
}

// IsEmpty indique qu'aucune date ne peut appartenir à la période
func (dr DateRange) IsEmpty() bool {
	return dr.start.After(dr.end)
}

// Contains vérifie si une date appartient à la période (bornes incluses).
// Une date nulle (zero value) n'appartient jamais à une période.
func (dr DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	day := TruncateDay(t)
	return !day.Before(dr.start) && !day.After(dr.end)
}

// String retourne la période au format "YYYY-MM-DD..YYYY-MM-DD"
func (dr DateRange) String() string {
	return dr.start.Format(DateLayout) + ".." + dr.end.Format(DateLayout)
}

// TruncateDay supprime l'heure d'une date et la ramène en UTC
// (on garde le jour calendaire tel qu'il est lu dans le fuseau d'origine)
func TruncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
