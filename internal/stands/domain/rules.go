package domain

import (
	"fmt"
	"strings"
)

// Valeurs par défaut des règles de nettoyage des stands
const (
	DefaultTitleException = "PACÍFICO"
	DefaultStoreAlias     = "JUNCAL=ALTOPALERMO"
)

// CleaningRules regroupe les décisions métier appliquées aux ventes des stands
type CleaningRules struct {
	titleExceptions map[string]struct{}
	storeAliases    map[string]string
}

// NewCleaningRules crée les règles à partir des tiendas exclues du découpage
// du titre et des alias de tiendas (alias → tienda canonique)
func NewCleaningRules(titleExceptions []string, storeAliases map[string]string) CleaningRules {
	rules := CleaningRules{
		titleExceptions: make(map[string]struct{}, len(titleExceptions)),
		storeAliases:    make(map[string]string, len(storeAliases)),
	}
	for _, store := range titleExceptions {
		if store = strings.TrimSpace(store); store != "" {
			rules.titleExceptions[store] = struct{}{}
		}
	}
	for from, to := range storeAliases {
		rules.storeAliases[strings.TrimSpace(from)] = strings.TrimSpace(to)
	}
	return rules
}

// DefaultCleaningRules retourne les règles historiques: PACÍFICO garde ses titres,
// JUNCAL est comptée avec ALTOPALERMO
func DefaultCleaningRules() CleaningRules {
	aliases, _ := ParseStoreAliases(DefaultStoreAlias)
	return NewCleaningRules([]string{DefaultTitleException}, aliases)
}

// CleanTitle retire le premier mot (code de catégorie) du titre, sauf pour les
// tiendas en exception. Un titre d'un seul mot est conservé tel quel.
func (r CleaningRules) CleanTitle(rawStore, title string) string {
	if _, skip := r.titleExceptions[rawStore]; skip {
		return title
	}
	_, rest, found := strings.Cut(title, " ")
	if !found {
		return title
	}
	return rest
}

// CanonicalStore applique les alias de tiendas
func (r CleaningRules) CanonicalStore(rawStore string) string {
	if to, ok := r.storeAliases[rawStore]; ok {
		return to
	}
	return rawStore
}

// ParseStoreAliases lit une liste "A=B,C=D"
func ParseStoreAliases(value string) (map[string]string, error) {
	aliases := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		from, to, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return nil, fmt.Errorf("invalid store alias %q (expected FROM=TO)", pair)
		}
		aliases[strings.TrimSpace(from)] = strings.TrimSpace(to)
	}
	return aliases, nil
}
