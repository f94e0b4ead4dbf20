package infrastructure

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// InMemoryCache est un cache clé/valeur en mémoire, sans expiration:
// les entrées vivent jusqu'à DeletePrefix ou Clear.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

// NewInMemoryCache crée un nouveau cache en mémoire
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		entries: make(map[string]interface{}),
	}
}

// Get récupère une valeur du cache
func (c *InMemoryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.entries[key]
	return value, exists
}

// Set ajoute ou met à jour une valeur
func (c *InMemoryCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
}

// DeletePrefix supprime toutes les entrées dont la clé commence par prefix
func (c *InMemoryCache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear vide complètement le cache
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]interface{})
}

// Len retourne le nombre d'entrées
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CacheKeyBuilder aide à construire des clés de cache cohérentes
type CacheKeyBuilder struct {
	parts []string
}

// NewCacheKeyBuilder crée un nouveau builder de clé
func NewCacheKeyBuilder() *CacheKeyBuilder {
	return &CacheKeyBuilder{
		parts: make([]string, 0, 4),
	}
}

// Add ajoute une partie à la clé
func (b *CacheKeyBuilder) Add(part string) *CacheKeyBuilder {
	b.parts = append(b.parts, part)
	return b
}

// AddInt ajoute un entier à la clé
func (b *CacheKeyBuilder) AddInt(value int64) *CacheKeyBuilder {
	b.parts = append(b.parts, strconv.FormatInt(value, 10))
	return b
}

// Build construit la clé finale
func (b *CacheKeyBuilder) Build() string {
	return strings.Join(b.parts, ":")
}

// FileSignature identifie une version d'un fichier source:
// chemin + date de modification + taille
type FileSignature struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// StatFile calcule la signature d'un fichier; un fichier absent retourne ErrSourceNotFound
func StatFile(path string) (FileSignature, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileSignature{}, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return FileSignature{}, err
	}
	return FileSignature{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

// CacheKey construit la clé de cache "<namespace>:<path>:<mtime>:<size>"
func (s FileSignature) CacheKey(namespace string) string {
	return NewCacheKeyBuilder().
		Add(namespace).
		Add(s.Path).
		AddInt(s.ModTime.UnixNano()).
		AddInt(s.Size).
		Build()
}

// CachePrefix retourne le préfixe commun à toutes les versions d'un fichier
func CachePrefix(namespace, path string) string {
	return NewCacheKeyBuilder().Add(namespace).Add(path).Build() + ":"
}
