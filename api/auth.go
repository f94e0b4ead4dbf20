package api

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrAccessDenied est retournée quand le code d'accès ne correspond pas
var ErrAccessDenied = errors.New("access denied")

// Cookie de session émis après validation du code d'accès
const (
	SessionCookie = "session"
	SessionTTL    = 12 * time.Hour
	sessionIssuer = "salesboard"
)

// AccessGate protège le tableau de bord par un code d'accès partagé.
// Le code n'est conservé que sous forme de hash bcrypt; une session validée
// est un JWT HS256 signé avec le secret de session.
type AccessGate struct {
	hash   []byte
	secret []byte
	now    func() time.Time
}

// NewAccessGate crée la barrière d'accès. hash (bcrypt) est prioritaire sur code;
// un secret vide est remplacé par un secret aléatoire (sessions perdues au redémarrage).
func NewAccessGate(code, hash, secret string) (*AccessGate, error) {
	gate := &AccessGate{now: time.Now}

	switch {
	case hash != "":
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid access code hash: %w", err)
		}
		gate.hash = []byte(hash)
	case code != "":
		hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash access code: %w", err)
		}
		gate.hash = hashed
	default:
		return nil, errors.New("no access code configured")
	}

	if secret != "" {
		gate.secret = []byte(secret)
	} else {
		gate.secret = make([]byte, 32)
		if _, err := rand.Read(gate.secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}
	return gate, nil
}

// Check compare le code saisi au hash configuré
func (g *AccessGate) Check(code string) error {
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(code)); err != nil {
		return ErrAccessDenied
	}
	return nil
}

// IssueToken signe un jeton de session valable SessionTTL
func (g *AccessGate) IssueToken() (string, error) {
	now := g.now()
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify valide un jeton de session
func (g *AccessGate) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}
	if !token.Valid {
		return ErrAccessDenied
	}
	return nil
}

// Authenticated indique si la requête porte un cookie de session valide
func (g *AccessGate) Authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return false
	}
	return g.Verify(cookie.Value) == nil
}

func (g *AccessGate) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  g.now().Add(SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
