package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Propósitos de token.
const (
	PurposeSession = "session"
	PurposeReset   = "reset"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Superuser viaja en el token para que el middleware de permisos no consulte la DB en ese caso.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Superuser   bool   `json:"superuser"`
	Purpose     string `json:"purpose"`
	Fingerprint string `json:"fp,omitempty"` // solo en tokens de reset
}

// Generate genera un token de sesión firmado.
func Generate(secret, userID, username string, superuser bool, issuer string, expMinutes int) (string, error) {
	return sign(secret, Claims{
		UserID:    userID,
		Username:  username,
		Superuser: superuser,
		Purpose:   PurposeSession,
	}, issuer, expMinutes)
}

// GenerateReset genera un token de un solo propósito para restablecer contraseña.
// fingerprint debe cambiar cuando cambia la contraseña para invalidar tokens usados.
func GenerateReset(secret, userID, fingerprint, issuer string, expMinutes int) (string, error) {
	return sign(secret, Claims{
		UserID:      userID,
		Purpose:     PurposeReset,
		Fingerprint: fingerprint,
	}, issuer, expMinutes)
}

func sign(secret string, claims Claims, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o no es del propósito indicado.
func Parse(secret, tokenString, purpose string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("propósito de token inválido")
	}
	return claims, nil
}
