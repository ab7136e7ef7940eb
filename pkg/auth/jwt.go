package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"naftwatch.dz/fuel-monitor-service/pkg/common"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

func parseTTL() time.Duration {
	if s := os.Getenv(common.EnvKeyJwtExpiresIn); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return 24 * time.Hour
}

// Sign issues an HS256 token carrying the user's role and affiliation. The
// affiliation claims are what the scope resolver works from, so they are
// fixed for the lifetime of the token.
func Sign(userID string, role models.Role, companyID, stationID *uint) (string, error) {
	key := []byte(os.Getenv(common.EnvKeyJwtSecret))
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(parseTTL()).Unix(),
		"iat":  time.Now().Unix(),
	}
	if companyID != nil {
		claims["company_id"] = float64(*companyID)
	}
	if stationID != nil {
		claims["station_id"] = float64(*stationID)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

func Verify(tokenStr string) (Claims, error) {
	key := []byte(os.Getenv(common.EnvKeyJwtSecret))
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return Claims{}, errors.New("invalid token")
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}
	sub, _ := mapc["sub"].(string)
	role, _ := mapc["role"].(string)
	c := Claims{Subject: sub, Role: models.Role(role)}
	if v, ok := mapc["company_id"].(float64); ok {
		id := uint(v)
		c.CompanyID = &id
	}
	if v, ok := mapc["station_id"].(float64); ok {
		id := uint(v)
		c.StationID = &id
	}
	return c, nil
}
