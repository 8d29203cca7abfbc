// Package auth issues and verifies the HS256 bearer tokens used by the API.
package auth

import (
	"fmt"
	"strconv"

	"github.com/dgrijalva/jwt-go"
)

type Claims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

func GenerateToken(userID int64, role, privateKey string) (string, error) {
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Subject: strconv.FormatInt(userID, 10),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(privateKey))
	if err != nil {
		return "", fmt.Errorf("error while signing token: %w", err)
	}

	return signedToken, nil
}

func ParseToken(tokenString, privateKey string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(privateKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	return &claims, nil
}
