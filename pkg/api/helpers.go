package api

import (
	"errors"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidSigningAlgorithm indicates signing algorithm is invalid, needs to be HS256
	ErrInvalidSigningAlgorithm = errors.New("invalid signing algorithm")
)

func GenerateJWT(config *APIConfig, now time.Time, expiry time.Time, optionalClaims jwtgo.MapClaims) (tokenString string, err error) {

	// Create the token
	token := jwtgo.New(jwtgo.SigningMethodHS256)
	claims := token.Claims.(jwtgo.MapClaims)

	// set required claims
	claims["exp"] = expiry.Unix()
	claims["orig_iat"] = now.Unix()

	for key, value := range optionalClaims {
		claims[key] = value
	}

	// sign the token
	return token.SignedString([]byte(config.Auth.JWT.Key))
}

func ValidateJWT(config *APIConfig, tokenString string) (token *jwtgo.Token, err error) {
	return jwtgo.Parse(tokenString, func(t *jwtgo.Token) (interface{}, error) {
		if jwtgo.SigningMethodHS256 != t.Method {
			return nil, ErrInvalidSigningAlgorithm
		}
		return []byte(config.Auth.JWT.Key), nil
	})
}

func GetClaimsFromJWT(config *APIConfig, tokenString string) (claims jwtgo.MapClaims, err error) {
	token, err := ValidateJWT(config, tokenString)
	if err != nil {
		return nil, err
	}

	claims = jwtgo.MapClaims{}
	for key, value := range token.Claims.(jwtgo.MapClaims) {
		claims[key] = value
	}

	return claims, nil
}
