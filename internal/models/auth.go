package models

import "github.com/golang-jwt/jwt/v4"

// JwtCustomClaims carries the claims of internal service tokens accepted as
// an alternative to Firebase ID tokens on the admin API.
type JwtCustomClaims struct {
	UID  string `json:"uid"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}
