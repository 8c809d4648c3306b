// gentoken mints a development JWT for exercising the API locally:
//
//	go run ./cmd/gentoken -user ana -grupos ventas,administradores -secret dev-secret
package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"gestor/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func main() {
	user := flag.String("user", "dev", "username embedded in the token")
	grupos := flag.String("grupos", "administradores", "comma-separated group list")
	secret := flag.String("secret", "dev-secret", "HMAC signing secret (must match JWT_SECRET)")
	horas := flag.Int("horas", 8, "token lifetime in hours")
	flag.Parse()

	now := time.Now()
	claims := &middleware.JWTClaims{
		UserID:   uuid.NewString(),
		Username: *user,
		Grupos:   strings.Split(*grupos, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(*horas) * time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(*secret))
	if err != nil {
		panic(err)
	}
	fmt.Println(token)
}
