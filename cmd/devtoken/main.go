// Command devtoken mints an access token for local testing.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cmlabs-hris/worklog-backend-go/internal/config"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/jwt"
)

func main() {
	employeeID := flag.String("employee", "", "employee id to put in the token")
	roleFlag := flag.String("role", string(user.RoleEmployee), "admin, staff or employee")
	flag.Parse()

	if *employeeID == "" {
		fmt.Fprintln(os.Stderr, "devtoken: -employee is required")
		os.Exit(2)
	}
	role, err := user.ParseRole(*roleFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}

	svc, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}

	token, expiresAt, err := svc.GenerateAccessToken(*employeeID, role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at unix %d\n", expiresAt)
}
