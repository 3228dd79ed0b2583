// Command devtoken prints a bearer token for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Natili254/Eveflow/internal/config"
	"github.com/Natili254/Eveflow/internal/domain"
	transporthttp "github.com/Natili254/Eveflow/internal/transport/http"
)

func main() {
	id := flag.Int64("id", 0, "user id placed in the sub claim")
	role := flag.String("role", string(domain.RoleVendor), "role claim (vendor or admin)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if *id <= 0 {
		logger.Fatal("-id must be a positive user id")
	}

	cfg, err := config.Load(logger)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	token, err := transporthttp.NewAuthenticator(cfg.JWTSecret).Sign(domain.Actor{ID: *id, Role: domain.Role(*role)}, *ttl)
	if err != nil {
		logger.WithError(err).Fatal("sign token")
	}
	fmt.Println(token)
}
