package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"

	"jsexpr/funcs"
	"jsexpr/rules"
)

func main() {
	set, err := rules.LoadDir("ruleset")

	if err != nil {
		log.Fatalf("Error loading rules: %v", err)
	}

	g := gin.Default()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	registry := funcs.Defaults()
	registry["http_get"] = funcs.NewHTTPGet(resty.New().SetTimeout(10 * time.Second))

	rules.Mount(g, set, registry, logger)

	err = g.Run(":8080")

	if err != nil {
		log.Fatalf("Error running server: %v", err)
	}
}
