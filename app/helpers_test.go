package app_test

import (
	"strconv"

	"github.com/dmitrymomot/accesscore/core/server"
)

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func serverConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	return cfg
}
