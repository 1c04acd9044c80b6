package app

import (
	"log"
	"os"
	"strings"
)

func newLogger(appName string) *log.Logger {
	prefix := strings.TrimSpace(appName)
	if prefix != "" {
		prefix += " "
	}
	return log.New(os.Stdout, prefix, log.LstdFlags|log.Lmicroseconds)
}
