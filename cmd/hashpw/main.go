// Command hashpw prints a bcrypt hash for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpw 's3cret'
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sangkips/shopdash-api/pkg/utils"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) != 2 || os.Args[1] == "" {
		logger.Error("usage: hashpw <password>")
		os.Exit(2)
	}

	hash, err := utils.HashPassword(os.Args[1])
	if err != nil {
		logger.Error("hashpw.failed", "error", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
