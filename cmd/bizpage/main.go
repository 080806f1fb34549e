// Command bizpage はビジネスサイトのコンテンツAPIサーバーを起動する。
//
// サブコマンド: serve（デフォルト）, migrate, seed, healthcheck
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/bizpage/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "bizpage: %v\n", err)
		os.Exit(1)
	}
}
