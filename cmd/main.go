package main

import "github.com/znsio/specmatic-catalog-admin-go/internal/cli"

func main() {
	cli.Execute()
}
