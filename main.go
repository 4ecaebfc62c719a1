package main

import (
	"os"

	"github.com/rocketpop/rocketpop-sso/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
