// cmd/faidx/main.go
package main

import (
	"faidx/internal/app"
	"faidx/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
