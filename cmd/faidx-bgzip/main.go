// cmd/faidx-bgzip/main.go
package main

import (
	"faidx/internal/appshell"
	"faidx/internal/bgzipapp"
)

func main() { appshell.Main(bgzipapp.RunContext) }
