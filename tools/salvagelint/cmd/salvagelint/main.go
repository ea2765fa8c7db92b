package main

import (
	"github.com/deepankarm/jsonsalvage/tools/salvagelint"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(salvagelint.Analyzer)
}
