package main

import (
	"github.com/samber/lo"
	"github.com/tevify/tevify/cmd"
	"github.com/tevify/tevify/config"
	"github.com/tevify/tevify/internal/cache"
	"github.com/tevify/tevify/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
