package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-tiled-pathtracer/pkg/log"
)

var logger = log.New("pathtracer")

// setupLogging applies the config log level, then the -v and -vv flags
func setupLogging(ctx *cli.Context, level string) {
	if level != "" {
		log.SetLevel(log.ParseLevel(level))
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
