package system

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/habitboard/internal/cli"
	"github.com/julianstephens/habitboard/internal/server"
)

type ServeCmd struct {
	Port string `help:"Port to listen on (default: SERVER_PORT or 8000)." default:""`
	CORS string `help:"Allowed CORS origins (default: CORS_ORIGINS or *)." name:"cors" default:""`
}

func (c *ServeCmd) options(ctx *cli.Context) server.Options {
	opts := server.Options{Port: c.Port, CORSOrigins: c.CORS}
	if opts.Port == "" {
		opts.Port = ctx.Config.ServerPort
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = ctx.Config.CORSOrigins
	}
	return opts
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Service.EnsureDefaultUser(ctx.Ctx()); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	sigCtx, stop := signal.NotifyContext(ctx.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := c.options(ctx)
	srv := server.New(ctx.Service, opts)
	fmt.Printf("Serving API on http://localhost:%s (Ctrl+C to stop)\n", opts.Port)
	return srv.Listen(sigCtx)
}
