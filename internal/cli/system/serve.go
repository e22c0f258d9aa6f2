package system

import (
	"github.com/gin-gonic/gin"

	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address (default: server.addr from config)."`
}

func (cmd *ServeCmd) Run(ctx *cli.Context) error {
	addr := cmd.Addr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}
	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(ctx.Service, ctx.Metrics)
	ctx.Printf("Serving lumen API on http://%s (Ctrl+C to stop)\n", addr)
	return server.Run(ctx.Ctx(), addr, router)
}
