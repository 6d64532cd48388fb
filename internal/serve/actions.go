package serve

import (
	"os/signal"
	"syscall"

	"github.com/dtnitsch/worksheet-kit/internal/common"
	"github.com/dtnitsch/worksheet-kit/pkg/api"
	"github.com/urfave/cli/v2"
)

func ServeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return api.NewServer(api.Options{Config: cfg, Logger: logger}).ListenAndServe(ctx, c.String("addr"))
}
