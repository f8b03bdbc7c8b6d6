package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	stagehttp "github.com/fwojciec/stagenote/http"
	stageslog "github.com/fwojciec/stagenote/slog"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := c.Addr
	if addr == "" {
		addr = deps.Config.Addr
	}

	scraper := stageslog.NewLoggingScraper(deps.Scraper, deps.Logger)

	srv := stagehttp.NewServer(addr, scraper, deps.Performances,
		stagehttp.WithLogger(deps.Logger),
		stagehttp.WithMetrics(stagehttp.NewMetrics()),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-deps.Ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
