package main

import (
	"context"
	"time"

	"github.com/niksmo/order-fulfillment/config"
	"github.com/niksmo/order-fulfillment/internal/app"
	"github.com/niksmo/order-fulfillment/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	fulfillmentService := app.New(sigCtx, cfg)

	fulfillmentService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	fulfillmentService.Close(ctx)
}
