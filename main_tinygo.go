//go:build tinygo

package main

import (
	"context"

	"pongos/app"
	"pongos/hal"
)

func main() {
	h, err := hal.New(hal.Options{})
	if err != nil {
		println("pongos:", err.Error())
		select {}
	}
	if err := app.Run(context.Background(), h, app.DefaultConfig()); err != nil {
		println("pongos:", err.Error())
	}
	select {}
}
