// Command trackgen generates bit-packed dirty tracking accessors for Go
// structs.
//
// Typical use is a go:generate directive in the package that declares the
// records:
//
//	//go:generate go run github.com/andreyvit/trackgen/cmd/trackgen
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, err := newRootCmd()
	if err == nil {
		err = cmd.ExecuteContext(ctx)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "trackgen:", err)
		os.Exit(1)
	}
}
