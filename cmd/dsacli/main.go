// Command dsacli generates DSA key pairs, signs files and verifies file
// signatures.
//
//	dsacli keygen -s 2048 -p alice
//	dsacli sign   -i report.pdf -p alice-2048bits.public -s alice-2048bits.private
//	dsacli verify -i report.pdf -p alice-2048bits.public -s report_DigitalSignature_<ts>.sgn
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
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERR:", err.Error())
		os.Exit(1)
	}
}
