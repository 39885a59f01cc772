// Package main runs the holectl CLI.
//
// holectl installs, updates, and removes the Pi-hole appliance and keeps its
// ad-list subscriptions in sync with a canonical remote list or an
// operator-supplied file.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	holectlcmd "github.com/louisbranch/holectl/internal/cmd/holectl"
)

func main() {
	cfg, err := holectlcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[HOLECTL] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := holectlcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("%s: %v", cfg.Command, err)
	}
}
