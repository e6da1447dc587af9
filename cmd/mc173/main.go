// Command mc173 runs the simulation core as a stand-alone process. The
// byte-level wire codec attaches through server.Listen or server.AddConn;
// this entrypoint validates the flags, reserves the bind address and drives
// the tick loop until interrupted.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/mc173/mc173/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		module    = flag.String("module", "", "name of the world module to serve (required)")
		serverURI = flag.String("server", "", "URI of the state server to publish to (required)")
		bind      = flag.String("bind", "", "TCP bind address, defaults to the config value")
		confPath  = flag.String("config", "config.toml", "path of the server configuration file")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	if *module == "" || *serverURI == "" {
		fmt.Fprintln(os.Stderr, "both --module and --server are required")
		flag.Usage()
		return 2
	}

	uc, err := server.ReadUserConfig(*confPath)
	if err != nil {
		log.Error("loading configuration failed", "error", err)
		return 1
	}
	uc.Server.Name = *module
	if *bind != "" {
		uc.Server.BindAddress = *bind
	}

	conf, err := uc.Config(log)
	if err != nil {
		log.Error("building configuration failed", "error", err)
		return 1
	}

	// Reserve the bind address up front so a taken port is a startup error,
	// not a runtime surprise once the codec attaches.
	ln, err := net.Listen("tcp", conf.BindAddress)
	if err != nil {
		log.Error("binding failed", "address", conf.BindAddress, "error", err)
		return 1
	}
	defer ln.Close()

	srv := server.New(conf)
	log.Info("module loaded", "module", *module, "state_server", *serverURI)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Info("shutting down")
		srv.Stop()
	}()

	srv.Run()
	return 0
}
