package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roivaz/docchunk/internal/config"
	"github.com/roivaz/docchunk/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:   "mcp-server",
		Short: "docchunk MCP server",
		RunE:  run,
	}

	root.PersistentFlags().Int("chunk-size", 1024, "Default chunk size budget in bytes")
	root.PersistentFlags().Float64("overlap-ratio", 0.1, "Default overlap ratio")
	root.PersistentFlags().Int("port", 8000, "HTTP port")
	root.PersistentFlags().String("host", "0.0.0.0", "HTTP host")

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	srv := mcp.New(mcp.DefaultConfig())

	host := config.ServerHost()
	port := config.ServerPort()
	if cmd.Flags().Changed("host") {
		host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	addr := host + ":" + strconv.Itoa(port)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("MCP server listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
