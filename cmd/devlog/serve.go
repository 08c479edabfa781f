package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/rupanjan/devlog"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only JSON view of the journal",
	Long: `Serve exposes the journal over HTTP for quick inspection. All endpoints
are read-only; nothing mutates through this surface.

  GET /logs?scope=local|global|all   list logs
  GET /state                         internal service state`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		mux := http.NewServeMux()
		mux.HandleFunc("GET /logs", func(w http.ResponseWriter, r *http.Request) {
			scope := devlog.ParseScope(r.URL.Query().Get("scope"))
			logs, err := service.AllLogs(r.Context(), scope)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, logs)
		})
		mux.HandleFunc("GET /state", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, service.State())
		})

		srv := &http.Server{Addr: serveAddr, Handler: mux}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		fmt.Printf("Serving journal on http://%s\n", serveAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Server failed", err)
		}
	},
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(v)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:3000", "Address to listen on")
}
