// Command stylefxd serves one effect manager over websocket. Clients receive
// a style frame per tick on /styles and send trigger messages back on the
// same socket; /health reports the loop state.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phanxgames/stylefx"
	"github.com/phanxgames/stylefx/wsbridge"
)

func main() {
	var (
		configPath = flag.String("config", "effects.yaml", "path to the effects YAML")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		fps        = flag.Int("fps", 60, "style frames per second")
		debug      = flag.Bool("debug", false, "log effect transitions")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := stylefx.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
	}
	if err := cfg.Validate(); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config has problems; continuing")
	}

	m := stylefx.NewManager(cfg, stylefx.WithLogger(log.Logger))
	defer m.Dispose()
	srv := wsbridge.New(m, log.Logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/styles", srv.HandleStyles)
	mux.HandleFunc("/health", srv.HandleHealth)

	httpSrv := &http.Server{
		Addr:        *addr,
		Handler:     withCORS(mux),
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.RunLoop(ctx, *fps); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("style loop stopped")
		}
	}()
	go func() {
		log.Info().Str("addr", *addr).Str("manager", m.ID()).Int("fps", *fps).Msg("HTTP server starting")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	srv.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
