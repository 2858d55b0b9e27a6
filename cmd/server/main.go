package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"github.com/inamate/sketchboard/internal/asset"
	"github.com/inamate/sketchboard/internal/auth"
	"github.com/inamate/sketchboard/internal/board"
	"github.com/inamate/sketchboard/internal/config"
	"github.com/inamate/sketchboard/internal/discovery"
	mw "github.com/inamate/sketchboard/internal/middleware"
	"github.com/inamate/sketchboard/internal/session"
	"github.com/inamate/sketchboard/internal/state"
	"github.com/inamate/sketchboard/internal/store"
	"github.com/inamate/sketchboard/internal/typeid"
)

func main() {
	issueToken := flag.String("issue-token", "", "print a bearer token for `subject` and exit")
	hashPassphrase := flag.String("hash-passphrase", "", "print the bcrypt hash of `passphrase` for AUTH_PASSPHRASE_HASH and exit")
	browse := flag.Duration("browse", 0, "list sketchboard hosts on the LAN for `duration` and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	authService := auth.NewService(cfg.AuthSecret, cfg.PassphraseHash)

	switch {
	case *hashPassphrase != "":
		hash, err := auth.HashPassphrase(*hashPassphrase)
		if err != nil {
			slog.Error("hash passphrase", "error", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	case *issueToken != "":
		if !cfg.AuthEnabled() {
			slog.Error("AUTH_SECRET is not set")
			os.Exit(1)
		}
		token, err := authService.IssueToken(*issueToken)
		if err != nil {
			slog.Error("issue token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	case *browse > 0:
		ctx, cancel := context.WithTimeout(context.Background(), *browse+time.Second)
		defer cancel()
		err := discovery.Browse(ctx, *browse, func(p discovery.Peer) {
			fmt.Printf("%s\t%s\n", p.Addr, p.Name)
		})
		if err != nil {
			slog.Error("browse", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := store.Open(ctx, store.Options{
		Driver:      cfg.StoreDriver,
		DataDir:     cfg.DataDir,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		slog.Error("open store", "error", err, "driver", cfg.StoreDriver)
		os.Exit(1)
	}
	defer backend.Close()

	hub := session.NewHub(func(boardID string) state.Persister {
		return store.NewShapeStore(backend, store.Key(cfg.StorageKey, boardID))
	})
	go hub.Run()

	boardHandler := board.NewHandler(board.NewService(backend, cfg.StorageKey, hub))
	authHandler := auth.NewHandler(authService)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mux.MiddlewareFunc(mw.CORS(cfg.OriginPatterns()...)))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	if cfg.AuthEnabled() {
		r.HandleFunc("/auth/token", authHandler.Token).Methods("POST")
	}

	api := r.PathPrefix("/api").Subrouter()
	if cfg.AuthEnabled() {
		api.Use(authService.AuthMiddleware)
	}
	boardHandler.Register(api)

	// Browser client, when a bundle has been built into WEB_DIR
	if web := asset.NewHandler(cfg.WebDir); web.Available() {
		r.PathPrefix("/app/").Handler(web.Serve("/app/")).Methods("GET")
	}

	acceptOpts := &websocket.AcceptOptions{OriginPatterns: cfg.OriginPatterns()}
	r.HandleFunc("/ws/board/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		boardID := mux.Vars(r)["boardId"]
		if err := typeid.Validate(boardID, typeid.PrefixBoard); err != nil {
			http.Error(w, "unknown board", http.StatusNotFound)
			return
		}
		if cfg.AuthEnabled() {
			if _, err := authService.QueryToken(r); err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
		}
		hub.ServeBoard(w, r, boardID, acceptOpts)
	})

	if cfg.MDNSEnabled {
		adv, err := discovery.Advertise(cfg.Port)
		if err != nil {
			slog.Warn("mdns advertise failed", "error", err)
		} else {
			defer adv.Shutdown()
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "store", cfg.StoreDriver, "auth", cfg.AuthEnabled())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
