/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gravitycar/api-core/internal/config"
	"github.com/gravitycar/api-core/internal/controllers"
	"github.com/gravitycar/api-core/internal/corelog"
	"github.com/gravitycar/api-core/internal/docs"
	"github.com/gravitycar/api-core/internal/fieldtypes"
	"github.com/gravitycar/api-core/internal/metadata"
	"github.com/gravitycar/api-core/internal/rbac"
	"github.com/gravitycar/api-core/internal/routing"
	"github.com/gravitycar/api-core/internal/storage"
	"github.com/gravitycar/api-core/internal/storage/memstore"
	"github.com/gravitycar/api-core/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPathFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	if err := run(ctx, *cfgPathFlag); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := corelog.New("apiserver")
	models := demoModels()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	gate := rbac.NewGate(models)
	holder, err := buildRegistry(models, store)
	if err != nil {
		return err
	}

	router := routing.NewRouter(holder, models, gate, log, cfg.Errors.ExposeDetailedErrors)
	verifier := rbac.NewStaticVerifier(map[string]rbac.Identity{
		"dev-admin-token": {Subject: "admin", Roles: []string{"admin"}},
		"dev-viewer-token": {Subject: "viewer", Roles: []string{"viewer"}},
	})

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	mux.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Cors.AllowedOrigins,
		AllowedMethods:   cfg.Cors.AllowedMethods,
		AllowedHeaders:   cfg.Cors.AllowedHeaders,
		AllowCredentials: cfg.Cors.AllowCredentials,
	}).Handler)

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "UP"})
	})

	docs.Mount(mux, docs.Info{
		Title:        "api-core",
		Version:      "1.0.0",
		ContactName:  cfg.Swagger.ContactName,
		ContactEmail: cfg.Swagger.ContactEmail,
		ContactURL:   cfg.Swagger.ContactURL,
	}, models, "/swagger", "/api-docs/openapi.json")

	mountDynamicRoutes(mux, holder, router, verifier)

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Info("listening on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, log *corelog.Logger) (storage.Store, error) {
	if cfg.Postgres.Host == "" {
		log.Info("no postgres host configured, using in-memory store")
		return memstore.New(), nil
	}
	conn, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	log.Info("connected to postgres")
	return conn, nil
}

// demoModels declares the two illustrative models every fresh checkout
// exercises end to end: Users (RBAC-gated, Password field excluded from
// every response) and Products (public catalog reads, admin-only writes).
func demoModels() *metadata.Engine {
	users := metadata.Model{
		Name:  "Users",
		Table: "users",
		Fields: []metadata.FieldDescriptor{
			{Name: "id", Type: fieldtypes.ID, IsDBField: true},
			{Name: "email", Type: fieldtypes.Email, IsDBField: true},
			{Name: "password", Type: fieldtypes.Password, IsDBField: true},
			{Name: "display_name", Type: fieldtypes.Text, IsDBField: true},
			{Name: "status", Type: fieldtypes.Enum, IsDBField: true, Options: []string{"active", "suspended"}},
		},
		RolesAndActions: map[string][]string{
			"admin":  {"list", "read", "create", "update", "delete"},
			"viewer": {"list", "read"},
		},
		APIRoutes: withRoles(controllers.DefaultAPIRoutes("Users"), map[string][]string{
			"list":   {"admin", "viewer"},
			"read":   {"admin", "viewer"},
			"create": {"admin"},
			"update": {"admin"},
			"delete": {"admin"},
		}),
	}

	products := metadata.Model{
		Name:  "Products",
		Table: "products",
		Fields: []metadata.FieldDescriptor{
			{Name: "id", Type: fieldtypes.ID, IsDBField: true},
			{Name: "name", Type: fieldtypes.Text, IsDBField: true},
			{Name: "description", Type: fieldtypes.BigText, IsDBField: true},
			{Name: "price", Type: fieldtypes.Float, IsDBField: true},
			{Name: "in_stock", Type: fieldtypes.Boolean, IsDBField: true},
			{Name: "thumbnail", Type: fieldtypes.Image, IsDBField: true},
		},
		RolesAndActions: map[string][]string{
			"admin": {"list", "read", "create", "update", "delete"},
		},
		APIRoutes: withRoles(controllers.DefaultAPIRoutes("Products"), map[string][]string{
			"create": {"admin"},
			"update": {"admin"},
			"delete": {"admin"},
		}),
	}

	return metadata.NewEngine(users, products)
}

// withRoles restricts the named API methods in routes to allowedRoles,
// leaving every other declared route public.
func withRoles(routes []metadata.RouteDeclaration, restricted map[string][]string) []metadata.RouteDeclaration {
	for i, r := range routes {
		if roles, ok := restricted[r.APIMethod]; ok {
			routes[i].AllowedRoles = roles
		}
	}
	return routes
}

func buildRegistry(models *metadata.Engine, store storage.Store) (*routing.Holder, error) {
	builder := routing.NewBuilder()
	for _, name := range models.AvailableModels() {
		model, _ := models.ModelMetadata(name)
		builder = builder.WithModel(model)
		controllers.NewModelController(model, store, "id").BindAll(builder)
	}
	reg, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return routing.NewHolder(reg), nil
}
