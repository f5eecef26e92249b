package rest

import (
	"context"
	"listings-service/internal/configs"
	core_port "listings-service/internal/core/port"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(cfg configs.RESTconfig,
	apartments_handlers *ApartmentsHandler,
	uploadsDir string,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
	}))
	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Route("/"+cfg.Prefix+"/v1", func(r chi.Router) {
		r.Post("/apartments", apartments_handlers.Create)
		r.Get("/apartments", apartments_handlers.FindApartments)
		r.Get("/apartments/{apartmentID}", apartments_handlers.GetApartmentByID)
	})

	// Раздача загруженных изображений по сгенерированному имени файла
	fileServer := http.FileServer(http.Dir(uploadsDir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.PORT,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
