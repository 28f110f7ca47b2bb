package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/courtdesk/courtdesk/pkg/application"
	"github.com/courtdesk/courtdesk/pkg/configuration"
	"github.com/courtdesk/courtdesk/pkg/middleware"
)

// HTTPServer assembles the router from every registered controller and the
// shared middleware chain.
type HTTPServer struct {
	log    *logrus.Logger
	server *http.Server
}

func New(conf *configuration.Configuration, app application.Application) *HTTPServer {
	router := mux.NewRouter()
	router.Use(
		middleware.WithPool(app.Pool()),
		middleware.ProvideUser(conf.UserIDHeader),
		middleware.LogRequests(app.Logger()),
	)

	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	for _, controller := range app.Controllers() {
		controller.Register(router)
		app.Logger().WithField("controller", controller.Key()).Debug("registered routes")
	}

	return &HTTPServer{
		log: app.Logger(),
		server: &http.Server{
			Addr:         conf.SocketAddress,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

func (s *HTTPServer) Start() error {
	s.log.WithField("address", s.server.Addr).Info("listening")
	return s.server.ListenAndServe()
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
