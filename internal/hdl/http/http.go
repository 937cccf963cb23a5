package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/vidora/backend/api/rest/v1"
	"github.com/vidora/backend/internal/auth"
	"github.com/vidora/backend/internal/ctrl"
	mid "github.com/vidora/backend/internal/hdl/http/middleware"
	"github.com/vidora/backend/internal/hdl/http/utils"
	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	Router *chi.Mux
	au     auth.Port
	srv    *http.Server
	ctrl   ctrl.AppCtrl
}

func New(au auth.Port, ctrl ctrl.AppCtrl, mode string) *Handler {
	utils.SetMode(mode)
	return &Handler{
		Router: chi.NewRouter(),
		au:     au,
		ctrl:   ctrl,
	}
}

func (h *Handler) Start(port int) {
	h.Router.Use(
		mid.Logger(zap.L()),
		middleware.StripSlashes,
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		mid.Prometheus,
		mid.OT,
	)

	h.RegisterUserRoutes()
	h.Router.Get("/swagger/*", httpSwagger.WrapHandler)
	h.Router.Get("/health", h.healthcheck)
	h.Router.Get("/api/v1/healthcheck", h.healthcheck)

	h.srv = &http.Server{
		Handler:      h.Router,
		Addr:         fmt.Sprintf(":%v", port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info(
		"Starting HTTP server",
		zap.String("addr", h.srv.Addr),
	)

	err := h.srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		zap.L().Error("Server error", zap.Error(err))
	}
}

func (h *Handler) Close(ctx context.Context) error {
	return h.srv.Shutdown(ctx)
}

// healthcheck godoc
//
//	@Summary	Service liveness probe
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	utils.Response
//	@Router		/api/v1/healthcheck [get]
func (h *Handler) healthcheck(w http.ResponseWriter, r *http.Request) {
	utils.SuccessResponse(w, http.StatusOK, "OK", nil)
}
