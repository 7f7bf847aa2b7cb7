package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/facebookgo/grace/gracehttp"
	"github.com/oklog/ulid/v2"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/airenas/transcript-fetcher/internal/api"
	"github.com/airenas/transcript-fetcher/internal/domain"
	"github.com/airenas/transcript-fetcher/internal/utils"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const noTranscriptMsg = "No transcript available for this video."

// TranscriptProvider returns transcript text for a video
type TranscriptProvider interface {
	Get(ctx context.Context, videoID string) (string, error)
}

// Data keeps data required for service work
type Data struct {
	Port        int
	Transcriber TranscriptProvider
	CORSOrigins []string
}

// StartWebServer starts echo web service
func StartWebServer(data *Data) (<-chan struct{}, error) {
	goapp.Log.Info().Msgf("Starting transcript service at %d", data.Port)
	if err := validate(data); err != nil {
		return nil, err
	}

	portStr := strconv.Itoa(data.Port)

	e := initRoutes(data)

	e.Server.Addr = ":" + portStr
	e.Server.ReadHeaderTimeout = 5 * time.Second
	e.Server.ReadTimeout = 10 * time.Second
	// upstream calls may run without a deadline

	gracehttp.SetLogger(log.New(goapp.Log, "", 0))

	res := make(chan struct{}, 1)
	go func() {
		defer close(res)
		if err := gracehttp.Serve(e.Server); err != nil {
			goapp.Log.Error().Err(err).Msg("can't start web server")
		}
		goapp.Log.Info().Msg("exit http routine")
	}()
	return res, nil
}

var promMdlw *prometheus.Prometheus

func init() {
	promMdlw = prometheus.NewPrometheus("transcript", nil)
}

func initRoutes(data *Data) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: newID}))
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: data.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete, http.MethodOptions, http.MethodConnect, http.MethodTrace},
		AllowCredentials: true,
	}))
	promMdlw.Use(e)

	e.GET("/live", live(data))
	e.POST("/api/transcript", getTranscript(data))

	goapp.Log.Info().Msg("Routes:")
	for _, r := range e.Routes() {
		goapp.Log.Info().Msgf("  %s %s", r.Method, r.Path)
	}
	return e
}

func live(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, []byte(`{"service":"OK"}`))
	}
}

func getTranscript(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		ctx, rd := utils.WithRequestData(c.Request().Context(), c.Response().Header().Get(echo.HeaderXRequestID))

		var input api.TranscriptRequest
		if err := json.NewDecoder(c.Request().Body).Decode(&input); err != nil {
			goapp.Log.Warn().Str("id", rd.ID).Err(err).Msg("can't decode request")
			return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf("can't decode request: %v", err))
		}
		if input.VideoID == nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "field videoId is required")
		}
		goapp.Log.Info().Str("id", rd.ID).Str("videoId", *input.VideoID).Msg("Received")

		res, err := data.Transcriber.Get(ctx, *input.VideoID)
		if err != nil {
			goapp.Log.Error().Str("id", rd.ID).Err(err).Msg("can't get transcript")
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, api.TranscriptResponse{Transcript: res})
	}
}

func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrNoTranscript):
		return echo.NewHTTPError(http.StatusNotFound, noTranscriptMsg).SetInternal(err)
	case errors.Is(err, domain.ErrBadDocument):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error()).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
}

// errorHandler renders errors as {"detail": "..."}
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := http.StatusInternalServerError, err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprintf("%v", he.Message)
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, api.ErrorResponse{Detail: msg})
	}
	if err != nil {
		goapp.Log.Error().Err(err).Msg("can't write error")
	}
}

func newID() string {
	return ulid.Make().String()
}

func validate(data *Data) error {
	if data.Transcriber == nil {
		return fmt.Errorf("no Transcriber")
	}
	if len(data.CORSOrigins) == 0 {
		return fmt.Errorf("no CORSOrigins")
	}
	return nil
}
