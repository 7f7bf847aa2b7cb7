package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/airenas/transcript-fetcher/internal/service"
	"github.com/airenas/transcript-fetcher/internal/transcript"
	"github.com/labstack/gommon/color"
)

func main() {
	goapp.StartWithDefault()

	printBanner()

	cfg := goapp.Config
	cfg.SetDefault("port", 8000)
	cfg.SetDefault("upstream.url", "https://www.youtube.com/watch?v=")
	cfg.SetDefault("upstream.timeout", 0)
	cfg.SetDefault("cors.origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})

	data := &service.Data{}
	data.Port = cfg.GetInt("port")
	data.CORSOrigins = cfg.GetStringSlice("cors.origins")

	client, err := transcript.NewClient(cfg.GetString("upstream.url"), cfg.GetDuration("upstream.timeout"))
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init upstream client")
	}
	data.Transcriber, err = transcript.NewProvider(client)
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init transcript provider")
	}

	doneCh, err := service.StartWebServer(data)
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't start web server")
	}

	/////////////////////// Waiting for terminate
	waitCh := make(chan os.Signal, 2)
	signal.Notify(waitCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-waitCh:
		goapp.Log.Info().Msg("Got exit signal")
	case <-doneCh:
		goapp.Log.Info().Msg("Service exit")
	}
	select {
	case <-doneCh:
		goapp.Log.Info().Msg("All code returned. Now exit. Bye")
	case <-time.After(time.Second * 15):
		goapp.Log.Warn().Msg("Timeout gracefull shutdown")
	}
}

var (
	version = "DEV"
)

func printBanner() {
	banner :=
		`
    TRANSCRIPT FETCHER v: %s

%s
________________________________________________________

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("https://github.com/airenas/transcript-fetcher"))
}
