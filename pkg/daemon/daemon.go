// Package daemon runs the battreport HTTP API on a unix socket and,
// optionally, a cron-scheduled watcher that re-analyzes a snapshot
// source in the background.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/evdiag/battreport/pkg/config"
	"github.com/evdiag/battreport/pkg/hostprobe"
	"github.com/evdiag/battreport/pkg/simulator"
	"github.com/evdiag/battreport/pkg/types"
)

var conf config.Config

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.POST("/report", generateReport)
	router.GET("/config", getConfig)
	router.GET("/version", getVersion)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// watchSnapshotFunc picks the snapshot source for watch mode.
func watchSnapshotFunc(source string) SnapshotFunc {
	if source == config.WatchSourceHost {
		return hostprobe.Snapshot
	}
	return func() (*types.DiagnosticSnapshot, error) {
		return simulator.Generate(time.Now().UnixNano()), nil
	}
}

func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	router := setupRoutes()

	var err error
	conf, err = config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.Infof("config reloaded")
		}
	}()

	srv := &http.Server{
		Handler: router,
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Periodic background analysis, if configured.
	var watcher *Watcher
	if schedule := conf.WatchSchedule(); schedule != "" {
		watcher = NewWatcher(watchSnapshotFunc(conf.WatchSource()))
		if err := watcher.Schedule(schedule); err != nil {
			logrus.Fatalf("failed to parse watch schedule %q: %v", schedule, err)
		}
		watcher.Start()
		logrus.WithFields(logrus.Fields{
			"schedule": schedule,
			"source":   conf.WatchSource(),
		}).Info("watcher started")
	}

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	if watcher != nil {
		logrus.Info("stopping watcher")
		watcher.Stop()
	}

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}
