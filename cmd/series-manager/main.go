package main

import (
	"net/http"

	"github.com/kartseries/series-manager"

	"github.com/sirupsen/logrus"
)

func main() {
	seriesmanager.InitLogging()

	config, err := seriesmanager.ReadConfig("config.yml")

	if err != nil {
		logrus.Fatalf("could not open config file, err: %s", err)
	}

	store, err := config.Store.BuildStore()

	if err != nil {
		logrus.Fatalf("could not open store, err: %s", err)
	}

	if config.Monitoring.Enabled {
		seriesmanager.InitMonitoring(config.Monitoring.DSN)
	}

	resolver := seriesmanager.NewResolver(store)

	logrus.Infof("starting series manager on: %s", config.HTTP.Hostname)
	logrus.Fatal(http.ListenAndServe(config.HTTP.Hostname, resolver.ResolveRouter()))
}
