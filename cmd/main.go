package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

// @title Emergency Dispatch System API
// @version 1.0
// @description Real-time coordination of field officers and emergency alerts.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
