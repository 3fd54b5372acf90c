package logger

import (
	"github.com/andreprog02/saas-sst/internal/config"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with tenant-aware helpers
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a new structured logger instance
func NewLogger(cfg *config.Config) *Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &Logger{Logger: log}
}

// WithTenant adds tenant context to log entries
func (l *Logger) WithTenant(tenantID string) *logrus.Entry {
	return l.WithField("tenant_id", tenantID)
}

// WithEmployee adds employee context to log entries
func (l *Logger) WithEmployee(tenantID, employeeID string) *logrus.Entry {
	return l.WithFields(logrus.Fields{
		"tenant_id":   tenantID,
		"employee_id": employeeID,
	})
}

// WithAsset adds asset context to log entries
func (l *Logger) WithAsset(tenantID, assetType, assetID string) *logrus.Entry {
	return l.WithFields(logrus.Fields{
		"tenant_id":  tenantID,
		"asset_type": assetType,
		"asset_id":   assetID,
	})
}

// WithRequest adds request context to log entries
func (l *Logger) WithRequest(requestID string) *logrus.Entry {
	return l.WithField("request_id", requestID)
}
