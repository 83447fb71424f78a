package middleware

import (
	"fmt"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger plugs logrus into chi's request logging.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&logFormatter{log: log})
}

type logFormatter struct {
	log logrus.FieldLogger
}

func (f *logFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	return &logEntry{
		entry: f.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"request_id":  chimw.GetReqID(r.Context()),
			"remote_addr": r.RemoteAddr,
		}),
	}
}

type logEntry struct {
	entry *logrus.Entry
}

func (e *logEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	e.entry.WithFields(logrus.Fields{
		"status":      status,
		"bytes":       bytes,
		"duration_ms": float64(elapsed.Microseconds()) / 1000,
	}).Info("request completed")
}

func (e *logEntry) Panic(v interface{}, stack []byte) {
	e.entry.WithFields(logrus.Fields{
		"panic": fmt.Sprint(v),
		"stack": string(stack),
	}).Error("request panicked")
}
