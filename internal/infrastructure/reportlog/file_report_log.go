package reportlog

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"
)

// FileReportLog appends one JSON line per legacy submission to
// <dir>/<gateway>-ingresar-pago.log, and failures to
// <dir>/<gateway>-ingresar-pago-error.log.
type FileReportLog struct {
	dir     string
	mu      sync.Mutex
	loggers map[string]*slog.Logger
	files   []io.Closer
}

var _ interfaces.IReportLog = (*FileReportLog)(nil)

func NewFileReportLog(dir string) *FileReportLog {
	return &FileReportLog{dir: dir, loggers: map[string]*slog.Logger{}}
}

func (l *FileReportLog) Success(gateway entities.Gateway, entry entities.ReportLogEntry) {
	logger := l.logger(fmt.Sprintf("%s-ingresar-pago.log", gateway))
	msg := entry.Message
	if msg == "" {
		msg = "IngresarPago submitted"
	}
	logger.Info(msg, entryAttrs(gateway, entry)...)
}

func (l *FileReportLog) Failure(gateway entities.Gateway, entry entities.ReportLogEntry) {
	logger := l.logger(fmt.Sprintf("%s-ingresar-pago-error.log", gateway))
	msg := entry.Message
	if msg == "" {
		msg = "IngresarPago failed"
	}
	logger.Error(msg, entryAttrs(gateway, entry)...)
}

// Close closes every file opened so far.
func (l *FileReportLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var first error
	for _, f := range l.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.files = nil
	l.loggers = map[string]*slog.Logger{}
	return first
}

func (l *FileReportLog) logger(name string) *slog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lg, ok := l.loggers[name]; ok {
		return lg
	}

	var w io.Writer = os.Stderr
	if err := os.MkdirAll(l.dir, 0o775); err != nil {
		log.Printf("[report][log] cannot create dir=%s err=%v", l.dir, err)
	} else if f, err := os.OpenFile(filepath.Join(l.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o664); err != nil {
		log.Printf("[report][log] cannot open file=%s err=%v", name, err)
	} else {
		w = f
		l.files = append(l.files, f)
	}

	lg := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}))
	l.loggers[name] = lg
	return lg
}

func entryAttrs(gateway entities.Gateway, e entities.ReportLogEntry) []any {
	attrs := []any{
		slog.String("gateway", string(gateway)),
		slog.String("token", e.Token),
		slog.String("collector", e.Collector),
	}
	if len(e.Payloads) > 0 {
		attrs = append(attrs, slog.Any("payloads", e.Payloads))
	}
	if len(e.Responses) > 0 {
		attrs = append(attrs, slog.Any("responses", e.Responses))
	}
	if e.Payload != nil {
		attrs = append(attrs, slog.Any("payload", e.Payload))
	}
	if e.TargetEndpoint != "" {
		attrs = append(attrs, slog.String("target_wsdl", e.TargetEndpoint))
	}
	if e.Envelope != "" {
		attrs = append(attrs, slog.String("envelope", e.Envelope))
	}
	if len(e.Transaction) > 0 {
		attrs = append(attrs, slog.Any("transaction", e.Transaction))
	}
	if len(e.GatewayResponse) > 0 {
		attrs = append(attrs, slog.Any("gateway_response", e.GatewayResponse))
	}
	return attrs
}
