package logger

import (
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ILogger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Warning(msg string, fields ...Field)
	With(fields ...Field) ILogger
	Sync() error
}

type logger struct {
	zap *zap.Logger
}

func (l logger) Debug(msg string, fields ...Field) {
	l.zap.Debug(msg, fields...)
}

func (l logger) Info(msg string, fields ...Field) {
	l.zap.Info(msg, fields...)
}

func (l logger) Error(msg string, fields ...Field) {
	l.zap.Error(msg, fields...)
}

func (l logger) Warning(msg string, fields ...Field) {
	l.zap.Warn(msg, fields...)
}

func (l logger) With(fields ...Field) ILogger {
	return logger{zap: l.zap.With(fields...)}
}

func (l logger) Sync() error {
	return l.zap.Sync()
}

type options struct {
	level   string
	logFile string
}

type Option func(*options)

// WithLevel accepts zap level names: debug, info, warn, error.
func WithLevel(level string) Option {
	return func(o *options) { o.level = level }
}

// WithFile mirrors every entry into a daily rotated JSON file next to path.
func WithFile(path string) Option {
	return func(o *options) { o.logFile = path }
}

func New(namespace string, opts ...Option) ILogger {
	o := options{level: "debug"}
	for _, opt := range opts {
		opt(&o)
	}
	return logger{
		zap: newZapLogger(namespace, o),
	}
}

// NewNop discards everything; used by tests.
func NewNop() ILogger {
	return logger{zap: zap.NewNop()}
}

func newZapLogger(namespace string, o options) *zap.Logger {
	level, err := zapcore.ParseLevel(o.level)
	if err != nil {
		level = zapcore.DebugLevel
	}

	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		level,
	)
	cores := []zapcore.Core{console}

	if o.logFile != "" {
		writer, err := rotatelogs.New(
			o.logFile+".%Y%m%d",
			rotatelogs.WithLinkName(o.logFile),
			rotatelogs.WithMaxAge(7*24*time.Hour),
			rotatelogs.WithRotationTime(24*time.Hour),
		)
		if err != nil {
			panic(err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(writer),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).
		With(zap.String("namespace", namespace))
}
