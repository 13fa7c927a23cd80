package log

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoLogSink forwards MongoDB driver logs to zerolog.
// Driver info messages are logged at debug level.
type MongoLogSink struct {
	zl *zerolog.Logger
}

var _ options.LogSink = MongoLogSink{}

// MongoLogger returns a sink writing to the logger in ctx, scoped as "mongo".
func MongoLogger(ctx context.Context) MongoLogSink {
	return MongoLogSink{Ctx(ctx).With(Scope("mongo")).Unwrap()}
}

// Info logs a driver message. level is the driver's verbosity, kept as "driverLevel".
func (s MongoLogSink) Info(level int, message string, keysAndValues ...any) {
	s.zl.Debug().Int("driverLevel", level).Fields(keysAndValues).Msg(message)
}

func (s MongoLogSink) Error(err error, message string, keysAndValues ...any) {
	s.zl.Error().Err(err).Fields(keysAndValues).Msg(message)
}
