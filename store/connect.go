package store

import (
	"context"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readconcern"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"

	"github.com/functils/functils/config"
	"github.com/functils/functils/errors"
	"github.com/functils/functils/log"
	"github.com/functils/functils/util"
)

// ConnectOptions adjust how Connect talks to MongoDB.
type ConnectOptions struct {
	// DriverLog sends driver command logs to the logger in the Connect context.
	DriverLog bool
}

// Connect establishes a connection to the MongoDB deployment at uri and pings it.
func Connect(ctx context.Context, uri string, copts ConnectOptions) (*mongo.Client, error) {
	opts, err := clientOptions(ctx, uri, copts)
	if err != nil {
		return nil, err
	}

	conn, err := mongo.Connect(opts)
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}

	err = util.CtxWithTimeout(ctx, config.PingTimeout, func(ctx context.Context) error {
		return conn.Ping(ctx, nil)
	})
	if err != nil {
		err1 := util.CtxWithTimeout(ctx, config.DisconnectTimeout, conn.Disconnect)
		if err1 != nil {
			log.Ctx(ctx).Warn("Disconnect: " + err1.Error())
		}

		return nil, errors.Wrap(err, "ping")
	}

	return conn, nil
}

// clientOptions validates uri and builds the driver options for the list store.
// Lists are read and written with majority concerns on the primary.
func clientOptions(ctx context.Context, uri string, copts ConnectOptions) (*options.ClientOptions, error) {
	if uri == "" {
		return nil, errors.New("invalid MongoDB URI")
	}

	_, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, errors.Wrap(err, "parse and validate MongoDB URI")
	}

	sanitizedURI, dropped, err := sanitizeMongoURI(uri)
	if err != nil {
		return nil, errors.Wrap(err, "sanitize MongoDB URI")
	}

	for _, key := range dropped {
		log.Ctx(ctx).Warnf("Ignoring connection string option %q", key)
	}

	opts := options.Client().ApplyURI(sanitizedURI).
		SetAppName("functils").
		SetReadPreference(readpref.Primary()).
		SetReadConcern(readconcern.Majority()).
		SetWriteConcern(writeconcern.Majority()).
		SetTimeout(config.OperationTimeout)

	if copts.DriverLog {
		opts = opts.SetLoggerOptions(options.Logger().
			SetSink(log.MongoLogger(ctx)).
			SetComponentLevel(config.MongoLogComponent, config.MongoLogLevel))
	}

	return opts, nil
}

// sanitizeMongoURI keeps only the connection string options listed in storeConnOptions.
// It returns the cleaned URI and the unescaped keys it dropped.
func sanitizeMongoURI(uri string) (string, []string, error) {
	base, query, ok := strings.Cut(uri, "?")
	if !ok {
		return uri, nil, nil
	}

	var kept, dropped []string

	for pair := range strings.FieldsFuncSeq(query, func(r rune) bool { return r == '&' || r == ';' }) {
		key, _, _ := strings.Cut(pair, "=")

		k, err := url.QueryUnescape(key)
		if err != nil {
			return "", nil, errors.Wrapf(err, "invalid option key %q", key)
		}

		if _, ok := storeConnOptions[strings.ToLower(k)]; !ok {
			dropped = append(dropped, k)

			continue
		}

		kept = append(kept, pair)
	}

	if len(kept) == 0 {
		return base, dropped, nil
	}

	return base + "?" + strings.Join(kept, "&"), dropped, nil
}

// storeConnOptions are the lowercase connection string options the list store honors:
// deployment discovery, authentication and TLS material. Concerns, pool sizes and
// timeouts are set by clientOptions.
//
//nolint:gochecknoglobals
var storeConnOptions = map[string]struct{}{
	"replicaset":       {},
	"directconnection": {},

	"authsource":              {},
	"authmechanism":           {},
	"authmechanismproperties": {},

	"tls":                           {},
	"tlscafile":                     {},
	"tlscertificatekeyfile":         {},
	"tlscertificatekeyfilepassword": {},
}
