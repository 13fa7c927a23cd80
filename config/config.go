package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultPort is the port the HTTP server listens on unless told otherwise.
const DefaultPort = "2242"

// HTTP server settings.
const (
	ServerReadTimeout       = 30 * time.Second
	ServerReadHeaderTimeout = 3 * time.Second
	ServerResponseTimeout   = 5 * time.Second
	ShutdownTimeout         = 10 * time.Second

	// MaxRequestSize is the largest accepted request body.
	MaxRequestSize = humanize.MiByte
)

// MaxScriptOps caps the number of operations a single script may run.
const MaxScriptOps = 1000

// MongoDB settings.
const (
	OperationTimeout  = 10 * time.Second
	PingTimeout       = 5 * time.Second
	DisconnectTimeout = 5 * time.Second

	// DatabaseName is the database holding stored lists.
	DatabaseName = "functils"
	// ListsCollection holds one document per named list.
	ListsCollection = "lists"

	// MongoLogComponent and MongoLogLevel select the driver messages logged
	// when driver logging is on.
	MongoLogComponent = options.LogComponentCommand
	MongoLogLevel     = options.LogLevelDebug
)

// Port returns the port from FUNCTILS_PORT, or DefaultPort.
func Port() string {
	if p := os.Getenv("FUNCTILS_PORT"); p != "" {
		return p
	}

	return DefaultPort
}

// MongoURI returns the connection string from FUNCTILS_MONGODB_URI.
// An empty value means lists are kept in memory.
func MongoURI() string {
	return os.Getenv("FUNCTILS_MONGODB_URI")
}

// MongoLog reports whether FUNCTILS_MONGODB_LOG turns on MongoDB driver logging.
func MongoLog() bool {
	on, _ := strconv.ParseBool(os.Getenv("FUNCTILS_MONGODB_LOG"))

	return on
}
