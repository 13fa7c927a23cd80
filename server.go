package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/functils/functils/config"
	"github.com/functils/functils/errors"
	"github.com/functils/functils/log"
	"github.com/functils/functils/metrics"
	"github.com/functils/functils/script"
	"github.com/functils/functils/store"
	"github.com/functils/functils/util"
)

// runServer serves HTTP on port until ctx is done.
// Lists are stored in MongoDB when storeURI is set, in memory otherwise.
func runServer(ctx context.Context, port, storeURI string, copts store.ConnectOptions) error {
	addr, err := buildServerAddr(port)
	if err != nil {
		return errors.Wrap(err, "build server address")
	}

	srv, err := createServer(ctx, storeURI, copts)
	if err != nil {
		return errors.Wrap(err, "new server")
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),

		ReadTimeout:       config.ServerReadTimeout,
		ReadHeaderTimeout: config.ServerReadHeaderTimeout,
	}

	grp, grpCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		log.Ctx(ctx).Info("Starting server at http://" + addr)

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}

		return nil
	})

	grp.Go(func() error {
		<-grpCtx.Done()

		log.Ctx(ctx).Info("Shutting down")

		// ctx is already done; keep only its logger
		shutdownCtx := log.CopyContext(ctx, context.Background())
		err := util.CtxWithTimeout(shutdownCtx, config.ShutdownTimeout, httpServer.Shutdown)

		return errors.Wrap(err, "shutdown")
	})

	err = grp.Wait()

	if err1 := srv.Close(log.CopyContext(ctx, context.Background())); err1 != nil {
		err = errors.Join(err, errors.Wrap(err1, "close server"))
	}

	return err
}

var errUnsupportedPortRange = errors.New("port value is outside the supported range [1024 - 65535]")

// buildServerAddr constructs the server address from the port.
func buildServerAddr(port string) (string, error) {
	i, err := strconv.ParseInt(port, 10, 32)
	if err != nil {
		return "", errors.Wrap(err, "invalid port value format")
	}

	if i < 1024 || i > 65535 {
		return "", errUnsupportedPortRange
	}

	return "localhost:" + port, nil
}

// server holds the state behind the HTTP handlers.
type server struct {
	// store keeps named lists.
	store store.Store
	// client is the MongoDB client behind store, if any.
	client *mongo.Client
	// registry collects the exported metrics.
	registry *prometheus.Registry
	// startedAt is when the server was created.
	startedAt time.Time
}

// createServer creates a server backed by MongoDB at storeURI, or by memory if it is empty.
func createServer(ctx context.Context, storeURI string, copts store.ConnectOptions) (*server, error) {
	if storeURI == "" {
		log.Ctx(ctx).Info("Keeping lists in memory")

		return newServer(store.NewMemory(), nil), nil
	}

	client, err := store.Connect(ctx, storeURI, copts)
	if err != nil {
		return nil, errors.Wrap(err, "connect to store")
	}

	log.Ctx(ctx).Debug("Connected to store")

	return newServer(store.NewMongo(client), client), nil
}

func newServer(s store.Store, client *mongo.Client) *server {
	reg := prometheus.NewRegistry()
	metrics.Init(reg)

	return &server{
		store:     s,
		client:    client,
		registry:  reg,
		startedAt: time.Now(),
	}
}

// Close disconnects from the store.
func (s *server) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}

	return util.CtxWithTimeout(ctx, config.DisconnectTimeout, s.client.Disconnect)
}

// Handler returns the HTTP handler for the server.
func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/eval", s.handleEval)
	mux.HandleFunc("/lists", s.handleLists)
	mux.HandleFunc("/lists/{name}", s.handleDeleteList)
	mux.HandleFunc("/status", s.handleStatus)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := log.WithAttrs(r.Context(),
			log.Scope("http"),
			log.RequestID(uuid.NewString()),
			log.Str("method", r.Method))
		log.Ctx(ctx).Info(r.URL.String())

		defer func() {
			if err := errors.FromPanic(recover()); err != nil {
				log.Ctx(ctx).Error(err, "Handler panicked")
				internalServerError(w)
			}
		}()

		mux.ServeHTTP(w, r.WithContext(ctx))
	})
}

// handleEval handles the /eval endpoint.
func (s *server) handleEval(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), config.ServerResponseTimeout)
	defer cancel()

	if !checkRequest(w, r, http.MethodPost) {
		return
	}

	var req script.Request

	data, err := io.ReadAll(io.LimitReader(r.Body, config.MaxRequestSize))
	if err != nil {
		internalServerError(w)

		return
	}

	log.Ctx(ctx).Debugf("Eval request of %s", humanize.Bytes(uint64(len(data))))

	err = json.Unmarshal(data, &req)
	if err != nil {
		http.Error(w,
			http.StatusText(http.StatusBadRequest),
			http.StatusBadRequest)

		return
	}

	res, err := s.eval(ctx, &req)
	if err != nil {
		metrics.AddScriptsFailed(1)
		writeResponse(w, evalResponse{Err: err.Error()})

		return
	}

	metrics.AddScriptsEvaluated(1)
	writeResponse(w, evalResponse{
		Ok:     true,
		Output: res.Output,
		List:   res.List.String(),
		Items:  res.List.Slice(),
	})
}

// eval runs req, loading and saving the named list when req.Name is set.
func (s *server) eval(ctx context.Context, req *script.Request) (*script.Result, error) {
	err := req.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "invalid script")
	}

	l := req.InitialList()

	if req.Name != "" {
		ctx = log.WithAttrs(ctx, log.ListName(req.Name))

		stored, err := s.store.Load(ctx, req.Name)
		switch {
		case err == nil:
			l = stored
		case errors.Is(err, store.ErrNotFound):
			log.Ctx(ctx).Debug("New list")
		default:
			return nil, errors.Wrap(err, "load")
		}
	}

	res, err := script.Run(ctx, l, req.Ops)
	if err != nil {
		return nil, errors.Wrap(err, "run")
	}

	if req.Name != "" {
		err = s.store.Save(ctx, req.Name, res.List)
		if err != nil {
			return nil, errors.Wrap(err, "save")
		}
	}

	return res, nil
}

// handleLists handles the /lists endpoint.
func (s *server) handleLists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), config.ServerResponseTimeout)
	defer cancel()

	if !checkRequest(w, r, http.MethodGet) {
		return
	}

	names, err := s.store.Names(ctx)
	if err != nil {
		writeResponse(w, listsResponse{Err: err.Error()})

		return
	}

	metrics.SetStoredLists(len(names))
	writeResponse(w, listsResponse{Ok: true, Names: names})
}

// handleDeleteList handles the /lists/{name} endpoint.
func (s *server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), config.ServerResponseTimeout)
	defer cancel()

	if !checkRequest(w, r, http.MethodDelete) {
		return
	}

	name := r.PathValue("name")

	err := s.store.Delete(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
		}

		writeResponse(w, deleteResponse{Err: err.Error()})

		return
	}

	writeResponse(w, deleteResponse{Ok: true})
}

// handleStatus handles the /status endpoint.
func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), config.ServerResponseTimeout)
	defer cancel()

	if !checkRequest(w, r, http.MethodGet) {
		return
	}

	res := statusResponse{
		Ok:      true,
		Store:   "memory",
		Started: s.startedAt.UTC().Format(time.RFC3339),
		Uptime:  strings.TrimSpace(humanize.RelTime(s.startedAt, time.Now(), "", "")),
	}

	if s.client != nil {
		res.Store = "mongodb"
	}

	names, err := s.store.Names(ctx)
	if err != nil {
		res.Ok = false
		res.Err = err.Error()
	} else {
		res.Lists = len(names)
		metrics.SetStoredLists(len(names))
	}

	writeResponse(w, res)
}

// checkRequest rejects requests with the wrong method or an oversized body.
func checkRequest(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w,
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed)

		return false
	}

	if r.ContentLength > config.MaxRequestSize {
		http.Error(w,
			http.StatusText(http.StatusRequestEntityTooLarge),
			http.StatusRequestEntityTooLarge)

		return false
	}

	return true
}

// writeResponse writes the response as JSON to the ResponseWriter.
func writeResponse[T any](w http.ResponseWriter, resp T) {
	err := json.NewEncoder(w).Encode(resp)
	if err != nil {
		internalServerError(w)
	}
}

func internalServerError(w http.ResponseWriter) {
	http.Error(w,
		http.StatusText(http.StatusInternalServerError),
		http.StatusInternalServerError)
}

// evalResponse represents the response body for the /eval endpoint.
type evalResponse struct {
	// Ok indicates if the operation was successful.
	Ok bool `json:"ok"`
	// Err is the error message if the operation failed.
	Err string `json:"error,omitempty"`

	// Output holds the lines printed by the script.
	Output []string `json:"output,omitempty"`
	// List is the display form of the resulting list.
	List string `json:"list,omitempty"`
	// Items are the elements of the resulting list.
	Items []string `json:"items,omitempty"`
}

// listsResponse represents the response body for the /lists endpoint.
type listsResponse struct {
	// Ok indicates if the operation was successful.
	Ok bool `json:"ok"`
	// Err is the error message if the operation failed.
	Err string `json:"error,omitempty"`

	// Names are the stored list names in ascending order.
	Names []string `json:"names"`
}

// deleteResponse represents the response body for the /lists/{name} endpoint.
type deleteResponse struct {
	// Ok indicates if the operation was successful.
	Ok bool `json:"ok"`
	// Err is the error message if the operation failed.
	Err string `json:"error,omitempty"`
}

// statusResponse represents the response body for the /status endpoint.
type statusResponse struct {
	// Ok indicates if the operation was successful.
	Ok bool `json:"ok"`
	// Err is the error message if the operation failed.
	Err string `json:"error,omitempty"`

	// Store is the kind of list store: "memory" or "mongodb".
	Store string `json:"store"`
	// Lists is the number of stored lists.
	Lists int `json:"lists"`
	// Started is the server start time.
	Started string `json:"started"`
	// Uptime is the human readable time since start.
	Uptime string `json:"uptime"`
}
