package wpgraphql

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"go.uber.org/zap"

	"github.com/gocipe/wpgraphql/store"
)

//defaultQuery runs when a request carries no query
const defaultQuery = "{hello}"

//DefaultMaxBodyBytes bounds request bodies when EndpointOpts.MaxBodyBytes is zero
const DefaultMaxBodyBytes = 1 << 20

//unexpectedError is the only detail clients get about failures outside execution
const unexpectedError = "Unexpected Error"

//Metrics records per request measurements
type Metrics interface {
	MeasureRequest(status int, fieldErrors int, duration time.Duration)
}

//ViewerFunc identifies the user making a request. A nil record means anonymous.
type ViewerFunc func(r *http.Request) (*store.Record, error)

//EndpointOpts configures NewHTTPEndpoint
type EndpointOpts struct {
	Store    store.Store
	WPConfig WPConfig
	Logger   *zap.Logger
	Metrics  Metrics
	//RootURL of the site; derived from the request when empty
	RootURL string
	//Debug enables diagnostics on every request; clients may also pass debug=1
	Debug  bool
	Viewer ViewerFunc
	//MaxBodyBytes bounds the request body; DefaultMaxBodyBytes when zero
	MaxBodyBytes int64
}

type endpoint struct {
	opts EndpointOpts
}

type requestParams struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type response struct {
	Data       interface{}                `json:"data,omitempty"`
	Errors     []gqlerrors.FormattedError `json:"errors,omitempty"`
	Extensions map[string]interface{}     `json:"extensions,omitempty"`
}

//NewHTTPEndpoint creates a new http graphql endpoint. Each request gets its own
//registry and schema, built from opts.WPConfig.
func NewHTTPEndpoint(opts EndpointOpts) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &endpoint{opts: opts}
}

func (e *endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	requestID := middleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := e.opts.Logger.With(zap.String("request_id", requestID))
	debug := e.opts.Debug || isTruthy(r.URL.Query().Get("debug"))
	r.Body = http.MaxBytesReader(w, r.Body, e.opts.MaxBodyBytes)

	status, resp := e.serve(r, requestID, debug, logger)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("could not write response", zap.Error(err))
	}

	if e.opts.Metrics != nil {
		e.opts.Metrics.MeasureRequest(status, len(resp.Errors), time.Since(start))
	}
	logger.Debug("graphql request served",
		zap.Int("status", status),
		zap.Int("errors", len(resp.Errors)),
		zap.Duration("duration", time.Since(start)),
	)
}

func (e *endpoint) serve(r *http.Request, requestID string, debug bool, logger *zap.Logger) (status int, resp response) {
	defer func() {
		if rec := recover(); rec != nil {
			status, resp = failure(fmt.Errorf("panic: %v", rec), debug, logger)
		}
	}()

	params, raw, err := parseRequest(r)
	if err != nil {
		status, resp = failure(err, debug, logger)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		return status, resp
	}

	app := &AppContext{
		RootURL:   e.rootURL(r),
		Request:   raw,
		RequestID: requestID,
		Debug:     debug,
	}
	if e.opts.Viewer != nil {
		if app.Viewer, err = e.opts.Viewer(r); err != nil {
			return failure(fmt.Errorf("could not identify viewer: %w", err), debug, logger)
		}
	}

	ctx, diags := withDiagnostics(NewContext(r.Context(), app))
	if debug {
		var merr interface{ WrappedErrors() []error }
		if err := e.opts.WPConfig.Validate(); err != nil && errors.As(err, &merr) {
			for _, werr := range merr.WrappedErrors() {
				addDiagnostic(ctx, "wp_config: %s", werr)
			}
		}
	}

	registry := NewRegistry(e.opts.Store, e.opts.WPConfig, WithLogger(logger))
	schema, err := NewSchema(registry)
	if err != nil {
		return failure(err, debug, logger)
	}

	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  params.Query,
		VariableValues: params.Variables,
		OperationName:  params.OperationName,
		Context:        ctx,
	})

	resp = response{Data: result.Data, Errors: result.Errors}
	if debug {
		if messages := diags.list(); len(messages) > 0 {
			resp.Extensions = map[string]interface{}{"phpErrors": messages}
		}
	}
	return http.StatusOK, resp
}

//failure renders an error that prevented execution
func failure(err error, debug bool, logger *zap.Logger) (int, response) {
	logger.Error("graphql request failed", zap.Error(err))
	if debug {
		return http.StatusInternalServerError, response{
			Extensions: map[string]interface{}{
				"exception": map[string]interface{}{"message": err.Error()},
			},
		}
	}
	return http.StatusInternalServerError, response{
		Errors: []gqlerrors.FormattedError{gqlerrors.NewFormattedError(unexpectedError)},
	}
}

//parseRequest reads query, variables and operationName from a JSON body or
//from form values. raw holds every request parameter.
func parseRequest(r *http.Request) (requestParams, map[string]interface{}, error) {
	var params requestParams
	raw := make(map[string]interface{})

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if r.Method == http.MethodPost && contentType == "application/json" {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return params, raw, fmt.Errorf("could not read request body: %w", err)
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &raw); err != nil {
				return params, raw, fmt.Errorf("could not decode request body: %w", err)
			}
			if err := json.Unmarshal(body, &params); err != nil {
				return params, raw, fmt.Errorf("could not decode request body: %w", err)
			}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return params, raw, fmt.Errorf("could not parse request: %w", err)
		}
		for key := range r.Form {
			raw[key] = r.Form.Get(key)
		}
		params.Query = r.Form.Get("query")
		params.OperationName = r.Form.Get("operationName")
		if v := r.Form.Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &params.Variables); err != nil {
				return params, raw, fmt.Errorf("could not decode variables: %w", err)
			}
		}
	}

	if strings.TrimSpace(params.Query) == "" {
		params.Query = defaultQuery
	}
	return params, raw, nil
}

func (e *endpoint) rootURL(r *http.Request) string {
	if e.opts.RootURL != "" {
		return e.opts.RootURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func isTruthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
