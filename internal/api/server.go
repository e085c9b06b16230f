// Package api serves the GEOM4 decoder over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/op2geom/internal/cache"
	"github.com/samcharles93/op2geom/internal/logger"
	"github.com/samcharles93/op2geom/internal/metrics"
	"github.com/samcharles93/op2geom/internal/model"
	"github.com/samcharles93/op2geom/internal/version"
	"github.com/samcharles93/op2geom/pkg/op2"
)

// DefaultMaxBodyBytes bounds an uploaded stream.
const DefaultMaxBodyBytes = 256 << 20

// Options configures a Server. Every field is optional.
type Options struct {
	Logger       logger.Logger
	Metrics      *metrics.Metrics
	Cache        *cache.Cache
	MaxBodyBytes int64
}

// Server holds the handlers and their shared collaborators.
type Server struct {
	log     logger.Logger
	metrics *metrics.Metrics
	cache   *cache.Cache
	maxBody int64
	clock   func() time.Time
}

// NewServer builds a server from opts.
func NewServer(opts Options) *Server {
	s := &Server{
		log:     opts.Logger,
		metrics: opts.Metrics,
		cache:   opts.Cache,
		maxBody: opts.MaxBodyBytes,
		clock:   time.Now,
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	return s
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/decode", s.handleDecode)
	e.GET("/v1/records", s.handleRecords)
	e.GET("/healthz", s.handleHealth)
	if s.metrics != nil {
		h := s.metrics.Handler()
		e.GET("/metrics", func(c *echo.Context) error {
			h.ServeHTTP(c.Response(), c.Request())
			return nil
		})
	}
}

func (s *Server) handleHealth(c *echo.Context) error {
	return s.reply(c, "/healthz", s.clock(), http.StatusOK, HealthResponse{Status: "ok", Version: version.String()})
}

func (s *Server) handleRecords(c *echo.Context) error {
	start := s.clock()
	infos := RecordInfos(op2.Geom4Table())
	switch c.QueryParam("implemented") {
	case "":
	case "true", "false":
		want := c.QueryParam("implemented") == "true"
		kept := infos[:0]
		for _, r := range infos {
			if r.Implemented == want {
				kept = append(kept, r)
			}
		}
		infos = kept
	default:
		return s.fail(c, "/v1/records", start, newInvalidRequest("implemented must be true or false"))
	}
	return s.reply(c, "/v1/records", start, http.StatusOK, RecordsResponse{Object: "list", Data: infos})
}

func (s *Server) handleDecode(c *echo.Context) error {
	const route = "/v1/decode"
	start := s.clock()
	id := uuid.NewString()
	log := s.log.With("request_id", id)

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, s.maxBody+1))
	if err != nil {
		return s.fail(c, route, start, newInvalidRequest(fmt.Sprintf("read body: %v", err)))
	}
	if int64(len(body)) > s.maxBody {
		return s.reply(c, route, start, http.StatusRequestEntityTooLarge, errorEnvelope("request_too_large",
			fmt.Sprintf("stream exceeds %d bytes", s.maxBody)))
	}
	if len(body) == 0 {
		return s.fail(c, route, start, newInvalidRequest("empty body"))
	}

	format, err := requestFormat(c.QueryParam("endian"), c.QueryParam("precision"), body)
	if err != nil {
		return s.fail(c, route, start, err)
	}
	key := cache.Key(body, op2.OrderName(format.Order), format.Precision.String())

	if raw, ok := s.cached(key); ok {
		log.Debug("decode served from cache", "bytes", len(body))
		return s.reply(c, route, start, http.StatusOK, DecodeResponse{ID: id, Cached: true, Result: raw})
	}

	result, err := s.decode(c.Request().Context(), log, format, body)
	if err != nil {
		return s.fail(c, route, start, err)
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return s.fail(c, route, start, err)
	}
	if s.cache != nil {
		if err := s.cache.Put(key, raw); err != nil {
			log.Warn("cache write failed", "error", err)
		}
	}
	return s.reply(c, route, start, http.StatusOK, DecodeResponse{ID: id, Result: raw})
}

func (s *Server) cached(key string) (json.RawMessage, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(key)
	if s.metrics != nil {
		s.metrics.ObserveCache(err == nil)
	}
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("cache read failed", "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (s *Server) decode(ctx context.Context, log logger.Logger, format op2.Format, body []byte) (*DecodeResult, error) {
	m := model.New()
	var sink op2.EntitySink = m
	if s.metrics != nil {
		sink = s.metrics.WrapSink(m)
	}
	start := s.clock()
	stats, err := op2.NewDecoder(format).DecodeStream(ctx, sink, logger.NewDiagnostics(log, nil), body)
	if s.metrics != nil {
		s.metrics.ObserveStream(stats, len(body), s.clock().Sub(start), err)
	}
	if err != nil {
		return nil, err
	}
	log.Info("decoded stream",
		"bytes", len(body),
		"records", stats.Decoded,
		"skipped", stats.Skipped,
		"failed", stats.FailedTotal(),
		"entities", m.Len(),
	)
	return &DecodeResult{
		Endian:    op2.OrderName(format.Order),
		Precision: format.Precision.String(),
		Stats:     stats,
		Cards:     m.Summary(),
		Entities:  m.Items(),
	}, nil
}

func requestFormat(endian, precision string, body []byte) (op2.Format, error) {
	p, ok := op2.ParsePrecision(precision)
	if !ok {
		return op2.Format{}, newInvalidRequest(fmt.Sprintf("unknown precision %q (want single or double)", precision))
	}
	order, err := op2.ResolveByteOrder(endian, body)
	if err != nil {
		if errors.Is(err, op2.ErrCorruptStream) {
			return op2.Format{}, err
		}
		return op2.Format{}, newInvalidRequest(err.Error())
	}
	return op2.Format{Order: order, Precision: p}, nil
}

func (s *Server) fail(c *echo.Context, route string, start time.Time, err error) error {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return s.reply(c, route, start, http.StatusBadRequest, errorEnvelope("invalid_request_error", err.Error()))
	case errors.Is(err, op2.ErrCorruptStream):
		return s.reply(c, route, start, http.StatusUnprocessableEntity, errorEnvelope("corrupt_stream", err.Error()))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return s.reply(c, route, start, http.StatusServiceUnavailable, errorEnvelope("cancelled", err.Error()))
	default:
		s.log.Error("request failed", "route", route, "error", err)
		return s.reply(c, route, start, http.StatusInternalServerError, errorEnvelope("server_error", err.Error()))
	}
}

func errorEnvelope(typ, msg string) map[string]ErrorBody {
	return map[string]ErrorBody{"error": {Message: msg, Type: typ}}
}

// reply writes v as JSON and records the request.
func (s *Server) reply(c *echo.Context, route string, start time.Time, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(status)
	_, err = res.Write(b)
	if s.metrics != nil {
		s.metrics.ObserveHTTP(c.Request().Method, route, status, s.clock().Sub(start))
	}
	return err
}
