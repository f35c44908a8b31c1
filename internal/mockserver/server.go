package mockserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Rorical/RoriSQL/internal/backend"
)

const (
	NoFixtureMessage     = "no fixture for question"
	EmptyQuestionMessage = "Question must not be empty"
)

type Server struct {
	fixtures Fixtures
	logger   *slog.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

// New builds a development backend that answers POST /generate-sql from fixtures
func New(fixtures Fixtures, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if fixtures == nil {
		fixtures = Fixtures{}
	}

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rorisql_mock_requests_total",
			Help: "Total number of generate-sql requests by outcome.",
		},
		[]string{"outcome"},
	)
	registry := prometheus.NewRegistry()
	registry.MustRegister(requests)

	return &Server{
		fixtures: fixtures,
		logger:   logger,
		registry: registry,
		requests: requests,
	}
}

// Router returns the gin engine; callers choose gin's mode before calling it
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ping", Ping)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	r.POST(backend.GeneratePath, s.GenerateSQLHandler)

	return r
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

func (s *Server) GenerateSQLHandler(c *gin.Context) {
	var req backend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.requests.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := backend.Validate(req.Question); err != nil {
		s.requests.WithLabelValues("empty").Inc()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": EmptyQuestionMessage})
		return
	}

	resp, ok := s.fixtures.Lookup(req.Question)
	if !ok {
		s.logger.Info("no fixture", "question", req.Question)
		s.requests.WithLabelValues("miss").Inc()
		c.JSON(http.StatusOK, gin.H{"error": NoFixtureMessage})
		return
	}

	s.logger.Debug("fixture hit", "question", req.Question)
	s.requests.WithLabelValues("hit").Inc()
	c.JSON(http.StatusOK, resp)
}
