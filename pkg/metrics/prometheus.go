package metrics

// HTTP middleware modelled on github.com/zsais/go-gin-prometheus, trimmed to
// the request counter and latency histogram and a separate metrics listener.

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var reqCnt = &Metric{
	ID:          "reqCnt",
	Name:        "req_total",
	Description: "How many HTTP requests processed, partitioned by status code, method and route.",
	Type:        "counter_vec",
	Args:        []string{"code", "method", "url"},
}

var reqDur = &Metric{
	ID:          "reqDur",
	Name:        "req_dur_ms",
	Description: "The HTTP request latencies in milliseconds.",
	Type:        "histogram_vec",
	Args:        []string{"code", "method", "url"},
}

const defaultMetricPath = "/metrics"

type Logger interface {
	Errorf(format string, v ...interface{})
}

// URLLabelFn controls the cardinality of the "url" label.
type URLLabelFn func(c *gin.Context) string

// Prometheus holds the HTTP collectors and where they are exposed.
type Prometheus struct {
	reqCnt *prometheus.CounterVec
	reqDur *prometheus.HistogramVec

	registry      *prometheus.Registry
	listenAddress string
	MetricsPath   string
	URLLabel      URLLabelFn
	logger        Logger
}

type NewPrometheusOptions struct {
	MetricsPath string
	URLLabel    URLLabelFn
	Logger      Logger
	// Registry defaults to a fresh registry holding the HTTP and domain collectors.
	Registry *prometheus.Registry
}

func NewPrometheus(options NewPrometheusOptions) *Prometheus {
	p := &Prometheus{
		MetricsPath: options.MetricsPath,
		URLLabel:    options.URLLabel,
		logger:      options.Logger,
		registry:    options.Registry,
	}
	if p.MetricsPath == "" {
		p.MetricsPath = defaultMetricPath
	}
	if p.URLLabel == nil {
		p.URLLabel = func(c *gin.Context) string {
			if fp := c.FullPath(); fp != "" {
				return fp
			}
			return "unmatched"
		}
	}
	if p.registry == nil {
		p.registry = prometheus.NewRegistry()
	}

	p.reqCnt = NewMetric(reqCnt, subsystem).(*prometheus.CounterVec)
	p.reqDur = NewMetric(reqDur, subsystem).(*prometheus.HistogramVec)
	for _, c := range []prometheus.Collector{p.reqCnt, p.reqDur} {
		if err := p.registry.Register(c); err != nil && p.logger != nil {
			p.logger.Errorf("http collector could not be registered in Prometheus, err=%v", err)
		}
	}
	RegisterDomain(p.registry, p.logger)
	return p
}

// SetListenAddress exposes metrics on their own listener instead of the API engine.
func (p *Prometheus) SetListenAddress(address string) {
	p.listenAddress = address
}

// Use adds the middleware to e and mounts the metrics endpoint.
func (p *Prometheus) Use(e *gin.Engine) {
	e.Use(p.HandlerFunc())
	handler := gin.WrapH(promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
	if p.listenAddress == "" {
		e.GET(p.MetricsPath, handler)
		return
	}
	r := gin.New()
	r.GET(p.MetricsPath, handler)
	go func() {
		if err := r.Run(p.listenAddress); err != nil && p.logger != nil {
			p.logger.Errorf("metrics listener stopped: %v", err)
		}
	}()
}

// HandlerFunc records count and latency of every request except the metrics scrape.
func (p *Prometheus) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == p.MetricsPath {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		url := p.URLLabel(c)
		p.reqDur.WithLabelValues(status, c.Request.Method, url).Observe(MillisecondsSince(start))
		p.reqCnt.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}

// Registry exposes the registry backing this instance.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }
