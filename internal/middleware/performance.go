package middleware

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go-registry-console/internal/logger"
)

// PerformanceMetrics stores request performance metrics
type PerformanceMetrics struct {
	RequestCount  int64            `json:"request_count"`
	ErrorRate     float64          `json:"error_rate"`
	MemoryUsage   MemoryStats      `json:"memory_usage"`
	EndpointStats map[string]Stats `json:"endpoint_stats"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	Allocated    uint64 `json:"allocated"`
	TotalAlloc   uint64 `json:"total_alloc"`
	Sys          uint64 `json:"sys"`
	GCRuns       uint32 `json:"gc_runs"`
	HeapInUse    uint64 `json:"heap_in_use"`
	HeapReleased uint64 `json:"heap_released"`
}

// Stats represents endpoint-specific statistics
type Stats struct {
	Count         int64         `json:"count"`
	TotalDuration time.Duration `json:"total_duration"`
	AverageTime   time.Duration `json:"average_time"`
	ErrorCount    int64         `json:"error_count"`
	SlowCount     int64         `json:"slow_count"`
}

// PerformanceMonitor tracks application performance
type PerformanceMonitor struct {
	metrics       *PerformanceMetrics
	slowThreshold time.Duration
	startTime     time.Time
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor(slowThreshold time.Duration) *PerformanceMonitor {
	return &PerformanceMonitor{
		metrics: &PerformanceMetrics{
			EndpointStats: make(map[string]Stats),
		},
		slowThreshold: slowThreshold,
		startTime:     time.Now(),
	}
}

// PerformanceMiddleware tracks request performance
func (pm *PerformanceMonitor) PerformanceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		method := c.Request.Method
		endpoint := fmt.Sprintf("%s %s", method, path)

		// Skip health check and static files
		if strings.HasPrefix(path, "/static/") || path == "/health" {
			c.Next()
			return
		}

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		pm.updateMetrics(endpoint, duration, status >= 400)

		if duration > pm.slowThreshold && logger.GlobalLogger != nil {
			logger.GlobalLogger.Warn("Slow request", map[string]interface{}{
				"endpoint": endpoint,
				"duration": duration.String(),
				"status":   status,
			})
		}

		c.Header("X-Response-Time", duration.String())
	}
}

// updateMetrics updates performance metrics
func (pm *PerformanceMonitor) updateMetrics(endpoint string, duration time.Duration, isError bool) {
	pm.metrics.RequestCount++

	stats := pm.metrics.EndpointStats[endpoint]
	stats.Count++
	stats.TotalDuration += duration
	stats.AverageTime = stats.TotalDuration / time.Duration(stats.Count)

	if isError {
		stats.ErrorCount++
	}
	if duration > pm.slowThreshold {
		stats.SlowCount++
	}

	pm.metrics.EndpointStats[endpoint] = stats

	totalErrors := int64(0)
	for _, stat := range pm.metrics.EndpointStats {
		totalErrors += stat.ErrorCount
	}
	pm.metrics.ErrorRate = float64(totalErrors) / float64(pm.metrics.RequestCount) * 100
}

// GetMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetMetrics() *PerformanceMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	pm.metrics.MemoryUsage = MemoryStats{
		Allocated:    m.Alloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		GCRuns:       m.NumGC,
		HeapInUse:    m.HeapInuse,
		HeapReleased: m.HeapReleased,
	}
	return pm.metrics
}

// SecurityHeadersMiddleware adds security headers
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// CacheControlMiddleware adds cache headers. Console pages render
// per-tab state and must never be served from a cache.
func CacheControlMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/static/") {
			c.Header("Cache-Control", "public, max-age=31536000")
			c.Header("Expires", time.Now().AddDate(1, 0, 0).Format(time.RFC1123))
		} else {
			c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
		}

		c.Next()
	}
}

// RequestSizeLimitMiddleware limits request body size, mainly for the
// attachment upload form.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.JSON(413, gin.H{"error": "Request entity too large"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// HealthCheckMiddleware provides health check endpoint
func HealthCheckMiddleware(pm *PerformanceMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path != "/health" {
			c.Next()
			return
		}

		metrics := pm.GetMetrics()

		health := gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"uptime":     time.Since(pm.startTime).String(),
			"requests":   metrics.RequestCount,
			"error_rate": fmt.Sprintf("%.2f%%", metrics.ErrorRate),
		}

		if metrics.ErrorRate > 10 {
			health["status"] = "degraded"
		}
		if metrics.ErrorRate > 25 {
			health["status"] = "unhealthy"
		}

		c.JSON(200, health)
		c.Abort()
	}
}

// Global performance monitor instance
var GlobalPerformanceMonitor *PerformanceMonitor

// InitializePerformanceMonitor initializes the global performance monitor
func InitializePerformanceMonitor(slowThreshold time.Duration) {
	GlobalPerformanceMonitor = NewPerformanceMonitor(slowThreshold)
}
