package middleware

type HTTPMetrics interface {
	ObserveHTTPRequest(method, path, status string, seconds float64)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
