package health

import (
	"regexp"
	"strings"
	"time"
)

// Health states
const (
	StateHealthy   = "healthy"
	StateDegraded  = "degraded"
	StateUnhealthy = "unhealthy"
)

var (
	urlRegex         = regexp.MustCompile(`(https?|wss?)://[^\s]+`)
	unixPathRegex    = regexp.MustCompile(`/[a-zA-Z0-9/_.-]+`)
	windowsPathRegex = regexp.MustCompile(`[A-Z]:\\[^:\s]+`)
	ipAddrRegex      = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	credentialRegex  = regexp.MustCompile(`(?i)(password|token|key|secret|credential)[^a-zA-Z]*[:=][^,\s}]+`)
)

// Status represents the health of one pipeline build, or an aggregate of several
type Status struct {
	Component   string     `json:"component"              yaml:"component"`
	Healthy     bool       `json:"healthy"                yaml:"healthy"`
	Status      string     `json:"status"                 yaml:"status"`
	Message     string     `json:"message"                yaml:"message"`
	Timestamp   time.Time  `json:"timestamp"              yaml:"timestamp"`
	SubStatuses []Status   `json:"sub_statuses,omitempty" yaml:"sub_statuses,omitempty"`
	Build       *BuildInfo `json:"build,omitempty"        yaml:"build,omitempty"`
}

// BuildInfo summarizes the build a status was derived from
type BuildInfo struct {
	BuildID  string        `json:"build_id"         yaml:"build_id"`
	Nodes    int           `json:"nodes"            yaml:"nodes"`
	Links    int           `json:"links"            yaml:"links"`
	Duration time.Duration `json:"duration"         yaml:"duration"`
	Issues   []string      `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// IsHealthy returns true if the status is healthy
func (s Status) IsHealthy() bool {
	return s.Status == StateHealthy
}

// IsDegraded returns true if the status is degraded
func (s Status) IsDegraded() bool {
	return s.Status == StateDegraded
}

// IsUnhealthy returns true if the status is unhealthy
func (s Status) IsUnhealthy() bool {
	return s.Status == StateUnhealthy
}

// WithBuild returns a copy of the status with build details attached
func (s Status) WithBuild(info *BuildInfo) Status {
	s.Build = info
	return s
}

// WithSubStatus adds a sub-status and returns a copy
func (s Status) WithSubStatus(subStatus Status) Status {
	// New backing array so copies never share sub-statuses
	subs := make([]Status, len(s.SubStatuses), len(s.SubStatuses)+1)
	copy(subs, s.SubStatuses)
	s.SubStatuses = append(subs, subStatus)
	return s
}

// FromBuildError creates an unhealthy status for a failed build
func FromBuildError(component string, err error) Status {
	message := "Pipeline build failed"
	if err != nil {
		message = sanitizeErrorMessage(err.Error())
	}
	return NewUnhealthy(component, message)
}

// sanitizeErrorMessage removes URLs, file paths, IP addresses and credentials
func sanitizeErrorMessage(msg string) string {
	if msg == "" {
		return ""
	}

	// URLs before paths, as they contain paths
	sanitized := urlRegex.ReplaceAllString(msg, "[URL]")
	sanitized = unixPathRegex.ReplaceAllString(sanitized, "[PATH]")
	sanitized = windowsPathRegex.ReplaceAllString(sanitized, "[PATH]")
	sanitized = ipAddrRegex.ReplaceAllString(sanitized, "[IP]")

	lower := strings.ToLower(sanitized)
	for _, word := range []string{"password", "token", "key", "secret", "credential"} {
		if strings.Contains(lower, word) {
			sanitized = credentialRegex.ReplaceAllString(sanitized, "[REDACTED]")
			break
		}
	}

	return sanitized
}
