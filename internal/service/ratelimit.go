package service

import (
	"context"
	"net"
	"sync"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// Default per-client limits
const (
	DefaultRateLimit = 10
	DefaultRateBurst = 20
)

// limiters keeps one token bucket per client host
type limiters struct {
	mu     sync.Mutex
	limit  rate.Limit
	burst  int
	byHost map[string]*rate.Limiter
}

func (l *limiters) get(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, exists := l.byHost[host]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.byHost[host] = limiter
	}
	return limiter
}

// RateLimit returns an interceptor that rejects calls above limit requests
// per second (with burst) from the same client host
func RateLimit(limit rate.Limit, burst int) grpc.UnaryServerInterceptor {
	l := &limiters{limit: limit, burst: burst, byHost: make(map[string]*rate.Limiter)}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !l.get(clientHost(ctx)).Allow() {
			return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded for %s", info.FullMethod)
		}
		return handler(ctx, req)
	}
}

func clientHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}
