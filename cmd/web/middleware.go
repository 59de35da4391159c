// cmd/web/middleware.go
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"bookshelf/internal/identity"
)

type contextKey string

const sessionContextKey = contextKey("session")

// sessionCookie is where the shell keeps the bearer token between
// requests.
const sessionCookie = "bookshelf_session"

// withSession resolves the signed-in state for the request from the
// session cookie and stashes it in the request context. A missing or
// unreadable cookie yields an anonymous session rather than an error.
func (app *application) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := identity.Anonymous()
		if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
			if s, err := identity.FromToken(cookie.Value); err == nil {
				session = s
			} else {
				app.logger.Warn("discarding unreadable session token", "error", err)
			}
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom pulls the session placed in the context by withSession.
func (app *application) sessionFrom(r *http.Request) *identity.Session {
	if s, ok := r.Context().Value(sessionContextKey).(*identity.Session); ok {
		return s
	}
	return identity.Anonymous()
}

// recoverPanic converts a downstream panic into a clean 500 instead of a
// dropped connection.
func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.logger.Error("panic recovered", "error", fmt.Sprintf("%s", err), "path", r.URL.Path)
				http.Error(w, "the server encountered a problem and could not process your request", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type rateLimitedClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimit applies a per-IP token bucket: 2 requests per second with a
// burst of 4. Entries unseen for 3 minutes are evicted by a background
// sweep.
func (app *application) rateLimit(next http.Handler) http.Handler {
	var (
		mu      sync.Mutex
		clients = make(map[string]*rateLimitedClient)
	)

	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		mu.Lock()
		c, found := clients[ip]
		if !found {
			c = &rateLimitedClient{limiter: rate.NewLimiter(2, 4)}
			clients[ip] = c
		}
		c.lastSeen = time.Now()
		allowed := c.limiter.Allow()
		mu.Unlock()

		if !allowed {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// logRequest records one line per request.
func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		app.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
