package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	ErrDuplicateEndpoint = errors.New("endpoint already registered")
	ErrEndpointNotFound  = errors.New("endpoint not found")
)

// Handler — микросервис: строка на входе, строка на выходе.
type Handler interface {
	HandleRequest(ctx context.Context, input string) string
}

// HandlerFunc позволяет использовать обычную функцию как Handler.
type HandlerFunc func(ctx context.Context, input string) string

func (f HandlerFunc) HandleRequest(ctx context.Context, input string) string { return f(ctx, input) }

// Launcher — реестр микросервисов по url.
type Launcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *zap.Logger
}

func NewLauncher(log *zap.Logger) *Launcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Launcher{handlers: make(map[string]Handler), log: log}
}

func normalizeEndpoint(url string) string {
	return strings.Trim(strings.TrimSpace(url), "/")
}

// Register добавляет обработчик; ведущий и хвостовой "/" в url не важны.
func (l *Launcher) Register(url string, h Handler) error {
	url = normalizeEndpoint(url)
	if url == "" {
		return fmt.Errorf("empty endpoint url")
	}
	if h == nil {
		return fmt.Errorf("endpoint %q: nil handler", url)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.handlers[url]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateEndpoint, url)
	}
	l.handlers[url] = h
	l.log.Info("registered endpoint", zap.String("url", url))
	return nil
}

// Endpoints — зарегистрированные url по возрастанию.
func (l *Launcher) Endpoints() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.handlers))
	for u := range l.handlers {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// Dispatch вызывает обработчик url с input.
func (l *Launcher) Dispatch(ctx context.Context, url, input string) (string, error) {
	url = normalizeEndpoint(url)
	l.mu.RLock()
	h, ok := l.handlers[url]
	l.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrEndpointNotFound, url)
	}
	return h.HandleRequest(ctx, input), nil
}

// GET /svc/*endpoint?input=...
func ServiceHandler(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.Param("endpoint")
		out, err := b.Services.Dispatch(c.Request.Context(), endpoint, c.Query("input"))
		if errors.Is(err, ErrEndpointNotFound) {
			c.String(http.StatusNotFound, "Endpoint not found: %s", normalizeEndpoint(endpoint))
			return
		}
		c.String(http.StatusOK, "%s", out)
	}
}
