package api

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"recmap/internal/mapper"
)

// Backend — всё, что нужно обработчикам: маппер, микросервисы и логгер.
type Backend struct {
	Engine   *mapper.Engine
	Services *Launcher
	Log      *zap.Logger

	mu      sync.Mutex // ulid.Monotonic не потокобезопасен
	entropy io.Reader
}

func NewBackend(e *mapper.Engine, services *Launcher, log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	if services == nil {
		services = NewLauncher(log)
	}
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Backend{
		Engine:   e,
		Services: services,
		Log:      log,
		entropy:  ulid.Monotonic(src, 0),
	}
}

func (b *Backend) newID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), b.entropy).String()
}
