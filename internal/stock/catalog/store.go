package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"pipe-stock/internal/stock/service"
)

var ErrNotLoaded = errors.New("catalog is not loaded")

// Store хранит текущий снимок. Читатели берут Engine без блокировок;
// Refresh собирает новый снимок целиком и подменяет указатель.
type Store struct {
	loader Loader
	logger zerolog.Logger

	cur atomic.Pointer[Snapshot]
	mu  sync.Mutex // одна перезагрузка за раз
}

func NewStore(loader Loader, logger zerolog.Logger) *Store {
	return &Store{loader: loader, logger: logger}
}

// Engine возвращает текущий движок или nil, если ничего не загружено.
func (s *Store) Engine() *service.Engine {
	if snap := s.cur.Load(); snap != nil {
		return snap.Engine
	}
	return nil
}

func (s *Store) Info() Info {
	if snap := s.cur.Load(); snap != nil {
		return snap.Info
	}
	return Info{}
}

// Refresh перечитывает файлы. При ошибке остается прежний снимок.
func (s *Store) Refresh(ctx context.Context) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	snap, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("catalog load failed")
		return s.Info(), err
	}
	s.cur.Store(snap)

	ev := s.logger.Info().Dur("dur", time.Since(start))
	for _, ds := range snap.Info.Datasets {
		ev = ev.Int(ds.Name+"_rows", ds.Rows)
	}
	ev.Msg("catalog loaded")
	return snap.Info, nil
}

// Watch раз в interval проверяет файлы и перезагружает снимок, если появился новый
// файл остатков или изменился какой-либо из справочников. Выходит по ctx.Done().
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !s.changed() {
				continue
			}
			s.logger.Info().Msg("data files changed, reloading")
			_, _ = s.Refresh(ctx)
		}
	}
}

func (s *Store) changed() bool {
	fp, err := s.loader.Fingerprint()
	if err != nil {
		s.logger.Warn().Err(err).Msg("catalog watch")
		return false
	}
	snap := s.cur.Load()
	return snap == nil || fp != fingerprintOf(snap.Info)
}

func (s *Store) Loaded() bool { return s.cur.Load() != nil }
