package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const sweepBatchSize = 200

// ExpiredRigFinder süresi dolmuş aktif rig'i olan kullanıcıları bulur
type ExpiredRigFinder interface {
	UsersWithExpiredRigs(ctx context.Context, now time.Time, limit int) ([]int, error)
}

// RigSweeper sahibi hiç toplamasa bile süresi dolan rig'lerin kapanmasını sağlar
type RigSweeper struct {
	finder   ExpiredRigFinder
	queue    *SettlementQueue
	interval time.Duration
	now      func() time.Time
}

// NewRigSweeper yeni sweeper oluşturur
func NewRigSweeper(finder ExpiredRigFinder, queue *SettlementQueue, interval time.Duration) *RigSweeper {
	return &RigSweeper{finder: finder, queue: queue, interval: interval, now: time.Now}
}

// Run ctx iptal edilene kadar periyodik tarama yapar
func (s *RigSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		log.Info().Msg("Rig sweeper kapalı")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", s.interval).Msg("Rig sweeper başlatıldı")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Rig sweeper durduruldu")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep tek tur: bulunan her kullanıcı için kazanç toplama job'ı kuyruğa eklenir
// ve sonuçlar beklenir. İşlenen kullanıcı sayısını döner.
func (s *RigSweeper) Sweep(ctx context.Context) int {
	userIDs, err := s.finder.UsersWithExpiredRigs(ctx, s.now().UTC(), sweepBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("Süresi dolan rig'ler bulunamadı")
		return 0
	}
	if len(userIDs) == 0 {
		return 0
	}

	results := make([]<-chan SettlementResult, 0, len(userIDs))
	for _, id := range userIDs {
		results = append(results, s.queue.AddJob(id))
	}

	settled := 0
	for _, ch := range results {
		select {
		case res := <-ch:
			if res.Error == nil {
				settled++
			}
		case <-ctx.Done():
			return settled
		}
	}

	log.Info().Int("users", len(userIDs)).Int("settled", settled).Msg("Süresi dolan rig'ler kapatıldı")
	return settled
}
