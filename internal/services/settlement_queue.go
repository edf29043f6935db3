package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
)

// SettlementJob kazancı toplanacak kullanıcı
type SettlementJob struct {
	UserID     int
	ResultChan chan SettlementResult
}

// SettlementResult job sonucu
type SettlementResult struct {
	Result *models.CollectResult
	Error  error
}

// SettlementQueue kazanç toplama işlerini sabit sayıda worker ile işler
type SettlementQueue struct {
	jobChan    chan SettlementJob
	workers    int
	bufferSize int
	wg         sync.WaitGroup
	earnings   interfaces.EarningsServiceInterface
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewSettlementQueue yeni queue oluşturur
func NewSettlementQueue(workers int, earnings interfaces.EarningsServiceInterface, bufferSize int) *SettlementQueue {
	if workers <= 0 {
		workers = 1
	}
	return &SettlementQueue{
		jobChan:    make(chan SettlementJob, bufferSize),
		workers:    workers,
		bufferSize: bufferSize,
		earnings:   earnings,
	}
}

// Start worker'ları başlatır. ctx iptal edildiğinde işlenmekte olan job'lar da iptal olur.
func (q *SettlementQueue) Start(ctx context.Context) {
	q.ctx, q.cancel = context.WithCancel(ctx)

	log.Info().
		Int("workers", q.workers).
		Int("buffer_size", q.bufferSize).
		Msg("Settlement queue başlatıldı")

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

// Stop yeni job kabulünü kapatır ve worker'ların bitmesini bekler
func (q *SettlementQueue) Stop() {
	close(q.jobChan)
	q.wg.Wait()
	if q.cancel != nil {
		q.cancel()
	}
	log.Info().Msg("Settlement queue durduruldu")
}

func (q *SettlementQueue) worker(id int) {
	defer q.wg.Done()

	for job := range q.jobChan {
		q.handle(id, job)
	}

	log.Debug().Int("worker_id", id).Msg("Settlement worker durduruldu")
}

// handle tek job'ı işler. Panic worker'ı öldürmez, job hata ile sonuçlanır.
func (q *SettlementQueue) handle(id int, job SettlementJob) {
	defer close(job.ResultChan)
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("recover", r).
				Int("worker_id", id).
				Int("user_id", job.UserID).
				Msg("Settlement worker panikledi ama toparlandı")
			job.ResultChan <- SettlementResult{Error: fmt.Errorf("settlement panic: %v", r)}
		}
	}()

	result, err := q.earnings.Collect(q.ctx, job.UserID)
	job.ResultChan <- SettlementResult{Result: result, Error: err}

	if err != nil {
		log.Error().Err(err).Int("worker_id", id).Int("user_id", job.UserID).Msg("Kazanç toplanamadı")
	}
}

// AddJob queue'ya yeni job ekler. Queue doluysa sonuç hemen hata ile döner.
func (q *SettlementQueue) AddJob(userID int) <-chan SettlementResult {
	resultChan := make(chan SettlementResult, 1)

	select {
	case q.jobChan <- SettlementJob{UserID: userID, ResultChan: resultChan}:
	default:
		resultChan <- SettlementResult{Error: fmt.Errorf("settlement queue dolu, kullanıcı %d sonraki turda işlenecek", userID)}
		close(resultChan)
	}

	return resultChan
}
