package migration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Up bekleyen migration'ları uygular. target > 0 ise o version'da durur.
// İlk hatada durur; o ana kadarki sonuçlar hatayla birlikte döner.
func (r *Runner) Up(ctx context.Context, target int64) ([]Result, error) {
	if err := r.Initialize(ctx); err != nil {
		return nil, err
	}

	var results []Result
	err := r.withLock(ctx, func() error {
		migrations, err := r.load(ctx)
		if err != nil {
			return err
		}

		for _, m := range migrations {
			if m.Applied {
				continue
			}
			if target > 0 && m.Version > target {
				break
			}
			result := r.execute(ctx, m, DirectionUp)
			results = append(results, result)
			if !result.Success {
				return fmt.Errorf("migration %d (%s) başarısız: %s", m.Version, m.Name, result.Error)
			}
		}
		return nil
	})

	log.Info().Int("applied", countSuccess(results)).Msg("Migration up tamamlandı")
	return results, err
}

// Down target'tan büyük uygulanmış migration'ları yeniden eskiye geri alır
func (r *Runner) Down(ctx context.Context, target int64) ([]Result, error) {
	var results []Result
	err := r.withLock(ctx, func() error {
		migrations, err := r.load(ctx)
		if err != nil {
			return err
		}

		for i := len(migrations) - 1; i >= 0; i-- {
			m := migrations[i]
			if !m.Applied {
				continue
			}
			if m.Version <= target {
				break
			}
			if !m.HasDownFile {
				if r.config.RequireDownFiles {
					return fmt.Errorf("migration %d için down dosyası yok", m.Version)
				}
				log.Warn().Int64("version", m.Version).Msg("Down dosyası yok, atlanıyor")
				continue
			}

			result := r.execute(ctx, m, DirectionDown)
			results = append(results, result)
			if !result.Success {
				return fmt.Errorf("migration %d (%s) geri alınamadı: %s", m.Version, m.Name, result.Error)
			}
		}
		return nil
	})

	log.Info().Int("reverted", countSuccess(results)).Int64("target", target).Msg("Migration down tamamlandı")
	return results, err
}

// Rollback son uygulanmış migration'ı geri alır
func (r *Runner) Rollback(ctx context.Context) ([]Result, error) {
	status, err := r.Status(ctx)
	if err != nil {
		return nil, err
	}

	var previous int64
	for _, m := range status.Migrations {
		if m.Applied && m.Version < status.CurrentVersion {
			previous = m.Version
		}
	}
	if status.CurrentVersion == 0 {
		return nil, nil
	}
	return r.Down(ctx, previous)
}

// execute tek migration'ı kendi transaction'ında çalıştırır
func (r *Runner) execute(ctx context.Context, m Migration, direction Direction) Result {
	start := time.Now()
	result := Result{Version: m.Version, Name: m.Name, Direction: direction}

	sqlText := m.UpSQL
	if direction == DirectionDown {
		sqlText = m.DownSQL
	}
	statements := splitStatements(sqlText)
	if len(statements) == 0 {
		result.Error = "çalıştırılacak SQL yok"
		return result
	}
	result.Statements = len(statements)

	if r.config.DryRun {
		result.Success = true
		result.DryRun = true
		log.Info().Int64("version", m.Version).Str("direction", string(direction)).Msg("DRY RUN: migration uygulanmadı")
		return result
	}

	txCtx, cancel := context.WithTimeout(ctx, r.config.TransactionTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(txCtx, nil)
	if err != nil {
		result.Error = fmt.Sprintf("transaction başlatılamadı: %v", err)
		return result
	}
	defer tx.Rollback()

	for i, stmt := range statements {
		res, err := tx.ExecContext(txCtx, stmt)
		if err != nil {
			result.Error = fmt.Sprintf("statement %d: %v", i+1, err)
			return result
		}
		if n, err := res.RowsAffected(); err == nil {
			result.AffectedRows += n
		}
	}

	if direction == DirectionUp {
		err = r.recordInTx(txCtx, tx, m, time.Since(start))
	} else {
		err = r.deleteInTx(txCtx, tx, m.Version)
	}
	if err != nil {
		result.Error = fmt.Sprintf("takip tablosu güncellenemedi: %v", err)
		return result
	}

	if err := tx.Commit(); err != nil {
		result.Error = fmt.Sprintf("commit hatası: %v", err)
		return result
	}

	result.Success = true
	result.ExecutionTime = time.Since(start)
	if r.config.Verbose {
		log.Info().
			Int64("version", m.Version).
			Str("name", m.Name).
			Str("direction", string(direction)).
			Dur("duration", result.ExecutionTime).
			Msg("Migration çalıştırıldı")
	}
	return result
}

func countSuccess(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}

// splitStatements SQL metnini ';' ile böler. Tek tırnak, $tag$ blokları ve
// yorumlar içindeki ';' bölmez.
func splitStatements(sqlText string) []string {
	s := &sqlScanner{src: sqlText}
	return s.split()
}

type sqlScanner struct {
	src  string
	pos  int
	buf  strings.Builder
	out  []string
	dtag string // aktif dollar-quote etiketi ("$$", "$body$")
}

func (s *sqlScanner) split() []string {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case s.dtag != "":
			if strings.HasPrefix(s.src[s.pos:], s.dtag) {
				s.take(len(s.dtag))
				s.dtag = ""
				continue
			}
			s.take(1)
		case strings.HasPrefix(s.src[s.pos:], "--"):
			s.takeUntil("\n")
		case strings.HasPrefix(s.src[s.pos:], "/*"):
			s.takeUntil("*/")
		case c == '\'':
			s.takeQuoted()
		case c == '$':
			if tag := s.dollarTag(); tag != "" {
				s.dtag = tag
				s.take(len(tag))
				continue
			}
			s.take(1)
		case c == ';':
			s.flush()
			s.pos++
		default:
			s.take(1)
		}
	}
	s.flush()
	return s.out
}

func (s *sqlScanner) take(n int) {
	if s.pos+n > len(s.src) {
		n = len(s.src) - s.pos
	}
	s.buf.WriteString(s.src[s.pos : s.pos+n])
	s.pos += n
}

// takeUntil bitiş işaretine kadar (dahil) okur
func (s *sqlScanner) takeUntil(end string) {
	idx := strings.Index(s.src[s.pos+1:], end)
	if idx < 0 {
		s.take(len(s.src) - s.pos)
		return
	}
	s.take(idx + 1 + len(end))
}

// takeQuoted '...' string'ini okur, '' kaçışını destekler
func (s *sqlScanner) takeQuoted() {
	s.take(1)
	for s.pos < len(s.src) {
		if s.src[s.pos] == '\'' {
			if s.pos+1 < len(s.src) && s.src[s.pos+1] == '\'' {
				s.take(2)
				continue
			}
			s.take(1)
			return
		}
		s.take(1)
	}
}

// dollarTag pozisyondaki $tag$ etiketini döner; $1 gibi parametrelerde boş
func (s *sqlScanner) dollarTag() string {
	j := s.pos + 1
	for j < len(s.src) {
		ch := s.src[j]
		if ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9' && j > s.pos+1) {
			j++
			continue
		}
		break
	}
	if j < len(s.src) && s.src[j] == '$' {
		return s.src[s.pos : j+1]
	}
	return ""
}

func (s *sqlScanner) flush() {
	stmt := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	if stmt != "" && !onlyComments(stmt) {
		s.out = append(s.out, stmt)
	}
}

// onlyComments yorumdan ibaret parçaları atlamak için
func onlyComments(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}
