package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// 20260101000001_create_schema.up.sql
var fileNamePattern = regexp.MustCompile(`^(\d{14})_([a-z0-9_]+)\.(up|down)\.sql$`)

var namePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// LoadFiles kaynaktaki migration'ları version sırasıyla döner
func (r *Runner) LoadFiles() ([]Migration, error) {
	upFiles, err := fs.Glob(r.source, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("migration dosyaları listelenemedi: %w", err)
	}

	migrations := make([]Migration, 0, len(upFiles))
	seen := make(map[int64]string, len(upFiles))
	for _, upFile := range upFiles {
		m, err := r.parseFile(upFile)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[m.Version]; dup {
			return nil, fmt.Errorf("aynı version iki kez tanımlı: %s ve %s", other, upFile)
		}
		seen[m.Version] = upFile
		migrations = append(migrations, m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	if r.config.Verbose {
		log.Info().Int("count", len(migrations)).Msg("Migration dosyaları okundu")
	}
	return migrations, nil
}

func (r *Runner) parseFile(upFile string) (Migration, error) {
	matches := fileNamePattern.FindStringSubmatch(upFile)
	if matches == nil {
		return Migration{}, fmt.Errorf("geçersiz migration dosya adı: %s", upFile)
	}

	version, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return Migration{}, fmt.Errorf("geçersiz version %s: %w", matches[1], err)
	}

	up, err := fs.ReadFile(r.source, upFile)
	if err != nil {
		return Migration{}, fmt.Errorf("%s okunamadı: %w", upFile, err)
	}

	m := Migration{
		Version:     version,
		Name:        matches[2],
		UpSQL:       string(up),
		UpChecksum:  checksum(up),
		Description: firstComment(string(up)),
	}

	downFile := strings.TrimSuffix(upFile, ".up.sql") + ".down.sql"
	down, err := fs.ReadFile(r.source, downFile)
	switch {
	case err == nil:
		m.DownSQL = string(down)
		m.DownChecksum = checksum(down)
		m.HasDownFile = true
	case r.config.RequireDownFiles:
		return Migration{}, fmt.Errorf("down dosyası zorunlu ama bulunamadı: %s", downFile)
	}

	return m, nil
}

// Create yeni up/down dosya çifti oluşturur, up dosyasının yolunu döner
func (r *Runner) Create(name string, now time.Time) (string, error) {
	name = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, " ", "_")))
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf("migration adı sadece küçük harf, rakam ve _ içerebilir: %q", name)
	}

	if err := os.MkdirAll(r.config.MigrationsPath, 0o755); err != nil {
		return "", fmt.Errorf("migration klasörü oluşturulamadı: %w", err)
	}

	base := fmt.Sprintf("%s_%s", now.UTC().Format("20060102150405"), name)
	upPath := filepath.Join(r.config.MigrationsPath, base+".up.sql")
	downPath := filepath.Join(r.config.MigrationsPath, base+".down.sql")

	files := map[string]string{
		upPath:   fmt.Sprintf("-- %s\n\n", strings.ReplaceAll(name, "_", " ")),
		downPath: fmt.Sprintf("-- %s geri al\n\n", strings.ReplaceAll(name, "_", " ")),
	}
	for path, content := range files {
		// O_EXCL: aynı saniyede aynı isim varsa üzerine yazma
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return "", fmt.Errorf("%s oluşturulamadı: %w", path, err)
		}
		_, werr := f.WriteString(content)
		cerr := f.Close()
		if werr != nil {
			return "", werr
		}
		if cerr != nil {
			return "", cerr
		}
	}

	return upPath, nil
}

func checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// firstComment dosya başındaki ilk "--" yorumunu açıklama olarak alır
func firstComment(sqlText string) string {
	for _, line := range strings.Split(sqlText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if desc, ok := strings.CutPrefix(line, "--"); ok {
			return strings.TrimSpace(desc)
		}
		return ""
	}
	return ""
}
