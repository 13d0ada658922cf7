// Package storage 保存学生上传的提交文件。
// 文件按提交日期落盘（submissions/YYYY/MM/DD/），对外只暴露 URL 引用。
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"assignhub/backend/config"
)

// Store 提交文件存储接口
type Store interface {
	// Save 写入文件，返回（相对路径, 访问 URL）
	Save(r io.Reader, filename string, now time.Time) (string, string, error)
}

// LocalStore 本地磁盘实现，对应 media 目录
type LocalStore struct {
	root      string
	urlPrefix string
}

// NewLocalStore 创建 LocalStore 并确保根目录存在
func NewLocalStore(cfg *config.StorageConfig) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.MediaRoot, 0o755); err != nil {
		return nil, fmt.Errorf("创建 media 目录失败: %w", err)
	}
	return &LocalStore{
		root:      cfg.MediaRoot,
		urlPrefix: strings.TrimRight(cfg.MediaURL, "/"),
	}, nil
}

func (s *LocalStore) Save(r io.Reader, filename string, now time.Time) (string, string, error) {
	relDir := filepath.Join("submissions", now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(filepath.Join(s.root, relDir), 0o755); err != nil {
		return "", "", fmt.Errorf("创建上传目录失败: %w", err)
	}

	// 文件名加随机前缀，避免同日同名覆盖
	name := uuid.New().String()[:8] + "_" + sanitizeFilename(filename)
	relPath := filepath.Join(relDir, name)

	f, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", "", fmt.Errorf("创建上传文件失败: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", "", fmt.Errorf("写入上传文件失败: %w", err)
	}

	url := s.urlPrefix + "/" + filepath.ToSlash(relPath)
	return relPath, url, nil
}

// sanitizeFilename 去除路径分隔符等危险字符，只保留文件名本体
func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "upload"
	}
	return name
}
