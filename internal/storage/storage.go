package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ObjectStorage 对象存储协作方接口。
// Put 写入成功后返回可对外访问的 URL。
type ObjectStorage interface {
	Put(key string, data []byte, contentType string) (string, error)
	Remove(key string) error
}

// LocalStorage 本地磁盘实现
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage 创建本地存储
func NewLocalStorage(dir, baseURL string) *LocalStorage {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "uploads"
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStorage{dir: dir, baseURL: baseURL}
}

// Put 写入文件并返回访问 URL
func (s *LocalStorage) Put(key string, data []byte, contentType string) (string, error) {
	cleaned, err := s.cleanKey(key)
	if err != nil {
		return "", err
	}
	_ = contentType // 本地存储不需要内容类型，接口为兼容远端实现保留

	path := filepath.Join(s.dir, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + cleaned, nil
}

// Remove 删除文件；文件不存在视为成功
func (s *LocalStorage) Remove(key string) error {
	cleaned, err := s.cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.dir, filepath.FromSlash(cleaned)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// cleanKey 规范化 key 并阻止目录穿越
func (s *LocalStorage) cleanKey(key string) (string, error) {
	cleaned := strings.TrimLeft(filepath.ToSlash(filepath.Clean(strings.TrimSpace(key))), "/")
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, "/../") {
		return "", errors.New("invalid storage key")
	}
	return cleaned, nil
}
