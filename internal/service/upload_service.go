package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/caneca-next/internal/config"
	"github.com/caneca-next/internal/models"
	"github.com/caneca-next/internal/repository"
	"github.com/caneca-next/internal/storage"

	"github.com/google/uuid"
)

// UploadService 设计稿上传服务。
// 校验大小、扩展名与嗅探到的 MIME 类型后写入对象存储，
// 并落库一条上传记录（文件字节数取实际读到的长度）。
type UploadService struct {
	cfg        *config.Config
	store      storage.ObjectStorage
	designRepo repository.DesignUploadRepository
	orderRepo  repository.OrderRepository
}

// NewUploadService 创建设计稿上传服务
func NewUploadService(cfg *config.Config, store storage.ObjectStorage, designRepo repository.DesignUploadRepository, orderRepo repository.OrderRepository) *UploadService {
	return &UploadService{
		cfg:        cfg,
		store:      store,
		designRepo: designRepo,
		orderRepo:  orderRepo,
	}
}

// SaveDesign 保存订单设计稿
func (s *UploadService) SaveDesign(orderID uint, file *multipart.FileHeader) (*models.DesignUpload, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	if file == nil || file.Size == 0 {
		return nil, ErrEmptyFile
	}
	if s.cfg.Upload.MaxSize > 0 && file.Size > s.cfg.Upload.MaxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return nil, ErrFileTypeInvalid
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	contentType := http.DetectContentType(data)
	if len(s.cfg.Upload.AllowedTypes) > 0 && !isAllowedContentType(contentType, s.cfg.Upload.AllowedTypes) {
		return nil, ErrFileTypeInvalid
	}

	key := fmt.Sprintf("designs/%d/%s%s", orderID, uuid.New().String(), ext)
	url, err := s.store.Put(key, data, contentType)
	if err != nil {
		return nil, err
	}

	design := &models.DesignUpload{
		OrderID:  orderID,
		FileName: filepath.Base(file.Filename),
		FileURL:  url,
		FileSize: int64(len(data)),
		MimeType: contentType,
	}
	if err := s.designRepo.Create(design); err != nil {
		return nil, err
	}
	return design, nil
}

// ListDesigns 查询订单设计稿
func (s *UploadService) ListDesigns(orderID uint) ([]models.DesignUpload, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return s.designRepo.ListByOrder(orderID)
}

// RemoveDesign 删除设计稿记录
func (s *UploadService) RemoveDesign(id uint) error {
	design, err := s.designRepo.GetByID(id)
	if err != nil {
		return err
	}
	if design == nil {
		return ErrNotFound
	}
	return s.designRepo.Delete(id)
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if !strings.HasPrefix(a, ".") {
			a = "." + a
		}
		if a == ext {
			return true
		}
	}
	return false
}

func isAllowedContentType(contentType string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), contentType) {
			return true
		}
	}
	return false
}
