package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/caneca-next/internal/config"
	"github.com/caneca-next/internal/models"
	"github.com/caneca-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// memoryStorage 记录写入内容的对象存储替身
type memoryStorage struct {
	objects map[string][]byte
	lastKey string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Put(key string, data []byte, contentType string) (string, error) {
	s.objects[key] = append([]byte(nil), data...)
	s.lastKey = key
	return "https://files.test/" + key, nil
}

func (s *memoryStorage) Remove(key string) error {
	delete(s.objects, key)
	return nil
}

func setupUploadServiceTest(t *testing.T) (*UploadService, *memoryStorage, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.OrderService{}, &models.DesignUpload{}); err != nil {
		t.Fatalf("migrate upload tables failed: %v", err)
	}

	cfg := &config.Config{
		Upload: config.UploadConfig{
			MaxSize:           1 << 20,
			AllowedExtensions: []string{".png", ".jpg", ".jpeg", ".pdf"},
			AllowedTypes:      []string{"image/png", "image/jpeg", "application/pdf"},
		},
	}
	store := newMemoryStorage()
	svc := NewUploadService(cfg, store, repository.NewDesignUploadRepository(db), repository.NewOrderRepository(db))
	return svc, store, db
}

func createUploadOrder(t *testing.T, db *gorm.DB, orderNo string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:      orderNo,
		UserID:       1,
		CustomerName: "测试客户",
		Status:       "pending",
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

// makeFileHeader 通过 multipart 编解码构造真实的文件头
func makeFileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer failed: %v", err)
	}

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read multipart form failed: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	if len(files) != 1 {
		t.Fatalf("form file count want 1 got %d", len(files))
	}
	return files[0]
}

func pngPayload(size int) []byte {
	payload := []byte("\x89PNG\r\n\x1a\n")
	for len(payload) < size {
		payload = append(payload, 0x00)
	}
	return payload
}

func TestSaveDesignStoresFileAndRecord(t *testing.T) {
	svc, store, db := setupUploadServiceTest(t)
	order := createUploadOrder(t, db, "ORD-UPLOAD-1")

	payload := pngPayload(256)
	design, err := svc.SaveDesign(order.ID, makeFileHeader(t, "logo.PNG", payload))
	if err != nil {
		t.Fatalf("save design failed: %v", err)
	}

	if design.FileName != "logo.PNG" {
		t.Fatalf("file name want logo.PNG got %s", design.FileName)
	}
	if design.FileSize != int64(len(payload)) {
		t.Fatalf("file size want %d got %d", len(payload), design.FileSize)
	}
	if design.MimeType != "image/png" {
		t.Fatalf("mime type want image/png got %s", design.MimeType)
	}
	if !strings.HasPrefix(design.FileURL, "https://files.test/designs/") {
		t.Fatalf("file url want storage prefix got %s", design.FileURL)
	}
	if !strings.HasSuffix(store.lastKey, ".png") {
		t.Fatalf("storage key want .png suffix got %s", store.lastKey)
	}
	if !bytes.Equal(store.objects[store.lastKey], payload) {
		t.Fatalf("stored bytes differ from uploaded payload")
	}

	designs, err := svc.ListDesigns(order.ID)
	if err != nil {
		t.Fatalf("list designs failed: %v", err)
	}
	if len(designs) != 1 {
		t.Fatalf("design count want 1 got %d", len(designs))
	}
}

func TestSaveDesignRejectsOversizedFile(t *testing.T) {
	svc, _, db := setupUploadServiceTest(t)
	order := createUploadOrder(t, db, "ORD-UPLOAD-SIZE")

	payload := pngPayload(2 << 20)
	if _, err := svc.SaveDesign(order.ID, makeFileHeader(t, "big.png", payload)); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("oversized file want ErrFileTooLarge got %v", err)
	}
}

func TestSaveDesignRejectsDisallowedFile(t *testing.T) {
	svc, _, db := setupUploadServiceTest(t)
	order := createUploadOrder(t, db, "ORD-UPLOAD-TYPE")

	if _, err := svc.SaveDesign(order.ID, makeFileHeader(t, "design.exe", pngPayload(64))); !errors.Is(err, ErrFileTypeInvalid) {
		t.Fatalf("bad extension want ErrFileTypeInvalid got %v", err)
	}

	// 扩展名合法但内容嗅探为纯文本
	if _, err := svc.SaveDesign(order.ID, makeFileHeader(t, "fake.png", []byte("not an image at all"))); !errors.Is(err, ErrFileTypeInvalid) {
		t.Fatalf("mismatched content want ErrFileTypeInvalid got %v", err)
	}
}

func TestSaveDesignRequiresExistingOrder(t *testing.T) {
	svc, _, _ := setupUploadServiceTest(t)

	if _, err := svc.SaveDesign(999999, makeFileHeader(t, "logo.png", pngPayload(64))); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing order want ErrNotFound got %v", err)
	}
}

func TestRemoveDesignDeletesRecord(t *testing.T) {
	svc, _, db := setupUploadServiceTest(t)
	order := createUploadOrder(t, db, "ORD-UPLOAD-REMOVE")

	design, err := svc.SaveDesign(order.ID, makeFileHeader(t, "logo.png", pngPayload(64)))
	if err != nil {
		t.Fatalf("save design failed: %v", err)
	}
	if err := svc.RemoveDesign(design.ID); err != nil {
		t.Fatalf("remove design failed: %v", err)
	}
	if err := svc.RemoveDesign(design.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove removed design want ErrNotFound got %v", err)
	}
}
