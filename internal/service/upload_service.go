package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/siisjewelry/siis-api/internal/config"
	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/logger"
)

var allowedUploadScenes = map[string]struct{}{
	constants.UploadSceneProduct: {},
	constants.UploadSceneCommon:  {},
}

// UploadService 文件上传服务
type UploadService struct {
	cfg *config.Config
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// SaveImages 批量保存商品图片。先整体校验再落盘，
// 任何一张不合法时整批拒绝，不留下半套文件。
// 返回的 URL 顺序与入参一致
func (s *UploadService) SaveImages(files []*multipart.FileHeader, scene string) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	if len(files) > s.maxImages() {
		return nil, ErrTooManyImages
	}
	for _, file := range files {
		if err := s.validateImage(file); err != nil {
			return nil, err
		}
	}

	normalizedScene := normalizeUploadScene(scene)
	batch := time.Now().UnixMilli()

	urls := make([]string, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(index int, file *multipart.FileHeader) {
			defer wg.Done()
			urls[index], errs[index] = s.saveOne(file, normalizedScene, batch, index)
		}(i, file)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			// 批次失败时回收已写入的文件
			for _, url := range urls {
				if url != "" {
					s.DeleteImageByURL(url)
				}
			}
			return nil, err
		}
	}
	return urls, nil
}

// SaveImage 保存单张图片
func (s *UploadService) SaveImage(file *multipart.FileHeader, scene string) (string, error) {
	urls, err := s.SaveImages([]*multipart.FileHeader{file}, scene)
	if err != nil {
		return "", err
	}
	return urls[0], nil
}

// DeleteImageByURL 按公开 URL 删除本地文件。
// 删除失败只记录日志，不影响调用方流程
func (s *UploadService) DeleteImageByURL(url string) {
	path := localPathFromURL(url)
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warnw("upload_delete_failed", "path", path, "error", err.Error())
	}
}

func (s *UploadService) maxImages() int {
	if s.cfg.Upload.MaxImages > 0 {
		return s.cfg.Upload.MaxImages
	}
	return constants.MaxProductImages
}

func (s *UploadService) validateImage(file *multipart.FileHeader) error {
	if file.Size > s.cfg.Upload.MaxSize {
		return fmt.Errorf("%w: max %d MB", ErrUploadTooLarge, s.cfg.Upload.MaxSize/1024/1024)
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	// 读满头部 512 字节识别 MIME 类型，小文件按实际读到的长度识别
	buffer := make([]byte, 512)
	n, err := io.ReadFull(src, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}
	contentType := http.DetectContentType(buffer[:n])
	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: %s", ErrUploadTypeInvalid, contentType)
		}
	}
	return nil
}

func (s *UploadService) saveOne(file *multipart.FileHeader, scene string, batch int64, index int) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := fmt.Sprintf("%d_%d_%s", batch, index, sanitizeFilename(file.Filename))
	savePath := filepath.Join("uploads", scene, filename)
	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s", scene, filename), nil
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return constants.UploadSceneCommon
}

// sanitizeFilename 去掉路径成分与空白，避免目录穿越
func sanitizeFilename(raw string) string {
	name := filepath.Base(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "image"
	}
	return name
}

// localPathFromURL 将公开 URL 还原为本地相对路径，非本站上传返回空串
func localPathFromURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if idx := strings.Index(url, "/uploads/"); idx >= 0 {
		url = url[idx:]
	}
	if !strings.HasPrefix(url, "/uploads/") {
		return ""
	}
	cleaned := filepath.Clean(strings.TrimPrefix(url, "/"))
	if !strings.HasPrefix(cleaned, "uploads"+string(filepath.Separator)) {
		return ""
	}
	return cleaned
}
