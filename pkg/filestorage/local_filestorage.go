package filestorage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoredFile описывает файл в хранилище.
type StoredFile struct {
	Path       string    `json:"path"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
	List(prefix string) ([]StoredFile, error)
	Open(filePath string) (io.ReadCloser, error)
}

// URLPrefix: путь, под которым статика отдаётся HTTP-сервером.
const URLPrefix = "/uploads/"

type LocalFileStorage struct {
	basePath string
	now      func() time.Time
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию: %w", err)
		}
	}
	return &LocalFileStorage{basePath: basePath, now: time.Now}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	now := s.now()
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.New().String(), ext)

	datePath := now.Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)

	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, datePath, uniqueFileName)), nil
}

// resolve принимает и относительный путь, и URL вида "/uploads/..."
// Пути за пределами basePath отклоняются.
func (s *LocalFileStorage) resolve(filePath string) (string, error) {
	relativePath := strings.TrimPrefix(filePath, URLPrefix)
	relativePath = strings.TrimPrefix(relativePath, "/")
	cleaned := filepath.Clean(filepath.FromSlash(relativePath))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("недопустимый путь к файлу: %s", filePath)
	}
	return filepath.Join(s.basePath, cleaned), nil
}

func (s *LocalFileStorage) Delete(filePath string) error {
	fullPath, err := s.resolve(filePath)
	if err != nil {
		return err
	}

	// Если файла и так нет, считаем операцию успешной.
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(fullPath)
}

// List возвращает файлы под prefix, новые первыми.
func (s *LocalFileStorage) List(prefix string) ([]StoredFile, error) {
	root := filepath.Join(s.basePath, prefix)
	files := make([]StoredFile, 0)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return files, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		files = append(files, StoredFile{
			Path:       rel,
			URL:        URLPrefix + rel,
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModifiedAt.Equal(files[j].ModifiedAt) {
			return files[i].Path > files[j].Path
		}
		return files[i].ModifiedAt.After(files[j].ModifiedAt)
	})
	return files, nil
}

func (s *LocalFileStorage) Open(filePath string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(filePath)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}
