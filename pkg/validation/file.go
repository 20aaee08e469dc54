package validation

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"cert-system/config"
)

// ValidateFile проверяет размер и MIME-тип файла
// contextName - ключ из config.UploadContexts
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("внутренняя ошибка: неизвестный контекст загрузки '%s'", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return fmt.Errorf("размер файла (%.2f MB) превышает лимит в %d MB", float64(fileHeader.Size)/1024/1024, rules.MaxSizeMB)
		}
	}

	mimeType, err := DetectMimeType(file)
	if err != nil {
		return err
	}

	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return fmt.Errorf("недопустимый формат файла: %s", mimeType)
	}

	return nil
}

// DetectMimeType читает первые 512 байт и возвращает курсор в начало.
func DetectMimeType(file io.ReadSeeker) (string, error) {
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("ошибка чтения файла")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("ошибка обработки файла")
	}
	return SniffMimeType(buffer[:n]), nil
}

// SniffMimeType определяет тип по сигнатуре. SVG часто определяется как text/plain.
func SniffMimeType(head []byte) string {
	mimeType := http.DetectContentType(head)
	if isPossibleXml(mimeType) && isSvgSignature(head) {
		mimeType = "image/svg+xml"
	}
	return mimeType
}

func isPossibleXml(mime string) bool {
	return mime == "text/plain; charset=utf-8" ||
		mime == "text/xml; charset=utf-8" ||
		mime == "application/octet-stream"
}

func isSvgSignature(buf []byte) bool {
	trimmed := bytes.TrimSpace(buf)
	return bytes.HasPrefix(trimmed, []byte("<svg")) || bytes.HasPrefix(trimmed, []byte("<?xml"))
}
