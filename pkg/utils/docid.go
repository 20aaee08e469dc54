package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewDocumentID формирует идентификатор вида YYMMDD-XXXXXXXX (8 hex-символов).
func NewDocumentID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return now.Format("060102") + "-" + suffix
}
