package dto

import "cert-system/pkg/filestorage"

type PreferencesDTO struct {
	LogoSize string       `json:"logo_size"`
	LastLogo *LastLogoDTO `json:"last_logo,omitempty"`
}

type UpdateLogoSizeDTO struct {
	LogoSize string `json:"logo_size" validate:"required,logo_size"`
}

// LastLogoDTO: метаданные последнего загруженного логотипа клиента.
type LastLogoDTO struct {
	URL        string `json:"url"`
	FileName   string `json:"file_name"`
	UploadedAt string `json:"uploaded_at"`
}

type LogoDTO struct {
	URL        string `json:"url"`
	FileName   string `json:"file_name"`
	FullPath   string `json:"full_path"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

func NewLogoDTO(f filestorage.StoredFile) LogoDTO {
	name := f.Path
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			name = name[i+1:]
			break
		}
	}
	return LogoDTO{
		URL:        f.URL,
		FileName:   name,
		FullPath:   f.Path,
		Size:       f.Size,
		ModifiedAt: f.ModifiedAt.Format("2006-01-02 15:04:05"),
	}
}

type GenerationDTO struct {
	Session    string `json:"session"`
	Generation int64  `json:"generation"`
}

type BootstrapResultDTO struct {
	Skipped bool           `json:"skipped"`
	Created map[string]int `json:"created"`
}

type StatusReportDTO struct {
	Collections map[string]uint64 `json:"collections"`
}

type ClearResultDTO struct {
	Deleted map[string]int64 `json:"deleted"`
}

type InitializeTemplatesResultDTO struct {
	Created int  `json:"created"`
	Skipped bool `json:"skipped"`
}
