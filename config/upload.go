package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
}

const UploadContextCompanyLogo = "company_logo"

var UploadContexts = map[string]UploadConfig{
	UploadContextCompanyLogo: {
		AllowedMimeTypes: []string{"image/png", "image/jpeg", "image/svg+xml", "image/webp"},
		MaxSizeMB:        5,
		PathPrefix:       "logos",
	},
}
