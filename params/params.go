package params

import "time"

const (
	ServerBodyLimit       = 64 * 1024 * 1024 // request body limit, must fit several attachment uploads
	ServerIdleTimeout     = 30 * time.Second
	ServerReadTimeout     = 60 * time.Second
	ServerWriteTimeout    = 10 * time.Second
	SMTPHost              = "smtp.gmail.com"
	SMTPPortSSL           = 465 // implicit TLS submission port
	SMTPDialTimeout       = 30 * time.Second
	MaxAttachmentSize     = 10 * 1024 * 1024 // per-file cap, oversized uploads are skipped with a warning
	PlaceholderSubject    = "No Subject"
	TempFilePrefix        = "stmail_"
	MongoDatabase         = "email_app"
	MongoCollection       = "defaults"
	MongoConnectTimeout   = 10 * time.Second
	SessionMaxAge         = 24 * time.Hour
	CSRFTokenExpiration   = 1 * time.Hour
	HealthCheckServerAddr = ":3001" // health check server address
)
