package config

import (
	"os"
	"strconv"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// Generation status file and the directory of score lookup tables.
	StatusFilePath string
	TableDir       string

	AuthSecret string

	// Local reviewer login (bcrypt hash).
	ReviewerUser     string
	ReviewerPassHash string
	ReviewerRole     string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	// Generator worker.
	OpenAIKey      string
	OpenAIModel    string
	GenTotal       int
	GenBatchSize   int
	GenSchemaID    string
	GenSubject     string
	GenPollSeconds int
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:     mode,
		HTTPAddr: addr,

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		StatusFilePath: envOr("GEN_STATUS_FILE", "./data/generation_status.json"),
		TableDir:       envOr("TABLE_DIR", "./data/tables"),

		AuthSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		ReviewerUser:     envOr("REVIEWER_USER", "reviewer"),
		ReviewerPassHash: envOr("REVIEWER_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		ReviewerRole:     envOr("REVIEWER_ROLE", "reviewer"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://trainer.nocalc.app"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:3010"),

		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    envOr("OPENAI_MODEL", "gpt-4o"),
		GenTotal:       envInt("GEN_TOTAL", 20),
		GenBatchSize:   envInt("GEN_BATCH_SIZE", 5),
		GenSchemaID:    envOr("GEN_SCHEMA_ID", "linear-equations-v1"),
		GenSubject:     envOr("GEN_SUBJECT", "Math"),
		GenPollSeconds: envInt("GEN_POLL_SECONDS", 5),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil && v > 0 {
		return v
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
