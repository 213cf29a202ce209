package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	DiscordToken string
	DiscordGuild string

	// canal de voz de juego -> categoría donde se crean las salas de equipo
	GameChannels   map[string]string
	StaffChannelID string
	AdminRoleIDs   []string

	StorageBackend string // file | postgres
	DataDir        string
	DatabaseURL    string

	HTTPAddr string // vacío = sin status server
	LogLevel string
}

// Load lee el entorno; falla si falta algo requerido.
func Load() (Config, error) {
	var missing []string
	get := func(k string, req bool) string {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" && req {
			missing = append(missing, k)
		}
		return v
	}

	cfg := Config{
		DiscordToken:   get("DISCORD_BOT_TOKEN", true),
		DiscordGuild:   get("DISCORD_GUILD_ID", true),
		StaffChannelID: get("STAFF_CHANNEL_ID", true),
		AdminRoleIDs:   splitList(get("ADMIN_ROLE_IDS", false)),
		StorageBackend: strings.ToLower(get("STORAGE_BACKEND", false)),
		DataDir:        get("DATA_DIR", false),
		DatabaseURL:    get("DATABASE_URL", false),
		HTTPAddr:       get("HTTP_ADDR", false),
		LogLevel:       get("LOG_LEVEL", false),
	}
	games := get("GAME_CHANNELS", true)

	if cfg.StorageBackend == "" {
		cfg.StorageBackend = BackendFile
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.StorageBackend {
	case BackendFile:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND inválido: %q", cfg.StorageBackend)
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("faltante env %s", strings.Join(missing, ", "))
	}

	m, err := ParseGameChannels(games)
	if err != nil {
		return Config{}, err
	}
	cfg.GameChannels = m
	return cfg, nil
}

// ParseGameChannels: "voz1:cat1,voz2:cat2".
func ParseGameChannels(raw string) (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range splitList(raw) {
		voice, cat, ok := strings.Cut(pair, ":")
		voice, cat = strings.TrimSpace(voice), strings.TrimSpace(cat)
		if !ok || voice == "" || cat == "" {
			return nil, fmt.Errorf("GAME_CHANNELS: par inválido %q (se espera voz:categoría)", pair)
		}
		if _, dup := out[voice]; dup {
			return nil, fmt.Errorf("GAME_CHANNELS: canal repetido %s", voice)
		}
		out[voice] = cat
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("GAME_CHANNELS vacío")
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
