package names

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Resolver maps a peer public key to a display name. Resolution never
// fails; unmapped keys resolve to themselves.
type Resolver struct {
	byKey map[string]string
}

// Load builds a resolver from a names file. A `.json` file is read as a
// wg-easy config.json; `.yaml`/`.yml` as a flat publicKey-to-name map. An
// empty path or an unreadable/malformed file degrades to raw keys with a
// warning, it is never fatal.
func Load(path string) *Resolver {
	r := &Resolver{byKey: map[string]string{}}
	if path == "" {
		return r
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("names file unreadable, using raw peer keys", "path", path, "err", err)
		return r
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		r.byKey = parseWGEasyConfig(data)
	case ".yaml", ".yml":
		r.byKey = parseYAMLMap(data)
	default:
		slog.Warn("unsupported names file extension, using raw peer keys", "path", path)
	}
	return r
}

// LabelFor returns the display name for a peer key, or the key itself when
// no mapping exists.
func (r *Resolver) LabelFor(key string) string {
	if name, ok := r.byKey[key]; ok && name != "" {
		return name
	}
	return key
}

// wg-easy keeps clients in its config.json under
// {"clients": {"<id>": {"name": ..., "publicKey": ...}}}.
func parseWGEasyConfig(data []byte) map[string]string {
	var cfg struct {
		Clients map[string]struct {
			Name      string `json:"name"`
			PublicKey string `json:"publicKey"`
		} `json:"clients"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		slog.Warn("names file is not valid wg-easy config JSON, using raw peer keys", "err", err)
		return map[string]string{}
	}
	byKey := map[string]string{}
	for _, client := range cfg.Clients {
		if client.PublicKey != "" && client.Name != "" {
			byKey[client.PublicKey] = client.Name
		}
	}
	return byKey
}

func parseYAMLMap(data []byte) map[string]string {
	byKey := map[string]string{}
	if err := yaml.Unmarshal(data, &byKey); err != nil {
		slog.Warn("names file is not a valid YAML map, using raw peer keys", "err", err)
		return map[string]string{}
	}
	return byKey
}
