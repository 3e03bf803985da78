package commands

import (
	"sitepulse-backend/lib/configutil"
	"sitepulse-backend/lib/serviceutil"
)

type Config struct {
	// url of the zip archive with the website snapshots
	URL      string `json:"url"`
	Archive  string `json:"archive"`
	UnzipDir string `json:"unzip_dir"`
	CSV      string `json:"csv"`
	Database string `json:"database"`
}

func mustLoadConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config.json5", err)
	}
	if cfg.Archive == "" {
		cfg.Archive = "./resources/scrapes.zip"
	}
	if cfg.UnzipDir == "" {
		cfg.UnzipDir = "./resources/unzipped"
	}
	if cfg.CSV == "" {
		cfg.CSV = "./resources/output.csv"
	}
	if cfg.Database == "" {
		cfg.Database = "./resources/sitepulse.db"
	}
	return cfg
}
