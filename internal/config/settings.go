package config

import (
	"github.com/caarlos0/env/v11"
)

// Settings are process-level options read from the environment.
type Settings struct {
	DataDir  string `env:"STREAMS3D_DATA" envDefault:".streams3d"`
	LogLevel string `env:"STREAMS3D_LOG_LEVEL" envDefault:"info"`
	Theme    string `env:"STREAMS3D_THEME" envDefault:"solar"`
	Workers  int    `env:"STREAMS3D_WORKERS" envDefault:"4"`
}

func LoadSettings() (Settings, error) {
	return env.ParseAs[Settings]()
}
