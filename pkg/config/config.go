// Package config server and preprocessing settings: command line flags laid over an optional
// yaml file laid over defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"campusnav/indoornav/pkg/engine/floorpath"
	"campusnav/indoornav/pkg/engine/routingalgorithm"

	"gopkg.in/yaml.v3"
)

const (
	StorePebble = "pebble"
	StoreJSON   = "json"
)

type Config struct {
	ListenAddr    string                              `yaml:"listen_addr"`
	Store         string                              `yaml:"store"`
	DBPath        string                              `yaml:"db_path"`
	DataDir       string                              `yaml:"data_dir"`
	BuildingsFile string                              `yaml:"buildings_file"`
	FloorPlanFile string                              `yaml:"floor_plan_file"`
	MaxFloorPaths int                                 `yaml:"max_floor_paths"`
	OutsideFloor  string                              `yaml:"outside_floor"`
	Cache         bool                                `yaml:"cache"`
	LogLevel      string                              `yaml:"log_level"`
	LogFormat     string                              `yaml:"log_format"`
	CORSOrigins   []string                            `yaml:"cors_origins"`
	Outdoor       routingalgorithm.OutdoorMultipliers `yaml:"outdoor_multipliers"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:    ":5000",
		Store:         StorePebble,
		DBPath:        "indoornavDB",
		DataDir:       "data",
		MaxFloorPaths: floorpath.DefaultMaxPaths,
		OutsideFloor:  "outside-1",
		Cache:         true,
		LogLevel:      "info",
		LogFormat:     "text",
		CORSOrigins:   []string{"https://*", "http://*"},
		Outdoor:       routingalgorithm.DefaultOutdoorMultipliers(),
	}
}

// LoadFile overlays the yaml file at path on cfg. unknown keys are rejected.
func LoadFile(cfg Config, path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("YAML syntax error in config %s: %w", path, err)
	}
	return cfg, nil
}

// Load parses args (without the program name). a -config file is read first, flags given
// explicitly on the command line win over it.
func Load(name string, args []string) (Config, error) {
	def := DefaultConfig()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configFile := fs.String("config", "", "yaml config file")
	listenAddr := fs.String("listenaddr", def.ListenAddr, "server listen address")
	store := fs.String("store", def.Store, "floor graph store backend: pebble or json")
	dbPath := fs.String("db", def.DBPath, "pebble database directory")
	dataDir := fs.String("data", def.DataDir, "directory with <floorId>-graph.json files")
	buildings := fs.String("buildings", def.BuildingsFile, "building code -> entrance room ids json file")
	floorPlan := fs.String("floorplan", def.FloorPlanFile, "high level floor adjacency json file")
	maxPaths := fs.Int("maxpaths", def.MaxFloorPaths, "floor paths kept by the floor path search")
	logLevel := fs.String("loglevel", def.LogLevel, "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return def, err
	}

	cfg := def
	if *configFile != "" {
		var err error
		cfg, err = LoadFile(cfg, *configFile)
		if err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listenaddr":
			cfg.ListenAddr = *listenAddr
		case "store":
			cfg.Store = *store
		case "db":
			cfg.DBPath = *dbPath
		case "data":
			cfg.DataDir = *dataDir
		case "buildings":
			cfg.BuildingsFile = *buildings
		case "floorplan":
			cfg.FloorPlanFile = *floorPlan
		case "maxpaths":
			cfg.MaxFloorPaths = *maxPaths
		case "loglevel":
			cfg.LogLevel = *logLevel
		}
	})

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StorePebble:
		if c.DBPath == "" {
			errs = append(errs, errors.New("db_path is required for the pebble store"))
		}
	case StoreJSON:
		if c.DataDir == "" {
			errs = append(errs, errors.New("data_dir is required for the json store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	if c.MaxFloorPaths < 2 {
		errs = append(errs, fmt.Errorf("max_floor_paths must be at least 2, got %d", c.MaxFloorPaths))
	}
	if c.Outdoor.Indoor < 0 || c.Outdoor.Outdoor < 0 {
		errs = append(errs, errors.New("outdoor_multipliers must not be negative"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("unknown log_format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return lvl, fmt.Errorf("unknown log_level %q", s)
	}
	return lvl, nil
}

// NewLogger slog logger writing to w in the configured format and level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
