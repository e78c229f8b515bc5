package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lintang/busnavigator/pkg/engine/transit"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported config file format")

type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	Data   DataConfig   `yaml:"data" toml:"data"`
	Search SearchConfig `yaml:"search" toml:"search"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" toml:"listen_addr" validate:"required"`
	SwaggerURL string `yaml:"swagger_url" toml:"swagger_url" validate:"required"`
}

// DataConfig lokasi file input & pebble db. Map file boleh .osm.pbf, .osm, atau overpass .json.
type DataConfig struct {
	DBPath      string `yaml:"db_path" toml:"db_path" validate:"required"`
	CarMapFile  string `yaml:"car_map_file" toml:"car_map_file"`
	WalkMapFile string `yaml:"walk_map_file" toml:"walk_map_file"`
	RoutesFile  string `yaml:"routes_file" toml:"routes_file"`
	StopsFile   string `yaml:"stops_file" toml:"stops_file"`
	TripsFile   string `yaml:"trips_file" toml:"trips_file"`
}

// SearchConfig speed m/s, max walk meter.
type SearchConfig struct {
	CruisingSpeed   float64 `yaml:"cruising_speed" toml:"cruising_speed" validate:"gt=0"`
	WalkSpeed       float64 `yaml:"walk_speed" toml:"walk_speed" validate:"gt=0"`
	FareWeight      float64 `yaml:"fare_weight" toml:"fare_weight" validate:"gte=0"`
	WaitMultiplier  float64 `yaml:"wait_multiplier" toml:"wait_multiplier" validate:"gte=1"`
	MaxWalkDistance float64 `yaml:"max_walk_distance" toml:"max_walk_distance" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" validate:"oneof=json text"`
}

func Default() Config {
	params := transit.DefaultParams()
	return Config{
		Server: ServerConfig{
			ListenAddr: ":5000",
			SwaggerURL: "http://localhost:5000/swagger/doc.json",
		},
		Data: DataConfig{
			DBPath:      "busnavigatorDB",
			CarMapFile:  "hcmc_car.json",
			WalkMapFile: "hcmc_walk.json",
			RoutesFile:  "routes.csv",
			StopsFile:   "stops.csv",
			TripsFile:   "trips.csv",
		},
		Search: SearchConfig{
			CruisingSpeed:   params.CruisingSpeed,
			WalkSpeed:       params.WalkSpeed,
			FareWeight:      params.FareWeight,
			WaitMultiplier:  params.WaitMultiplier,
			MaxWalkDistance: 300,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load baca config yaml (.yaml/.yml) atau toml (.toml). Field yang gak diisi pakai nilai Default().
// path kosong = Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &cfg)
		case ".toml":
			err = toml.Unmarshal(data, &cfg)
		default:
			return Config{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
		}
		if err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c Config) SearchParams() transit.Params {
	return transit.Params{
		CruisingSpeed:  c.Search.CruisingSpeed,
		WalkSpeed:      c.Search.WalkSpeed,
		FareWeight:     c.Search.FareWeight,
		WaitMultiplier: c.Search.WaitMultiplier,
	}
}
