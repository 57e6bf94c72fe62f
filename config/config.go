package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alekLukanen/dsutils/arrowOps"
	"github.com/alekLukanen/errs"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound is returned when the config file does not exist.
	// Callers fall back to Default().
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigInvalid  = errors.New("config invalid")
)

const (
	DefaultConfigFileName = "dsutils.yaml"

	EnvS3Key         = "DSUTILS_S3_KEY"
	EnvS3Secret      = "DSUTILS_S3_SECRET"
	EnvRedisPassword = "DSUTILS_REDIS_PASSWORD"
)

type SplitConfig struct {
	Ratio     float64 `yaml:"ratio"`
	Seed      int64   `yaml:"seed"`
	SaveTo    bool    `yaml:"save_to"`
	OutputDir string  `yaml:"output_dir"`
	Format    string  `yaml:"format"`
	TrainName string  `yaml:"train_name"`
	TestName  string  `yaml:"test_name"`
}

type LoaderConfig struct {
	Delimiter  string   `yaml:"delimiter"`
	NullValues []string `yaml:"null_values,omitempty"`
}

type ObjectStorageConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	Region       string `yaml:"region"`
	AuthKey      string `yaml:"auth_key,omitempty"`
	AuthSecret   string `yaml:"auth_secret,omitempty"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

type KeyStorageConfig struct {
	Address      string `yaml:"address,omitempty"`
	Password     string `yaml:"password,omitempty"`
	KeyPrefix    string `yaml:"key_prefix"`
	LockDuration string `yaml:"lock_duration"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Split         SplitConfig         `yaml:"split"`
	Loader        LoaderConfig        `yaml:"loader"`
	ObjectStorage ObjectStorageConfig `yaml:"object_storage"`
	KeyStorage    KeyStorageConfig    `yaml:"key_storage"`
	Logging       LoggingConfig       `yaml:"logging"`
}

func Default() *Config {
	return &Config{
		Split: SplitConfig{
			Ratio:     0.7,
			Seed:      42,
			SaveTo:    true,
			OutputDir: ".",
			Format:    string(arrowops.FormatCSV),
			TrainName: "training",
			TestName:  "testing",
		},
		Loader: LoaderConfig{
			Delimiter: ",",
		},
		ObjectStorage: ObjectStorageConfig{
			Region: "us-east-1",
		},
		KeyStorage: KeyStorageConfig{
			KeyPrefix:    "dsutils",
			LockDuration: "5m",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

/*
* Reads the yaml file at configPath on top of the defaults. Keys missing
* from the file keep their default value.
 */
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.NewStackError(fmt.Errorf("config file: %s", configPath)), ErrConfigNotFound)
		}
		return nil, errs.NewStackError(err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errs.Wrap(errs.NewStackError(fmt.Errorf("decoding %s: %w", configPath, err)), ErrConfigInvalid)
	}
	return cfg, nil
}

/*
* Loads a .env file from the working directory when one exists and
* copies secrets from the environment into the config.
 */
func (obj *Config) LoadEnv() {
	_ = godotenv.Load()
	obj.ApplyEnv()
}

func (obj *Config) ApplyEnv() {
	if val, ok := os.LookupEnv(EnvS3Key); ok {
		obj.ObjectStorage.AuthKey = val
	}
	if val, ok := os.LookupEnv(EnvS3Secret); ok {
		obj.ObjectStorage.AuthSecret = val
	}
	if val, ok := os.LookupEnv(EnvRedisPassword); ok {
		obj.KeyStorage.Password = val
	}
}

/*
* Checks the settings used to build the storage and writer layers.
* split.ratio and split.seed are checked by the split itself.
 */
func (obj *Config) Validate() error {
	if _, err := arrowops.ParseFormat(obj.Split.Format); err != nil {
		return errs.Wrap(errs.NewStackError(fmt.Errorf("split.format %q", obj.Split.Format)), ErrConfigInvalid, err)
	}
	if obj.Split.TrainName != "" && obj.Split.TrainName == obj.Split.TestName {
		return errs.Wrap(errs.NewStackError(fmt.Errorf("split.train_name and split.test_name are equal")), ErrConfigInvalid)
	}
	if _, err := obj.Delimiter(); err != nil {
		return err
	}
	if _, err := obj.LockDuration(); err != nil {
		return err
	}
	if _, err := obj.LogLevel(); err != nil {
		return err
	}
	return nil
}

func (obj *Config) Delimiter() (rune, error) {
	delim := obj.Loader.Delimiter
	if delim == `\t` {
		delim = "\t"
	}
	if delim == "" {
		return ',', nil
	}
	if utf8.RuneCountInString(delim) != 1 {
		return 0, errs.Wrap(errs.NewStackError(fmt.Errorf("loader.delimiter must be a single character: %q", obj.Loader.Delimiter)), ErrConfigInvalid)
	}
	r, _ := utf8.DecodeRuneInString(delim)
	return r, nil
}

func (obj *Config) LockDuration() (time.Duration, error) {
	if obj.KeyStorage.LockDuration == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(obj.KeyStorage.LockDuration)
	if err != nil || d < 0 {
		return 0, errs.Wrap(errs.NewStackError(fmt.Errorf("key_storage.lock_duration: %q", obj.KeyStorage.LockDuration)), ErrConfigInvalid)
	}
	return d, nil
}

func (obj *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(obj.Logging.Level))); err != nil {
		return slog.LevelInfo, errs.Wrap(errs.NewStackError(fmt.Errorf("logging.level: %q", obj.Logging.Level)), ErrConfigInvalid)
	}
	return level, nil
}
