package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type storage struct {
	Dir string `mapstructure:"dir"`
}

type catalog struct {
	FixtureFile string        `mapstructure:"fixture_file"`
	LoadDelay   time.Duration `mapstructure:"load_delay"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Storage        storage    `mapstructure:"storage"`
	Catalog        catalog    `mapstructure:"catalog"`
}

// Load reads the config file named by the --config flag or the
// STOREFRONT_CONFIG_FILE env var. A missing file is fine: every
// field has a default suited to a local session.
func Load() Config {
	cfg, err := loadFrom(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func loadFrom(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configFile)

	err := v.ReadInConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	// Viper's default hooks cover durations only; the text hook lets
	// slog.Level values like "INFO" decode.
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	))

	var cfg Config
	err = v.UnmarshalExact(&cfg, decodeHook)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
	v.SetDefault("http_server_addr", "localhost:8080")
	v.SetDefault("storage.dir", ".storefront")
	v.SetDefault("catalog.fixture_file", "")
	v.SetDefault("catalog.load_delay", "800ms")
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Storage:
	Dir=%q

	Catalog:
	FixtureFile=%q
	LoadDelay=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Storage.Dir,
		c.Catalog.FixtureFile,
		c.Catalog.LoadDelay,
	)
}
