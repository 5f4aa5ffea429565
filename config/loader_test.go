package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"plant-catalog/config"

	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"PLANTS_CONFIG",
	"PLANTS_ADDR",
	"PLANTS_DATABASE_URL",
	"PLANTS_LOG_LEVEL",
	"PLANTS_LOG_FORMAT",
	"PLANTS_MIGRATE_ON_START",
	"PLANTS_SHUTDOWN_TIMEOUT_MS",
	"PLANTS_MAX_BODY_BYTES",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then the defaults are returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5555")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.MigrateOnStart, convey.ShouldBeTrue)
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 1<<20)
				convey.So(cfg.ShutdownTimeout().Seconds(), convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When environment variables are set", func() {
			_ = os.Setenv("PLANTS_ADDR", ":8080")
			_ = os.Setenv("PLANTS_DATABASE_URL", "postgres://u:p@db:5432/plants")
			_ = os.Setenv("PLANTS_MIGRATE_ON_START", "false")
			_ = os.Setenv("PLANTS_SHUTDOWN_TIMEOUT_MS", "2500")

			cfg, err := config.Load()

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatabaseURL, convey.ShouldEqual, "postgres://u:p@db:5432/plants")
				convey.So(cfg.MigrateOnStart, convey.ShouldBeFalse)
				convey.So(cfg.ShutdownTimeoutMS, convey.ShouldEqual, 2500)
			})
		})

		convey.Convey("When a YAML file is provided", func() {
			path := filepath.Join(t.TempDir(), "plants.yaml")
			yamlContent := "addr: \":9090\"\nlog_format: json\nmax_body_bytes: 4096\n"
			convey.So(os.WriteFile(path, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("PLANTS_CONFIG", path)

			convey.Convey("Then file values apply", func() {
				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 4096)
			})

			convey.Convey("And env still wins over the file", func() {
				_ = os.Setenv("PLANTS_ADDR", ":7070")
				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("PLANTS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load()

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value is invalid", func() {
			_ = os.Setenv("PLANTS_LOG_FORMAT", "xml")

			_, err := config.Load()

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given default config", t, func() {
		cfg := config.New()

		convey.Convey("It is valid", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("An empty addr is rejected", func() {
			cfg.Addr = " "
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An empty database url is rejected", func() {
			cfg.DatabaseURL = ""
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
