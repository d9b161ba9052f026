package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/swimtab/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.InputDir, convey.ShouldEqual, "datos")
				convey.So(cfg.OutputDir, convey.ShouldEqual, ".")
				convey.So(cfg.Patterns, convey.ShouldResemble, []string{"*.xml", "*.lef", "*.lxf"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SWIMTAB_INPUT_DIR", "/data/lenex")
			_ = os.Setenv("SWIMTAB_OUTPUT_DIR", "/data/out")
			_ = os.Setenv("SWIMTAB_PARSE_WORKERS", "3")
			_ = os.Setenv("SWIMTAB_PATTERNS", "*.xml, *.lef")
			_ = os.Setenv("SWIMTAB_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputDir, convey.ShouldEqual, "/data/lenex")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "/data/out")
				convey.So(cfg.ParseWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.Patterns, convey.ShouldResemble, []string{"*.xml", "*.lef"})
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
input_dir: "./meets"
output_dir: "./tables"
parse_workers: 2
sqlite_path: "./tables/swim.db"
metrics_file: "./swimtab.prom"
patterns:
  - "*.lxf"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SWIMTAB_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputDir, convey.ShouldEqual, "./meets")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "./tables")
				convey.So(cfg.ParseWorkers, convey.ShouldEqual, 2)
				convey.So(cfg.SQLitePath, convey.ShouldEqual, "./tables/swim.db")
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "./swimtab.prom")
				convey.So(cfg.Patterns, convey.ShouldResemble, []string{"*.lxf"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
input_dir: "./meets"
parse_workers: 2
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SWIMTAB_CONFIG", tmpFile)
			_ = os.Setenv("SWIMTAB_PARSE_WORKERS", "8")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputDir, convey.ShouldEqual, "./meets") // From file
				convey.So(cfg.ParseWorkers, convey.ShouldEqual, 8)     // Overridden by env
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SWIMTAB_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SWIMTAB_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When an env var is not a number", func() {
			_ = os.Setenv("SWIMTAB_PARSE_WORKERS", "many")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When an env var is exported but empty", func() {
			_ = os.Setenv("SWIMTAB_PARSE_WORKERS", "")
			_ = os.Setenv("SWIMTAB_OUTPUT_DIR", " ")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the defaults should be kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ParseWorkers, convey.ShouldEqual, config.New(ctx).ParseWorkers)
				convey.So(cfg.OutputDir, convey.ShouldEqual, ".")
				convey.So(cfg.Validate(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When an env var makes the config invalid", func() {
			_ = os.Setenv("SWIMTAB_PARSE_WORKERS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should succeed so a later layer can override it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ParseWorkers, convey.ShouldEqual, 0)
			})

			convey.Convey("Then validation should reject the merged config", func() {
				convey.So(errors.Is(cfg.Validate(ctx), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SWIMTAB_CONFIG",
		"SWIMTAB_INPUT_DIR",
		"SWIMTAB_OUTPUT_DIR",
		"SWIMTAB_PARSE_WORKERS",
		"SWIMTAB_PATTERNS",
		"SWIMTAB_LOG_FORMAT",
		"SWIMTAB_LOG_LEVEL",
		"SWIMTAB_SQLITE_PATH",
		"SWIMTAB_METRICS_FILE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "swimtab-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
