package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/swimtab/internal/config"
	"github.com/okian/swimtab/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

const sampleMeet = `<LENEX><MEETS><MEET name="Winter Open" city="Bilbao">
  <SESSIONS><SESSION date="2024-12-01"><EVENTS>
    <EVENT eventid="1" daytime="09:00"><SWIMSTYLE distance="50" stroke="FLY"/></EVENT>
  </EVENTS></SESSION></SESSIONS>
  <CLUBS><CLUB code="B1" name="Bilbao SC"><ATHLETES>
    <ATHLETE athleteid="7" firstname="Iñigo" lastname="Ruiz">
      <RESULTS><RESULT eventid="1" swimtime="00:00:27.10"/></RESULTS>
    </ATHLETE>
  </ATHLETES></CLUB></CLUBS>
</MEET></MEETS></LENEX>`

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func execute(args ...string) (string, error) {
	var buf bytes.Buffer
	root := rootCommand()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRunCommand(t *testing.T) {
	convey.Convey("Given an input directory with one meet", t, func() {
		in, out := t.TempDir(), t.TempDir()
		convey.So(os.WriteFile(filepath.Join(in, "winter.lef"), []byte(sampleMeet), 0o644), convey.ShouldBeNil)

		convey.Convey("When running with flags", func() {
			db := filepath.Join(out, "swimtab.db")
			logs, err := execute("run", in, "--output", out, "--workers", "2", "--sqlite", db, "--log-format", "json")

			convey.Convey("Then the tables should be written", func() {
				convey.So(err, convey.ShouldBeNil)
				b, err := os.ReadFile(filepath.Join(out, "resultados.csv"))
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldContainSubstring, "1,7,B1,50,FLY,,00:00:27.10,No,,,,2024-12-01,09:00")
				_, err = os.Stat(db)
				convey.So(err, convey.ShouldBeNil)
			})

			convey.Convey("Then the run summary should be logged as JSON", func() {
				convey.So(logs, convey.ShouldContainSubstring, `"msg":"run summary"`)
				convey.So(logs, convey.ShouldContainSubstring, `"files_processed":1`)
			})
		})

		convey.Convey("When the output dir comes from the environment and the flag", func() {
			envOut, flagOut := t.TempDir(), t.TempDir()
			t.Setenv(config.EnvPrefix+"OUTPUT_DIR", envOut)
			_, err := execute("run", in, "--output", flagOut)

			convey.Convey("Then the flag should win", func() {
				convey.So(err, convey.ShouldBeNil)
				_, err := os.Stat(filepath.Join(flagOut, "atletas.csv"))
				convey.So(err, convey.ShouldBeNil)
				_, err = os.Stat(filepath.Join(envOut, "atletas.csv"))
				convey.So(os.IsNotExist(err), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the environment holds invalid values that flags override", func() {
			t.Setenv(config.EnvPrefix+"PARSE_WORKERS", "0")
			t.Setenv(config.EnvPrefix+"LOG_FORMAT", "xml")
			logs, err := execute("run", in, "-o", out, "-w", "4", "--log-format", "json")

			convey.Convey("Then the run should use the flag values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(logs, convey.ShouldContainSubstring, `"workers":4`)
				_, err := os.Stat(filepath.Join(out, "clubes.csv"))
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the environment holds an invalid value and no flag overrides it", func() {
			t.Setenv(config.EnvPrefix+"PARSE_WORKERS", "0")
			_, err := execute("run", in, "-o", out)

			convey.Convey("Then the configuration should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a file fails to parse", func() {
			convey.So(os.WriteFile(filepath.Join(in, "broken.xml"), []byte("<LENEX>"), 0o644), convey.ShouldBeNil)
			logs, err := execute("run", in, "--output", out)

			convey.Convey("Then the command should still succeed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(logs, convey.ShouldContainSubstring, "file failed")
			})
		})

		convey.Convey("When the log format is unknown", func() {
			_, err := execute("run", in, "--output", out, "--log-format", "xml")

			convey.Convey("Then the configuration should be rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})

	convey.Convey("Given a missing input directory", t, func() {
		_, err := execute("run", filepath.Join(t.TempDir(), "missing"), "--output", t.TempDir())

		convey.Convey("Then the command should fail", func() {
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestGenerateCommand(t *testing.T) {
	convey.Convey("Given the generate command", t, func() {
		dir := t.TempDir()

		convey.Convey("When generating three files with an archive", func() {
			_, err := execute("generate", "--out", dir, "--files", "3", "--athletes", "10", "--clubs", "2", "--archive-every", "3")

			convey.Convey("Then the files should exist", func() {
				convey.So(err, convey.ShouldBeNil)
				matches, err := filepath.Glob(filepath.Join(dir, "meet-*"))
				convey.So(err, convey.ShouldBeNil)
				convey.So(matches, convey.ShouldResemble, []string{
					filepath.Join(dir, "meet-001.lef"),
					filepath.Join(dir, "meet-002.lef"),
					filepath.Join(dir, "meet-003.lxf"),
				})
			})
		})
	})
}
