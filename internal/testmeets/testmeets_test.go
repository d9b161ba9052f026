package testmeets_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/swimtab/internal/adapters/lenex"
	"github.com/okian/swimtab/internal/domain/finalize"
	"github.com/okian/swimtab/internal/domain/meet"
	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/internal/testmeets"
	"github.com/okian/swimtab/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func smallConfig() testmeets.Config {
	return testmeets.Config{Files: 4, Athletes: 30, Clubs: 5, Seed: 7, ArchiveEvery: 2}
}

func convert(ctx context.Context, paths []string) *model.Tables {
	src := lenex.NewSource()
	tr := meet.NewTransformer()
	all := &model.Tables{}
	for _, p := range paths {
		docs, err := src.Load(ctx, p)
		So(err, ShouldBeNil)
		batch, _, err := tr.Transform(docs...)
		So(err, ShouldBeNil)
		all.Append(batch)
	}
	return finalize.Tables(ctx, all)
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	Convey("Given a small fixture config", t, func() {
		dir := t.TempDir()
		m, err := testmeets.Generate(ctx, smallConfig(), dir)
		So(err, ShouldBeNil)

		Convey("Then one file per meet should be written", func() {
			So(m.Files, ShouldHaveLength, 4)
			So(filepath.Ext(m.Files[0]), ShouldEqual, ".lef")
			So(filepath.Ext(m.Files[1]), ShouldEqual, ".lxf")
			for _, f := range m.Files {
				_, err := os.Stat(f)
				So(err, ShouldBeNil)
			}
		})

		Convey("Then every meet should carry relay and orphan results", func() {
			So(m.RelayResults, ShouldBeGreaterThanOrEqualTo, m.Meets)
			So(m.Orphans, ShouldEqual, m.Meets)
		})

		Convey("Then converting the files should match the manifest", func() {
			tables := convert(ctx, m.Files)
			So(m.Verify(tables.Counts()), ShouldBeNil)
		})

		Convey("When generating again with the same seed", func() {
			dir2 := t.TempDir()
			m2, err := testmeets.Generate(ctx, smallConfig(), dir2)
			So(err, ShouldBeNil)

			Convey("Then the files should be byte-identical", func() {
				for i := range m.Files {
					a, err := os.ReadFile(m.Files[i])
					So(err, ShouldBeNil)
					b, err := os.ReadFile(m2.Files[i])
					So(err, ShouldBeNil)
					So(a, ShouldResemble, b)
				}
			})
		})
	})

	Convey("Given an invalid config", t, func() {
		_, err := testmeets.Generate(ctx, testmeets.Config{Files: 1}, t.TempDir())

		Convey("Then generation should be rejected", func() {
			So(errors.Is(err, testmeets.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestManifestVerify(t *testing.T) {
	Convey("Given a manifest", t, func() {
		m := &testmeets.Manifest{Meets: 2, Clubs: 3, Athletes: 4, Results: 5}

		Convey("When the counts match", func() {
			err := m.Verify(map[string]int{"competitions": 2, "clubs": 3, "athletes": 4, "results": 5})

			Convey("Then no error should be returned", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When a count differs", func() {
			err := m.Verify(map[string]int{"competitions": 2, "clubs": 3, "athletes": 4, "results": 6})

			Convey("Then a mismatch should be reported", func() {
				So(errors.Is(err, testmeets.ErrMismatch), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "results has 6 rows, want 5")
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given an end-to-end check in a work dir", t, func() {
		dir := t.TempDir()
		stats, err := testmeets.Run(context.Background(), testmeets.RunConfig{
			Fixtures: smallConfig(),
			WorkDir:  dir,
			Workers:  2,
			SQLite:   true,
		})

		Convey("Then the conversion should match the manifest", func() {
			So(err, ShouldBeNil)
			So(stats.Files, ShouldEqual, 4)
			So(stats.Rows["competitions"], ShouldEqual, 4)
		})

		Convey("Then the outputs should be left in the work dir", func() {
			_, err := os.Stat(filepath.Join(dir, "output", "resultados.csv"))
			So(err, ShouldBeNil)
			_, err = os.Stat(filepath.Join(dir, "output", "swimtab.db"))
			So(err, ShouldBeNil)
		})
	})
}
