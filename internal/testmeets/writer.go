package testmeets

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/swimtab/pkg/logger"
)

const filePermission = 0o644

// Generate writes cfg.Files meet files into dir and returns the manifest of
// the expected conversion output.
func Generate(ctx context.Context, cfg Config, dir string) (*Manifest, error) {
	g, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	log := logger.Get().Named("testmeets")
	log.Info(ctx, "generating meets",
		logger.Int("files", cfg.Files),
		logger.Int("athletes", cfg.Athletes),
		logger.Int("clubs", cfg.Clubs),
	)

	m := &Manifest{}
	clubs := make(map[string]struct{})
	athletes := make(map[string]struct{})
	for i := 0; i < cfg.Files; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, st := g.meet(i)
		data, err := render(doc)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(dir, fmt.Sprintf("meet-%03d.lef", i+1))
		if cfg.ArchiveEvery > 0 && (i+1)%cfg.ArchiveEvery == 0 {
			path = filepath.Join(dir, fmt.Sprintf("meet-%03d.lxf", i+1))
			err = writeArchive(path, "meet.lef", data)
		} else {
			err = os.WriteFile(path, data, filePermission)
		}
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}

		m.Files = append(m.Files, path)
		m.Meets++
		m.Results += st.results
		m.RelayResults += st.relays
		m.Orphans += st.orphans
		for _, c := range st.clubs {
			clubs[c] = struct{}{}
		}
		for _, a := range st.athletes {
			athletes[a] = struct{}{}
		}
		log.Debug(ctx, "meet written", logger.String("path", path), logger.Int("results", st.results))
	}
	m.Clubs = len(clubs)
	m.Athletes = len(athletes)
	return m, nil
}

func render(doc *lenexDoc) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render meet: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

func writeArchive(path, entry string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create(entry)
	if err == nil {
		_, err = w.Write(data)
	}
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
