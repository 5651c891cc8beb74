package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/javi11/sevenzlist"
)

// This example writes every file of a 7z archive (single file or split
// name.7z.001 volumes) to an output directory. Files whose coder has no
// registered decoder are skipped.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if len(os.Args) < 3 {
		log.Fatal().Msgf("usage: %s <archive>.7z <output-dir>", os.Args[0])
	}
	first := os.Args[1]
	outDir := os.Args[2]
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := sevenzlist.SetLogLevel(v); err != nil {
			log.Fatal().Err(err).Msg("log level")
		}
		sevenzlist.SetLogger(log.Logger.Level(sevenzlist.Logger().GetLevel()))
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output dir")
	}

	a, err := sevenzlist.Open(first)
	if err != nil {
		log.Fatal().Err(err).Str("archive", first).Msg("open")
	}

	for _, f := range a.Files {
		if f.IsAnti {
			continue
		}
		outPath := filepath.Join(outDir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(outPath, filepath.Clean(outDir)+string(os.PathSeparator)) {
			log.Warn().Str("name", f.Name).Msg("skipping path outside output dir")
			continue
		}
		if f.IsDir {
			if err := os.MkdirAll(outPath, 0o755); err != nil {
				log.Fatal().Err(err).Str("path", outPath).Msg("create dir")
			}
			continue
		}

		data, err := a.ExtractEntry(f)
		if errors.Is(err, sevenzlist.ErrUnsupportedCodec) {
			log.Warn().Err(err).Str("name", f.Name).Msg("skipping")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("name", f.Name).Msg("extract")
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			log.Fatal().Err(err).Msg("create output dir")
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", outPath).Msg("write")
		}
		if !f.MTime.IsZero() {
			_ = os.Chtimes(outPath, f.MTime, f.MTime)
		}
		log.Info().Str("name", f.Name).Int("bytes", len(data)).Msg("extracted")
	}
}
