package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/javi11/sevenzlist"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if len(os.Args) < 2 {
		log.Fatal().Msgf("usage: %s <archive>.7z | <archive>.7z.001", os.Args[0])
	}
	first := os.Args[1]

	files, err := sevenzlist.ListFiles(first)
	if err != nil {
		log.Fatal().Err(err).Str("archive", first).Msg("list files")
	}
	b, _ := json.MarshalIndent(files, "", "  ")
	fmt.Println(string(b))
}
