package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/presence/internal/store"
)

type exportDoc struct {
	Users []store.Record `yaml:"users"`
}

func export(ctx context.Context, cfg Config, log *slog.Logger, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "", "write YAML to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	data, err := exportYAML(ctx, st)
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	log.InfoContext(ctx, "users exported", slog.String("file", *out))
	return nil
}

func exportYAML(ctx context.Context, st store.Store) ([]byte, error) {
	doc := exportDoc{Users: []store.Record{}}
	for rec, err := range st.ListAll(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		doc.Users = append(doc.Users, rec)
	}
	return yaml.Marshal(doc)
}
