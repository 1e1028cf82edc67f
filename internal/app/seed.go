package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// SeedFile is the YAML layout accepted by Seed. Each entry uses the same
// camelCase fields as the matching create endpoint.
type SeedFile struct {
	Projects        []map[string]any `yaml:"projects"`
	Blog            []map[string]any `yaml:"blog"`
	Team            []map[string]any `yaml:"team"`
	Testimonials    []map[string]any `yaml:"testimonials"`
	HostingPackages []map[string]any `yaml:"hosting_packages"`
	FAQs            []map[string]any `yaml:"faqs"`
	Services        []map[string]any `yaml:"services"`
	Technologies    []map[string]any `yaml:"technologies"`
}

// SeedCount tallies one section of a seed run.
type SeedCount struct {
	Created int
	Skipped int
}

// SeedReport maps a section name to its tally.
type SeedReport map[string]SeedCount

// Seed reads a SeedFile from r and creates every entry through the regular
// services, so the usual validation and slug rules apply. Entries that
// already exist are skipped, which makes re-running a seed harmless.
func Seed(ctx context.Context, svcs *Services, r io.Reader, log *slog.Logger) (SeedReport, error) {
	if log == nil {
		log = slog.Default()
	}
	var f SeedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	rep := SeedReport{}
	steps := []func() error{
		func() error { return seedEach(ctx, log, rep, "technologies", f.Technologies, svcs.Technologies.Create) },
		func() error { return seedEach(ctx, log, rep, "services", f.Services, svcs.Offerings.Create) },
		func() error { return seedEach(ctx, log, rep, "projects", f.Projects, svcs.Projects.Create) },
		func() error { return seedEach(ctx, log, rep, "blog", f.Blog, svcs.Blog.Create) },
		func() error { return seedEach(ctx, log, rep, "team", f.Team, svcs.Team.Create) },
		func() error { return seedEach(ctx, log, rep, "testimonials", f.Testimonials, svcs.Testimonials.Create) },
		func() error { return seedEach(ctx, log, rep, "hosting_packages", f.HostingPackages, svcs.Hosting.Create) },
		func() error { return seedEach(ctx, log, rep, "faqs", f.FAQs, svcs.FAQs.Create) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// seedEach converts each YAML entry to the create request through JSON, so
// the request's json tags name the fields, then validates and creates it.
func seedEach[R any, PR interface {
	*R
	pkg.Validator
}, T any](
	ctx context.Context,
	log *slog.Logger,
	rep SeedReport,
	section string,
	items []map[string]any,
	create func(context.Context, PR) (*T, error),
) error {
	count := rep[section]
	defer func() { rep[section] = count }()

	for i, item := range items {
		req := PR(new(R))
		if err := decodeEntry(item, req); err != nil {
			return fmt.Errorf("%s[%d]: %w", section, i, err)
		}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("%s[%d]: %w", section, i, DescribeError(err))
		}
		if _, err := create(ctx, req); err != nil {
			if domain.IsAlreadyExists(err) {
				count.Skipped++
				log.InfoContext(ctx, "seed entry already exists", slog.String("section", section), slog.Int("index", i))
				continue
			}
			return fmt.Errorf("%s[%d]: %w", section, i, err)
		}
		count.Created++
	}
	return nil
}

func decodeEntry(item map[string]any, dst any) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode entry: %w", err)
	}
	return nil
}

// DescribeError spells out the field failures that the HTTP layer would
// send as a JSON map, for command-line output.
func DescribeError(err error) error {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) || len(appErr.Fields) == 0 {
		return err
	}
	return fmt.Errorf("%s: %v", appErr.Message, appErr.Fields)
}
