// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package generate turns every endpoint of a spec into a FormRequest class.
package generate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dacolabs/formrequest/internal/emit"
	"github.com/dacolabs/formrequest/internal/extract"
	"github.com/dacolabs/formrequest/internal/logging"
	"github.com/dacolabs/formrequest/internal/oas"
	"github.com/dacolabs/formrequest/internal/rules"
	"github.com/dacolabs/formrequest/internal/rules/laravel"
	"github.com/dacolabs/formrequest/internal/schema"
)

// ErrDuplicateClass indicates two endpoints derive the same class name.
var ErrDuplicateClass = errors.New("duplicate class name")

// DefaultConcurrency bounds parallel endpoint processing when unset.
const DefaultConcurrency = 4

// Options control a generation run.
type Options struct {
	OutputDir         string
	Namespace         string
	Class             emit.Options
	Force             bool
	DryRun            bool
	IncludeParameters bool
	Concurrency       int
	// Only restricts generation to these endpoint IDs when non-empty.
	Only []string
	// Dialect spells the rules. Defaults to Laravel.
	Dialect rules.Dialect
}

func (o Options) mapper() *rules.Mapper {
	if o.Dialect == nil {
		return rules.NewMapper(laravel.New())
	}
	return rules.NewMapper(o.Dialect)
}

// Candidates returns the endpoints that have something to validate: a
// request body, or with includeParams any path or query parameter.
func Candidates(spec *oas.Spec, includeParams bool) []*oas.Endpoint {
	var out []*oas.Endpoint
	for _, ep := range spec.Endpoints {
		if ep.HasRequestBody() || (includeParams && ep.HasInputParameters()) {
			out = append(out, ep)
		}
	}
	return out
}

// MapEndpoint extracts the endpoint's schema and maps it to rules.
func MapEndpoint(spec *oas.Spec, ep *oas.Endpoint, opts Options) (*schema.Node, *rules.Table, error) {
	if err := ep.Validate(); err != nil {
		return nil, nil, err
	}
	node, err := extract.New(spec.NewResolver()).FromEndpoint(ep, opts.IncludeParameters)
	if err != nil {
		return nil, nil, err
	}
	table, err := opts.mapper().Map(node)
	if err != nil {
		return nil, nil, err
	}
	return node, table, nil
}

// BuildClass maps the endpoint and wraps the rules in a class descriptor.
func BuildClass(spec *oas.Spec, ep *oas.Endpoint, opts Options) (*emit.Class, error) {
	node, table, err := MapEndpoint(spec, ep, opts)
	if err != nil {
		return nil, err
	}

	classOpts := opts.Class
	if classOpts.Summary == "" {
		classOpts.Summary = summary(ep)
	}
	return emit.NewClass(ep.ClassName(), opts.Namespace, table, node, classOpts)
}

func summary(ep *oas.Endpoint) string {
	lines := []string{ep.Method + " " + ep.Path}
	if ep.Summary != "" {
		lines = append(lines, ep.Summary)
	}
	if ep.Deprecated {
		lines = append(lines, "", "@deprecated")
	}
	return strings.Join(lines, "\n")
}

// Run generates a class for every candidate endpoint. Endpoints are
// processed concurrently; the report keeps endpoint order and records each
// failure without stopping the batch.
func Run(ctx context.Context, spec *oas.Spec, opts Options) *Report {
	log := logging.FromContext(ctx)

	for _, group := range spec.Duplicates() {
		ids := make([]string, len(group))
		for i, ep := range group {
			ids[i] = ep.ID()
		}
		log.Warn().Str("signature", group[0].Signature()).Strs("endpoints", ids).Msg("duplicate route signature")
	}

	var endpoints []*oas.Endpoint
	for _, ep := range Candidates(spec, opts.IncludeParameters) {
		if len(opts.Only) == 0 || slices.Contains(opts.Only, ep.ID()) {
			endpoints = append(endpoints, ep)
		}
	}

	report := &Report{Results: make([]EndpointResult, len(endpoints))}
	owners := make(map[string]string, len(endpoints))
	writer := emit.Writer{Force: opts.Force, DryRun: opts.DryRun}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, ep := range endpoints {
		res := &report.Results[i]
		res.Endpoint = ep
		res.ClassName = ep.ClassName()

		if owner, taken := owners[res.ClassName]; taken {
			res.Err = fmt.Errorf("%w %s: already generated for %s", ErrDuplicateClass, res.ClassName, owner)
			log.Error().Str("endpoint", ep.ID()).Err(res.Err).Msg("skipping endpoint")
			continue
		}
		owners[res.ClassName] = ep.ID()

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				res.Err = err
				return nil
			}
			generateOne(log, spec, ep, opts, writer, res)
			return nil
		})
	}
	_ = g.Wait()

	log.Info().
		Int("succeeded", report.Succeeded()).
		Int("skipped", report.Skipped()).
		Int("failed", report.Failed()).
		Msg("generation finished")
	return report
}

func generateOne(log *zerolog.Logger, spec *oas.Spec, ep *oas.Endpoint, opts Options, writer emit.Writer, res *EndpointResult) {
	class, err := BuildClass(spec, ep, opts)
	if err != nil {
		res.Err = err
		log.Error().Str("endpoint", ep.ID()).Err(err).Msg("failed to build request class")
		return
	}
	res.Rules = class.Rules
	log.Debug().Str("endpoint", ep.ID()).Int("rules", class.Rules.Len()).Msg("mapped rules")

	res.Write = writer.Write(opts.OutputDir, class)
	if res.Write.Err != nil {
		res.Err = res.Write.Err
		log.Error().Str("endpoint", ep.ID()).Err(res.Err).Msg("failed to write request class")
		return
	}
	log.Info().Str("endpoint", ep.ID()).Str("path", res.Write.Path).Bool("dry_run", res.Write.Skipped).Msg("request class ready")
}
