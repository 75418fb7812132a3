// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package build turns source documents into a KnowledgeStore: extract pages,
// segment them into paragraphs, score each paragraph against the vocabulary
// and keep the best ones within the character budget.
package build

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/snippet-engine/internal/convert"
	"github.com/pdiddy/snippet-engine/internal/relevance"
	"github.com/pdiddy/snippet-engine/internal/segment"
	"github.com/pdiddy/snippet-engine/internal/selector"
	"github.com/pdiddy/snippet-engine/pkg/types"
)

// Summary holds counts from a build run.
type Summary struct {
	Indexed int
	Empty   int
	Failed  int
}

// Total returns the number of documents processed.
func (s Summary) Total() int {
	return s.Indexed + s.Empty + s.Failed
}

// ProgressFunc is called after each document finishes extraction and scoring.
// Calls are serialized.
type ProgressFunc func(done, total int, source string)

// Builder builds a KnowledgeStore from source documents.
type Builder struct {
	Extractor  convert.PageExtractor
	Vocabulary relevance.Vocabulary
	Config     types.Config
	Logger     *zap.Logger

	// Status receives one line per document. Nil discards them.
	Status io.Writer

	// Workers bounds concurrent documents. Values below 1 mean 1.
	Workers int

	Progress ProgressFunc
}

type outcome struct {
	doc types.Document
	err error
}

// Build processes sources and folds the accepted documents into a store in
// ascending source ID order. A document whose extraction fails is skipped
// and counted in Summary.Failed; a document with no accepted paragraphs is
// omitted and counted in Summary.Empty. The result does not depend on
// Workers.
func (b *Builder) Build(ctx context.Context, sources []types.Source) (types.KnowledgeStore, Summary, error) {
	ordered := make([]types.Source, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	outcomes, err := b.process(ctx, ordered)
	if err != nil {
		return types.KnowledgeStore{}, Summary{}, err
	}

	log := b.logger()
	w := b.status()

	var store types.KnowledgeStore
	var summary Summary
	for i, src := range ordered {
		o := outcomes[i]
		switch {
		case o.err != nil:
			fmt.Fprintf(w, "failed  %s: %v\n", src.ID, o.err)
			log.Warn("skipping document", zap.String("source", src.ID), zap.Error(o.err))
			summary.Failed++
			continue
		case len(o.doc.Paragraphs) == 0:
			fmt.Fprintf(w, "empty   %s\n", src.ID)
			log.Debug("no relevant paragraphs", zap.String("source", src.ID))
			summary.Empty++
		default:
			fmt.Fprintf(w, "indexed %s (%d paragraphs, %d chars)\n",
				src.ID, len(o.doc.Paragraphs), o.doc.CharCount())
			summary.Indexed++
		}
		store = store.With(o.doc)
	}

	fmt.Fprintf(w, "\nindexed: %d, empty: %d, failed: %d\n",
		summary.Indexed, summary.Empty, summary.Failed)
	log.Info("build complete",
		zap.Int("indexed", summary.Indexed),
		zap.Int("empty", summary.Empty),
		zap.Int("failed", summary.Failed),
		zap.Int("paragraphs", store.ParagraphCount()),
	)

	return store, summary, nil
}

// process runs extraction and scoring for every source, writing each result
// into its own slot.
func (b *Builder) process(ctx context.Context, sources []types.Source) ([]outcome, error) {
	outcomes := make([]outcome, len(sources))

	workers := b.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	done := 0

	for i, src := range sources {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pages, err := b.Extractor.ExtractPages(gctx, src.Path)
			if err != nil {
				outcomes[i].err = fmt.Errorf("extracting pages: %w", err)
			} else {
				outcomes[i].doc = Process(src.ID, pages, b.Config, b.Vocabulary)
			}

			if b.Progress != nil {
				mu.Lock()
				done++
				b.Progress(done, len(sources), src.ID)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b *Builder) status() io.Writer {
	if b.Status == nil {
		return io.Discard
	}
	return b.Status
}

// Candidates segments pages and scores every paragraph, in page order.
func Candidates(pages []types.Page, cfg types.SegmentConfig, v relevance.Vocabulary) []types.Paragraph {
	texts := segment.SplitPages(pages, cfg.MinLength)
	cands := make([]types.Paragraph, len(texts))
	for i, text := range texts {
		cands[i] = types.Paragraph{Text: text, Score: relevance.Score(text, v)}
	}
	return cands
}

// Process builds the document for one source from its pages. The document
// has no paragraphs when nothing scores above the floor.
func Process(source string, pages []types.Page, cfg types.Config, v relevance.Vocabulary) types.Document {
	cands := Candidates(pages, cfg.Segment, v)
	return types.Document{
		Source:     source,
		Paragraphs: selector.Select(cands, cfg.Select.CharBudget, cfg.Select.ScoreFloor),
	}
}
