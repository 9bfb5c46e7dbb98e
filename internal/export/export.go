package export

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/michael-freling/file-explorer/internal/directory"
	"github.com/michael-freling/file-explorer/internal/xslices"
	"golang.org/x/sync/errgroup"
)

const (
	ItemsFileName = "items.json"
	TreeFileName  = "tree.json"
	PathsFileName = "paths.jsonl"
)

var ErrFileAlreadyExists = errors.New("file already exists")

type BatchExporterOptions struct {
	Overwrite bool
}

// BatchExporter writes the persisted items into a directory in a few formats
type BatchExporter struct {
	logger  *slog.Logger
	store   *directory.Store
	options BatchExporterOptions
}

func NewBatchExporter(logger *slog.Logger, store *directory.Store, options BatchExporterOptions) *BatchExporter {
	return &BatchExporter{
		logger:  logger,
		store:   store,
		options: options,
	}
}

// PathLine is a line of paths.jsonl
type PathLine struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Type string `json:"type"`
}

func (exporter BatchExporter) Export(ctx context.Context, exportDirectory string) error {
	if err := os.MkdirAll(exportDirectory, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}
	if !exporter.options.Overwrite {
		for _, fileName := range []string{ItemsFileName, TreeFileName, PathsFileName} {
			filePath := filepath.Join(exportDirectory, fileName)
			if _, err := os.Stat(filePath); err == nil {
				return fmt.Errorf("%w: %s", ErrFileAlreadyExists, filePath)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("os.Stat: %w", err)
			}
		}
	}

	items, err := exporter.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("store.Load: %w", err)
	}

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := writeJSON(filepath.Join(exportDirectory, ItemsFileName), items); err != nil {
			return fmt.Errorf("writeJSON(items): %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		if err := writeJSON(filepath.Join(exportDirectory, TreeFileName), directory.BuildTree(items)); err != nil {
			return fmt.Errorf("writeJSON(tree): %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		if err := writePaths(filepath.Join(exportDirectory, PathsFileName), items); err != nil {
			return fmt.Errorf("writePaths: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("export errors: %w", err)
	}

	exporter.logger.InfoContext(ctx, "Exported items",
		"exportDirectory", exportDirectory,
		"count", len(items),
	)
	return nil
}

// ItemPath joins the names from a root to an item with "/"
func ItemPath(items []directory.Item, item directory.Item) string {
	names := xslices.Map(directory.Ancestors(items, item.ID), func(ancestor directory.Item) string {
		return ancestor.Name
	})
	names = append(names, item.Name)
	return strings.Join(names, "/")
}

func writeJSON(filePath string, value any) error {
	marshaled, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}
	if err := os.WriteFile(filePath, marshaled, 0644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	return nil
}

func writePaths(filePath string, items []directory.Item) error {
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("os.OpenFile: %w", err)
	}
	defer file.Close()

	buffer := bufio.NewWriter(file)
	encoder := json.NewEncoder(buffer)
	for _, item := range directory.Flatten(directory.BuildTree(items)) {
		line := PathLine{
			ID:   item.ID,
			Path: ItemPath(items, item),
			Type: string(item.Kind),
		}
		if err := encoder.Encode(line); err != nil {
			return fmt.Errorf("json.Encode: %w", err)
		}
	}
	if err := buffer.Flush(); err != nil {
		return fmt.Errorf("buffer.Flush: %w", err)
	}
	return nil
}
