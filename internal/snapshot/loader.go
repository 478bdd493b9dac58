package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/conduit-lang/classview/runtime/catalog"
)

// Paths locates the raw catalogue files. Native is required; a missing
// Blueprint or Descriptions file is skipped.
type Paths struct {
	Native       string
	Blueprint    string
	Descriptions string
}

// Raw is the decoded content of the catalogue files.
type Raw struct {
	Sources      []catalog.Source
	Descriptions catalog.Descriptions
}

// Load reads and decodes the files concurrently. Sources are returned in
// native, blueprint order.
func Load(ctx context.Context, paths Paths) (*Raw, error) {
	if paths.Native == "" {
		return nil, errors.New("native catalogue path is required")
	}

	var (
		native    catalog.Source
		blueprint catalog.Source
		desc      catalog.Descriptions
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readJSON(ctx, paths.Native, &native, false)
	})
	g.Go(func() error {
		return readJSON(ctx, paths.Blueprint, &blueprint, true)
	})
	g.Go(func() error {
		return readJSON(ctx, paths.Descriptions, &desc, true)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	native.Origin = catalog.OriginNative
	blueprint.Origin = catalog.OriginBlueprint

	return &Raw{
		Sources:      []catalog.Source{native, blueprint},
		Descriptions: desc,
	}, nil
}

func readJSON(ctx context.Context, path string, v any, optional bool) error {
	if path == "" && optional {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
