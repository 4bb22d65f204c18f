package gpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

func (g *GPEG) findFrames(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// A frame is found by its luma plane
			if !info.Mode().IsRegular() || filepath.Ext(file) != Luma.Ext() {
				return nil
			}

			select {
			case out <- strings.TrimSuffix(file, Luma.Ext()):
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (g *GPEG) frameWorker(ctx context.Context, root string, width, height int, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for base := range in {
			name, err := filepath.Rel(root, base)
			if err != nil {
				errc <- err
				return
			}
			name = filepath.ToSlash(name)

			f, err := LoadFrame(base, width, height)
			if err != nil {
				errc <- err
				return
			}

			packed, err := f.Pack()
			if err != nil {
				errc <- err
				return
			}

			for _, c := range Components {
				p := packed[c]
				if err := g.db.AddPlane(name, width, height, c, p); err != nil {
					errc <- err
					return
				}
				s := p.Stats()
				g.logger.Printf("Imported \"%s\" %s, %d blocks, %.2f%% of original size\n", name, c, s.Blocks, s.Ratio())
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	var first error
	for err := range errc {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Import walks path for frames, packs their planes and stores them. width
// and height are the luma dimensions shared by every frame.
func (g *GPEG) Import(path string, width, height int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	frames, errc, err := g.findFrames(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := g.frameWorker(ctx, dir, width, height, frames)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
