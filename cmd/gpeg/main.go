package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/gpeg"
	"github.com/bodgit/gpeg/coeff"
	"github.com/bodgit/gpeg/heatmap"
	"github.com/bodgit/gpeg/packfile"
	"github.com/bodgit/gpeg/plane"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB     = "gpeg.db"
	defaultWidth  = 1024
	defaultHeight = 576
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func dimensionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "width",
			Value: defaultWidth,
			Usage: "luma plane width",
		},
		&cli.IntFlag{
			Name:  "height",
			Value: defaultHeight,
			Usage: "luma plane height",
		},
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func requireArgs(c *cli.Context, n int) {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
}

func readPacked(file string) (*coeff.Packed, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return packfile.Decode(bufio.NewReader(f))
}

func writeFile(file string, write func(*bufio.Writer) error) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func segments(c *cli.Context) error {
	requireArgs(c, 1)

	input := c.Args().First()
	fmt.Printf("parsing %s...\n", input)

	f, err := os.Open(input)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	if err := gpeg.DumpSegments(os.Stdout, bufio.NewReader(f)); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func stats(c *cli.Context) error {
	requireArgs(c, 1)

	f, err := gpeg.LoadFrame(c.Args().First(), c.Int("width"), c.Int("height"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := gpeg.WriteStats(os.Stdout, f); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func verify(c *cli.Context) error {
	requireArgs(c, 1)

	logger := newLogger(c)

	f, err := gpeg.LoadFrame(c.Args().First(), c.Int("width"), c.Int("height"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var failed bool
	for _, comp := range gpeg.Components {
		p := f.Planes[comp]
		m, u, err := gpeg.Verify(p)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("%s: %w", comp, err), 1)
		}
		logger.Printf("Verified %s plane, %dx%d\n", comp, p.Width, p.Height)

		if comp == gpeg.Luma && c.IsSet("bx") && c.IsSet("by") {
			fmt.Println("BLOCKS")
			for _, q := range []*plane.Plane{p, u} {
				if err := gpeg.WriteBlock(os.Stdout, q, c.Int("bx"), c.Int("by")); err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Println()
			}
		}

		for _, mismatch := range m {
			fmt.Printf("%s: %s\n", comp, mismatch)
		}
		failed = failed || len(m) > 0
	}

	if failed {
		return cli.NewExitError(errors.New("round trip mismatch"), 1)
	}
	return nil
}

func pack(c *cli.Context) error {
	requireArgs(c, 2)

	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	p, err := plane.Decode(bufio.NewReader(f), c.Int("width"), c.Int("height"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	packed, err := coeff.PackPlane(p)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := writeFile(c.Args().Get(1), func(w *bufio.Writer) error {
		return packfile.Encode(w, packed)
	}); err != nil {
		return cli.NewExitError(err, 1)
	}

	s := packed.Stats()
	newLogger(c).Printf("Packed %d blocks, %d bytes to %d bytes, %.2f%%\n", s.Blocks, s.RawSize, s.PackedSize, s.Ratio())
	return nil
}

func unpack(c *cli.Context) error {
	requireArgs(c, 2)

	packed, err := readPacked(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	p, err := packed.Unpack()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := writeFile(c.Args().Get(1), func(w *bufio.Writer) error {
		return plane.Encode(w, p)
	}); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func heatmapAction(c *cli.Context) error {
	requireArgs(c, 2)

	packed, err := readPacked(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := writeFile(c.Args().Get(1), func(w *bufio.Writer) error {
		return heatmap.Encode(w, packed, c.Int("scale"))
	}); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func importAction(c *cli.Context) error {
	requireArgs(c, 1)

	g, err := gpeg.New(c.String("db"), newLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer g.Close()

	if err := g.Import(c.Args().First(), c.Int("width"), c.Int("height")); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func export(c *cli.Context) error {
	requireArgs(c, 3)

	comp, err := gpeg.ParseComponent(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	g, err := gpeg.New(c.String("db"), newLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer g.Close()

	packed, err := g.DB().FindPlane(c.Args().Get(0), comp)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if packed == nil {
		return cli.NewExitError(fmt.Errorf("no %s plane for frame \"%s\"", comp, c.Args().Get(0)), 1)
	}

	if err := writeFile(c.Args().Get(2), func(w *bufio.Writer) error {
		return packfile.Encode(w, packed)
	}); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "gpeg"
	app.Usage = "JPEG segment and coefficient packing utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GPEG_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "segments",
			Usage:     "Dump marker segments from a JPEG file",
			ArgsUsage: "FILE",
			Action:    segments,
		},
		{
			Name:      "stats",
			Usage:     "Report packed size of each plane of a frame",
			ArgsUsage: "BASE",
			Flags:     dimensionFlags(),
			Action:    stats,
		},
		{
			Name:      "verify",
			Usage:     "Check each plane of a frame survives packing",
			ArgsUsage: "BASE",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "bx",
					Usage: "luma block column to print",
				},
				&cli.IntFlag{
					Name:  "by",
					Usage: "luma block row to print",
				},
			}, dimensionFlags()...),
			Action: verify,
		},
		{
			Name:      "pack",
			Usage:     "Pack a coefficient plane",
			ArgsUsage: "INPUT OUTPUT",
			Flags:     dimensionFlags(),
			Action:    pack,
		},
		{
			Name:      "unpack",
			Usage:     "Unpack a packed plane to coefficients",
			ArgsUsage: "INPUT OUTPUT",
			Action:    unpack,
		},
		{
			Name:      "heatmap",
			Usage:     "Render the packed size of each block as a GIF",
			ArgsUsage: "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 8,
					Usage: "pixels per block",
				},
			},
			Action: heatmapAction,
		},
		{
			Name:      "import",
			Usage:     "Pack and store every frame in a directory",
			ArgsUsage: "DIRECTORY",
			Flags:     dimensionFlags(),
			Action:    importAction,
		},
		{
			Name:      "export",
			Usage:     "Write a stored plane as a packfile",
			ArgsUsage: "FRAME COMPONENT OUTPUT",
			Action:    export,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
