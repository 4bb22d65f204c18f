/*
Package gpeg is a library for preparing JPEG coefficient data for texture
based decoding.

It walks the marker segments of a JPEG stream, packs planes of transform
coefficients into a compact run-length coded form with a per-block index and
keeps packed frames in a small database.
*/
package gpeg

import "log"

type GPEG struct {
	db     *PlaneDB
	logger *log.Logger
}

func New(file string, logger *log.Logger) (*GPEG, error) {
	db, err := NewPlaneDB(file)
	if err != nil {
		return nil, err
	}
	return &GPEG{
		db:     db,
		logger: logger,
	}, nil
}

func (g *GPEG) Close() error {
	return g.db.Close()
}

// DB returns the underlying plane database.
func (g *GPEG) DB() *PlaneDB {
	return g.db
}
