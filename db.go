package gpeg

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodgit/gpeg/coeff"
	"github.com/bodgit/gpeg/packfile"
	_ "github.com/mattn/go-sqlite3"
)

var errBadChecksum = errors.New("stored plane failed checksum")

type PlaneDB struct {
	db *sql.DB
}

func NewPlaneDB(file string) (*PlaneDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS plane (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, crc TEXT NOT NULL, packed BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame_plane (frame_id INTEGER NOT NULL, component INTEGER NOT NULL, plane_id INTEGER NOT NULL, UNIQUE(frame_id, component), FOREIGN KEY(frame_id) REFERENCES frame(id), FOREIGN KEY(plane_id) REFERENCES plane(id))"); err != nil {
		return nil, err
	}

	return &PlaneDB{
		db: db,
	}, nil
}

func (db *PlaneDB) Close() error {
	return db.db.Close()
}

// AddPlane stores the packed plane p as component c of the named frame.
// Identical planes are stored once.
func (db *PlaneDB) AddPlane(frame string, width, height int, c Component, p *coeff.Packed) error {
	b := new(bytes.Buffer)
	if err := packfile.Encode(b, p); err != nil {
		return err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	frameID, err := addFrame(tx, frame, width, height)
	if err != nil {
		return err
	}

	planeID, err := addPlane(tx, b.Bytes())
	if err != nil {
		return err
	}

	if _, err = tx.Exec("INSERT OR REPLACE INTO frame_plane (frame_id, component, plane_id) VALUES (?, ?, ?)", frameID, int(c), planeID); err != nil {
		return err
	}

	return tx.Commit()
}

func addFrame(tx *sql.Tx, name string, width, height int) (int64, error) {
	var id int64
	var w, h int
	switch err := tx.QueryRow("SELECT id, width, height FROM frame WHERE name = ?", name).Scan(&id, &w, &h); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO frame (name, width, height) VALUES (?, ?, ?)", name, width, height)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if w != width || h != height {
			return 0, fmt.Errorf("frame %q is %dx%d, not %dx%d", name, w, h, width, height)
		}
		return id, nil
	default:
		return 0, err
	}
}

func addPlane(tx *sql.Tx, blob []byte) (int64, error) {
	h := sha1.Sum(blob)
	sha := fmt.Sprintf("%X", h[:])

	var id int64
	switch err := tx.QueryRow("SELECT id FROM plane WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO plane (sha1, crc, packed) VALUES (?, ?, ?)", sha, crcBlob(blob), blob)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// FindPlane returns component c of the named frame, or nil if there is no
// such plane.
func (db *PlaneDB) FindPlane(frame string, c Component) (*coeff.Packed, error) {
	var crc string
	var blob []byte
	switch err := db.db.QueryRow("SELECT p.crc, p.packed FROM frame AS f JOIN frame_plane AS fp ON fp.frame_id = f.id JOIN plane AS p ON fp.plane_id = p.id WHERE f.name = ? AND fp.component = ?", frame, int(c)).Scan(&crc, &blob); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		if crcBlob(blob) != crc {
			return nil, errBadChecksum
		}
		return packfile.Decode(bytes.NewReader(blob))
	default:
		return nil, err
	}
}

// Frames returns the names of every stored frame.
func (db *PlaneDB) Frames() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM frame ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Planes returns the number of distinct stored planes.
func (db *PlaneDB) Planes() (int, error) {
	var n int
	err := db.db.QueryRow("SELECT COUNT(*) FROM plane").Scan(&n)
	return n, err
}
