package mounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackfish212/termtree"
	"github.com/jackfish212/termtree/types"

	_ "modernc.org/sqlite"
)

// ErrCorruptSnapshot is returned when stored sizes disagree with the sizes
// recomputed from the stored files.
var ErrCorruptSnapshot = errors.New("sqlitestore: snapshot sizes do not add up")

// SQLiteStore persists reconstructed trees as snapshots in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// SnapshotInfo describes one stored snapshot.
type SnapshotInfo struct {
	ID        string
	Created   time.Time
	TotalSize int64
	Source    string
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.initDB(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initDB() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		created INTEGER NOT NULL,
		total_size INTEGER NOT NULL,
		source TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS items (
		snapshot_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		parent_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		path TEXT NOT NULL,
		name TEXT NOT NULL,
		is_dir BOOLEAN NOT NULL DEFAULT 0,
		size INTEGER NOT NULL,
		PRIMARY KEY (snapshot_id, id)
	);
	CREATE INDEX IF NOT EXISTS idx_items_parent ON items(snapshot_id, parent_id, position);
	CREATE INDEX IF NOT EXISTS idx_items_path ON items(snapshot_id, path);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// Items are numbered in pre-order within a snapshot, the root being rootID.
// Paths are not unique: a listing may repeat a name.
const (
	rootID   int64 = 0
	noParent int64 = -1
)

// Save stores root as a new snapshot and returns its id. source is a free
// form label, usually the transcript file name.
func (s *SQLiteStore) Save(ctx context.Context, root *types.Directory, source string) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, created, total_size, source) VALUES (?, ?, ?, ?)`,
		id, time.Now().Unix(), root.Size(), source); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (snapshot_id, id, parent_id, position, path, name, is_dir, size) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("save items: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, id, rootID, noParent, 0, "/", "/", true, root.Size()); err != nil {
		return "", fmt.Errorf("save root: %w", err)
	}
	next := rootID + 1
	var saveDir func(parentID int64, path string, d *types.Directory) error
	saveDir = func(parentID int64, path string, d *types.Directory) error {
		for i, c := range d.Children() {
			itemID := next
			next++
			p := termtree.JoinPath(path, c.Name())
			if _, err := stmt.ExecContext(ctx, id, itemID, parentID, i, p, c.Name(), c.IsDir(), c.Size()); err != nil {
				return fmt.Errorf("save %s: %w", p, err)
			}
			if sub, ok := c.(*types.Directory); ok {
				if err := saveDir(itemID, p, sub); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := saveDir(rootID, "/", root); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	slog.Info("sqlitestore: saved snapshot", "id", id, "items", next, "size", root.Size())
	return id, nil
}

// Snapshots lists stored snapshots, newest first.
func (s *SQLiteStore) Snapshots(ctx context.Context) ([]SnapshotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created, total_size, source FROM snapshots ORDER BY created DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var created int64
		if err := rows.Scan(&info.ID, &created, &info.TotalSize, &info.Source); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		info.Created = time.Unix(created, 0)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a snapshot and its items.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: snapshot %s", types.ErrNotFound, id)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE snapshot_id = ?`, id); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return tx.Commit()
}

type itemRow struct {
	id    int64
	path  string
	name  string
	isDir bool
	size  int64
}

// Load rebuilds the tree of a snapshot. Directory sizes are recomputed from
// the stored files and checked against the stored totals.
func (s *SQLiteStore) Load(ctx context.Context, id string) (*types.Directory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, parent_id, path, name, is_dir, size FROM items WHERE snapshot_id = ? ORDER BY parent_id, position`, id)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer rows.Close()

	children := make(map[int64][]itemRow)
	var root *itemRow
	for rows.Next() {
		var r itemRow
		var parent int64
		if err := rows.Scan(&r.id, &parent, &r.path, &r.name, &r.isDir, &r.size); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if r.id == rootID {
			root = &r
			continue
		}
		children[parent] = append(children[parent], r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: snapshot %s", types.ErrNotFound, id)
	}

	tree, err := assemble(*root, children)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	slog.Debug("sqlitestore: loaded snapshot", "id", id, "size", tree.Size())
	return tree, nil
}

func assemble(r itemRow, children map[int64][]itemRow) (*types.Directory, error) {
	var items []types.Item
	for _, c := range children[r.id] {
		if !c.isDir {
			items = append(items, types.NewFile(c.name, c.size))
			continue
		}
		sub, err := assemble(c, children)
		if err != nil {
			return nil, err
		}
		items = append(items, sub)
	}
	d := types.NewDirectory(r.name, items)
	if d.Size() != r.size {
		return nil, fmt.Errorf("%w: %s stored %d, files sum to %d", ErrCorruptSnapshot, r.path, r.size, d.Size())
	}
	return d, nil
}

// Snapshot returns a Provider that browses a stored snapshot directly in the
// database.
func (s *SQLiteStore) Snapshot(id string) *SnapshotFS {
	return &SnapshotFS{store: s, id: id}
}

func (s *SQLiteStore) MountInfo() (string, string) { return "sqlitestore", s.dbPath }

var (
	_ types.Provider          = (*SnapshotFS)(nil)
	_ types.MountInfoProvider = (*SnapshotFS)(nil)
)

// SnapshotFS is a read-only Provider over one stored snapshot.
type SnapshotFS struct {
	store *SQLiteStore
	id    string
}

func (fs *SnapshotFS) Stat(ctx context.Context, path string) (*types.Entry, error) {
	_, entry, err := fs.lookup(ctx, path)
	return entry, err
}

// lookup resolves path to its item id. A repeated name resolves to its first
// occurrence in listing order, as termtree.Lookup does.
func (fs *SnapshotFS) lookup(ctx context.Context, path string) (int64, *types.Entry, error) {
	path = normPath(path)

	var itemID int64
	entry := types.Entry{Path: path}
	err := fs.store.db.QueryRowContext(ctx,
		`SELECT id, name, is_dir, size FROM items WHERE snapshot_id = ? AND path = ? ORDER BY id LIMIT 1`, fs.id, path).
		Scan(&itemID, &entry.Name, &entry.IsDir, &entry.Size)
	if err == sql.ErrNoRows {
		return 0, nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("stat error: %w", err)
	}
	if entry.IsDir {
		err := fs.store.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM items WHERE snapshot_id = ? AND parent_id = ?`, fs.id, itemID).Scan(&entry.Items)
		if err != nil {
			return 0, nil, fmt.Errorf("stat error: %w", err)
		}
	}
	return itemID, &entry, nil
}

func (fs *SnapshotFS) List(ctx context.Context, path string, opts types.ListOpts) ([]types.Entry, error) {
	selfID, self, err := fs.lookup(ctx, path)
	if err != nil {
		return nil, err
	}
	if !self.IsDir {
		return nil, fmt.Errorf("%w: %s", types.ErrNotDir, self.Path)
	}

	var rows *sql.Rows
	switch {
	case opts.Recursive && self.Path == "/":
		rows, err = fs.store.db.QueryContext(ctx,
			`SELECT path, name, is_dir, size FROM items WHERE snapshot_id = ? AND id != ? ORDER BY id`, fs.id, rootID)
	case opts.Recursive:
		rows, err = fs.store.db.QueryContext(ctx,
			`SELECT path, name, is_dir, size FROM items WHERE snapshot_id = ? AND substr(path, 1, ?) = ? ORDER BY id`,
			fs.id, len(self.Path)+1, self.Path+"/")
	default:
		rows, err = fs.store.db.QueryContext(ctx,
			`SELECT path, name, is_dir, size FROM items WHERE snapshot_id = ? AND parent_id = ? ORDER BY position`, fs.id, selfID)
	}
	if err != nil {
		return nil, fmt.Errorf("list error: %w", err)
	}
	defer rows.Close()

	var entries []types.Entry
	for rows.Next() {
		var e types.Entry
		if err := rows.Scan(&e.Path, &e.Name, &e.IsDir, &e.Size); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if opts.DirsOnly && !e.IsDir {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (fs *SnapshotFS) MountInfo() (string, string) { return "snapshot", fs.id }
