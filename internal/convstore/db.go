package convstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

// DB is a SQLite-backed Store for deployments that need conversations to
// survive a restart. Each conversation row holds the serialized state;
// per-id mutual exclusion is enforced with in-process locks, matching the
// single-writer contract.
type DB struct {
	conn *sql.DB
	path string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open opens (or creates) the store at the given path. WAL mode is enabled
// for concurrent reads.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	db := &DB{
		conn:  conn,
		path:  path,
		locks: make(map[string]*sync.Mutex),
	}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

// migrate creates the conversations table if needed.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS conversations (
			id         TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create conversations table: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string { return db.path }

// Close closes the underlying connection.
func (db *DB) Close() error { return db.conn.Close() }

// lockFor returns the per-id mutex, creating it if needed.
func (db *DB) lockFor(id string) *sync.Mutex {
	db.mu.Lock()
	defer db.mu.Unlock()
	l, ok := db.locks[id]
	if !ok {
		l = &sync.Mutex{}
		db.locks[id] = l
	}
	return l
}

// load reads a conversation row. Returns ErrNotFound when absent.
func (db *DB) load(id string) (*models.Conversation, error) {
	var data string
	err := db.conn.QueryRow("SELECT data FROM conversations WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", id, err)
	}

	var conv models.Conversation
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	return &conv, nil
}

// save upserts a conversation row.
func (db *DB) save(conv *models.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", conv.ID, err)
	}
	_, err = db.conn.Exec(`
		INSERT INTO conversations (id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, conv.ID, string(data))
	if err != nil {
		return fmt.Errorf("save conversation %s: %w", conv.ID, err)
	}
	return nil
}

// GetOrCreate returns a snapshot of the conversation, creating it on first use.
func (db *DB) GetOrCreate(id string) (models.Conversation, error) {
	var out models.Conversation
	err := db.Update(id, func(c *models.Conversation) error {
		out = snapshot(c)
		return nil
	})
	return out, err
}

// Get returns a snapshot of an existing conversation.
func (db *DB) Get(id string) (models.Conversation, error) {
	l := db.lockFor(id)
	l.Lock()
	defer l.Unlock()

	conv, err := db.load(id)
	if err != nil {
		return models.Conversation{}, err
	}
	return snapshot(conv), nil
}

// Update runs fn against the conversation under its per-id lock and
// persists the result.
func (db *DB) Update(id string, fn func(*models.Conversation) error) error {
	l := db.lockFor(id)
	l.Lock()
	defer l.Unlock()

	conv, err := db.load(id)
	if err == ErrNotFound {
		conv = &models.Conversation{ID: id, CreatedAt: time.Now()}
	} else if err != nil {
		return err
	}

	if err := fn(conv); err != nil {
		return err
	}
	return db.save(conv)
}

// AppendMessage appends to the conversation's message log.
func (db *DB) AppendMessage(id string, role models.Role, text string) error {
	return db.Update(id, func(c *models.Conversation) error {
		appendMessage(c, role, text)
		return nil
	})
}

// MergeSlots applies a slot delta under the sticky-merge invariant.
func (db *DB) MergeSlots(id string, delta models.SlotSet) error {
	return db.Update(id, func(c *models.Conversation) error {
		c.Slots.Merge(delta)
		return nil
	})
}

// SetPlan replaces the conversation's plan.
func (db *DB) SetPlan(id string, plan *models.Plan) error {
	return db.Update(id, func(c *models.Conversation) error {
		c.Plan = plan
		return nil
	})
}

// Clear removes all state for the conversation.
func (db *DB) Clear(id string) error {
	l := db.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if _, err := db.conn.Exec("DELETE FROM conversations WHERE id = ?", id); err != nil {
		return fmt.Errorf("clear conversation %s: %w", id, err)
	}
	return nil
}
