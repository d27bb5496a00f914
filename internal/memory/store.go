// Package memory implements the cross-project memory engine.
//
// It uses SQLite with FTS5 full-text search to persist session summaries,
// recorded decisions, and defined objectives per project, so context
// survives between working sessions and can be searched across projects.
package memory

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ─── Types ───────────────────────────────────────────────────────────────────

// Session is one saved working-session summary.
type Session struct {
	ID        int64    `json:"id"`
	ProjectID string   `json:"project_id"`
	Summary   string   `json:"summary"`
	Decisions []string `json:"decisions"`
	NextSteps []string `json:"next_steps"`
	Blockers  []string `json:"blockers"`
	CreatedAt string   `json:"timestamp"`
}

// Decision is a recorded technical or architectural decision.
type Decision struct {
	ID        int64  `json:"id"`
	ProjectID string `json:"project_id"`
	Decision  string `json:"decision"`
	Rationale string `json:"rationale"`
	CreatedAt string `json:"timestamp"`
}

// Objective is the stored project objective, one per project.
type Objective struct {
	ProjectID      string `json:"project_id"`
	Problem        string `json:"problem"`
	TargetUser     string `json:"target_user"`
	Solution       string `json:"solution"`
	SuccessMetrics string `json:"success_metrics"`
	Constraints    string `json:"constraints"`
	ClarityScore   int    `json:"clarity_score"`
	DefinedAt      string `json:"defined_at"`
}

// ProjectInfo is a compact per-project listing entry.
type ProjectInfo struct {
	ID           string `json:"project_id"`
	Path         string `json:"project_path"`
	LastActivity string `json:"last_activity"`
	SessionCount int    `json:"session_count"`
	HasObjective bool   `json:"has_objective"`
}

// Context is everything the memory holds about one project.
type Context struct {
	ProjectID      string     `json:"project_id"`
	ProjectPath    string     `json:"project_path"`
	Objective      *Objective `json:"objective,omitempty"`
	RecentSessions []Session  `json:"recent_sessions"`
	AllDecisions   []Decision `json:"all_decisions"`
	LastUpdated    string     `json:"last_updated"`
}

// Match is one search hit inside a project.
type Match struct {
	Type      string `json:"type"` // session | decision | objective
	Timestamp string `json:"timestamp,omitempty"`
	Content   string `json:"content"`
}

// ProjectMatches groups search hits by project.
type ProjectMatches struct {
	ProjectID   string  `json:"project_id"`
	ProjectPath string  `json:"project_path"`
	Matches     []Match `json:"matches"`
}

// SearchResult is the full cross-project search output.
type SearchResult struct {
	Query        string           `json:"query"`
	TotalResults int              `json:"total_results"`
	Results      []ProjectMatches `json:"results"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds memory store configuration.
type Config struct {
	DataDir               string
	MaxSessionsPerProject int
	MaxMatchesPerProject  int
	MaxSearchProjects     int
}

// DefaultConfig returns the default configuration for the memory store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:               filepath.Join(home, ".best-practice"),
		MaxSessionsPerProject: 10,
		MaxMatchesPerProject:  5,
		MaxSearchProjects:     10,
	}
}

// ProjectID derives the stable memory key for a project from its path:
// the directory basename, lowercased, with spaces collapsed to underscores.
func ProjectID(projectPath string) string {
	base := filepath.Base(filepath.Clean(projectPath))
	return strings.ToLower(strings.ReplaceAll(base, " ", "_"))
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the persistent memory engine backed by SQLite + FTS5.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a new Store with the given configuration.
// It creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("memory: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "memory.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("memory: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("memory: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("memory: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS projects (
			id         TEXT PRIMARY KEY,
			path       TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id TEXT NOT NULL,
			summary    TEXT NOT NULL,
			decisions  TEXT NOT NULL DEFAULT '[]',
			next_steps TEXT NOT NULL DEFAULT '[]',
			blockers   TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_project ON sessions(project_id, id DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS sessions_fts USING fts5(
			summary,
			content='sessions',
			content_rowid='id'
		);

		CREATE TABLE IF NOT EXISTS decisions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id TEXT NOT NULL,
			decision   TEXT NOT NULL,
			rationale  TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE INDEX IF NOT EXISTS idx_decisions_project ON decisions(project_id, id DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS decisions_fts USING fts5(
			decision,
			rationale,
			content='decisions',
			content_rowid='id'
		);

		CREATE TABLE IF NOT EXISTS objectives (
			project_id      TEXT PRIMARY KEY,
			problem         TEXT NOT NULL DEFAULT '',
			target_user     TEXT NOT NULL DEFAULT '',
			solution        TEXT NOT NULL DEFAULT '',
			success_metrics TEXT NOT NULL DEFAULT '',
			constraints     TEXT NOT NULL DEFAULT '',
			clarity_score   INTEGER NOT NULL DEFAULT 0,
			defined_at      TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Create FTS triggers (idempotent)
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='sessions_fts_insert'",
	).Scan(&name)

	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER sessions_fts_insert AFTER INSERT ON sessions BEGIN
				INSERT INTO sessions_fts(rowid, summary) VALUES (new.id, new.summary);
			END;

			CREATE TRIGGER sessions_fts_delete AFTER DELETE ON sessions BEGIN
				INSERT INTO sessions_fts(sessions_fts, rowid, summary)
				VALUES ('delete', old.id, old.summary);
			END;

			CREATE TRIGGER decisions_fts_insert AFTER INSERT ON decisions BEGIN
				INSERT INTO decisions_fts(rowid, decision, rationale)
				VALUES (new.id, new.decision, new.rationale);
			END;

			CREATE TRIGGER decisions_fts_delete AFTER DELETE ON decisions BEGIN
				INSERT INTO decisions_fts(decisions_fts, rowid, decision, rationale)
				VALUES ('delete', old.id, old.decision, old.rationale);
			END;
		`
		if _, err := s.db.Exec(triggers); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return nil
}

// ─── Projects ────────────────────────────────────────────────────────────────

// touchProject registers a project on first contact and bumps its activity
// timestamp on every write.
func (s *Store) touchProject(projectPath string) (string, error) {
	id := ProjectID(projectPath)
	_, err := s.db.Exec(`
		INSERT INTO projects (id, path) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET path = excluded.path, updated_at = datetime('now')`,
		id, projectPath,
	)
	if err != nil {
		return "", fmt.Errorf("memory: touch project: %w", err)
	}
	return id, nil
}

// ListProjects returns every tracked project, most recently active first.
func (s *Store) ListProjects() ([]ProjectInfo, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.path, p.updated_at,
		       (SELECT COUNT(*) FROM sessions s WHERE s.project_id = p.id),
		       EXISTS (SELECT 1 FROM objectives o WHERE o.project_id = p.id)
		FROM projects p
		ORDER BY p.updated_at DESC, p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProjectInfo
	for rows.Next() {
		var info ProjectInfo
		if err := rows.Scan(&info.ID, &info.Path, &info.LastActivity, &info.SessionCount, &info.HasObjective); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// ─── Sessions ────────────────────────────────────────────────────────────────

// SaveSessionSummary stores a working-session summary. Only the most recent
// sessions are kept per project; older ones are pruned.
func (s *Store) SaveSessionSummary(projectPath, summary string, decisions, nextSteps, blockers []string) (string, error) {
	id, err := s.touchProject(projectPath)
	if err != nil {
		return "", err
	}

	_, err = s.db.Exec(`
		INSERT INTO sessions (project_id, summary, decisions, next_steps, blockers)
		VALUES (?, ?, ?, ?, ?)`,
		id, summary, jsonList(decisions), jsonList(nextSteps), jsonList(blockers),
	)
	if err != nil {
		return "", fmt.Errorf("memory: save session: %w", err)
	}

	_, err = s.db.Exec(`
		DELETE FROM sessions
		WHERE project_id = ?
		  AND id NOT IN (
			SELECT id FROM sessions WHERE project_id = ? ORDER BY id DESC LIMIT ?
		  )`,
		id, id, s.cfg.MaxSessionsPerProject,
	)
	if err != nil {
		return "", fmt.Errorf("memory: prune sessions: %w", err)
	}
	return id, nil
}

// RecentSessions returns up to limit sessions for a project, oldest first so
// the caller can replay them in order.
func (s *Store) RecentSessions(projectPath string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 3
	}

	rows, err := s.db.Query(`
		SELECT id, project_id, summary, decisions, next_steps, blockers, created_at
		FROM (
			SELECT * FROM sessions WHERE project_id = ? ORDER BY id DESC LIMIT ?
		)
		ORDER BY id ASC`,
		ProjectID(projectPath), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func scanSession(rows *sql.Rows) (Session, error) {
	var sess Session
	var decisions, nextSteps, blockers string
	if err := rows.Scan(&sess.ID, &sess.ProjectID, &sess.Summary, &decisions, &nextSteps, &blockers, &sess.CreatedAt); err != nil {
		return Session{}, err
	}
	sess.Decisions = parseList(decisions)
	sess.NextSteps = parseList(nextSteps)
	sess.Blockers = parseList(blockers)
	return sess, nil
}

// ─── Decisions ───────────────────────────────────────────────────────────────

// SaveDecision records a decision and returns the project's decision count.
func (s *Store) SaveDecision(projectPath, decision, rationale string) (int, error) {
	id, err := s.touchProject(projectPath)
	if err != nil {
		return 0, err
	}

	if _, err := s.db.Exec(`
		INSERT INTO decisions (project_id, decision, rationale) VALUES (?, ?, ?)`,
		id, decision, rationale,
	); err != nil {
		return 0, fmt.Errorf("memory: save decision: %w", err)
	}

	var count int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM decisions WHERE project_id = ?`, id,
	).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Decisions returns all recorded decisions for a project, oldest first.
func (s *Store) Decisions(projectPath string) ([]Decision, error) {
	rows, err := s.db.Query(`
		SELECT id, project_id, decision, rationale, created_at
		FROM decisions WHERE project_id = ? ORDER BY id ASC`,
		ProjectID(projectPath),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var d Decision
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Decision, &d.Rationale, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ─── Objectives ──────────────────────────────────────────────────────────────

// SaveObjective upserts the project's objective. A project has at most one.
func (s *Store) SaveObjective(projectPath string, obj Objective) error {
	id, err := s.touchProject(projectPath)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO objectives
			(project_id, problem, target_user, solution, success_metrics, constraints, clarity_score, defined_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			problem         = excluded.problem,
			target_user     = excluded.target_user,
			solution        = excluded.solution,
			success_metrics = excluded.success_metrics,
			constraints     = excluded.constraints,
			clarity_score   = excluded.clarity_score,
			defined_at      = excluded.defined_at`,
		id, obj.Problem, obj.TargetUser, obj.Solution, obj.SuccessMetrics,
		obj.Constraints, obj.ClarityScore, obj.DefinedAt,
	)
	if err != nil {
		return fmt.Errorf("memory: save objective: %w", err)
	}
	return nil
}

// LoadObjective returns the project's objective, or nil when none is stored.
func (s *Store) LoadObjective(projectPath string) (*Objective, error) {
	var obj Objective
	err := s.db.QueryRow(`
		SELECT project_id, problem, target_user, solution, success_metrics, constraints, clarity_score, defined_at
		FROM objectives WHERE project_id = ?`,
		ProjectID(projectPath),
	).Scan(&obj.ProjectID, &obj.Problem, &obj.TargetUser, &obj.Solution,
		&obj.SuccessMetrics, &obj.Constraints, &obj.ClarityScore, &obj.DefinedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// ─── Context ─────────────────────────────────────────────────────────────────

// ProjectContext assembles everything stored about a project: objective,
// the last few sessions, and the full decision log.
func (s *Store) ProjectContext(projectPath string) (*Context, error) {
	id := ProjectID(projectPath)

	ctx := &Context{ProjectID: id, ProjectPath: projectPath}

	var path, updated string
	err := s.db.QueryRow(
		`SELECT path, updated_at FROM projects WHERE id = ?`, id,
	).Scan(&path, &updated)
	if err == nil {
		ctx.ProjectPath = path
		ctx.LastUpdated = updated
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	if ctx.Objective, err = s.LoadObjective(projectPath); err != nil {
		return nil, err
	}
	if ctx.RecentSessions, err = s.RecentSessions(projectPath, 3); err != nil {
		return nil, err
	}
	if ctx.AllDecisions, err = s.Decisions(projectPath); err != nil {
		return nil, err
	}
	if ctx.RecentSessions == nil {
		ctx.RecentSessions = []Session{}
	}
	if ctx.AllDecisions == nil {
		ctx.AllDecisions = []Decision{}
	}
	return ctx, nil
}

// ─── Search ──────────────────────────────────────────────────────────────────

// Search runs a full-text query across every project's sessions, decisions,
// and objectives. Results are grouped by project, capped per project and in
// total, most recently active project first.
func (s *Store) Search(query string) (*SearchResult, error) {
	result := &SearchResult{Query: query, Results: []ProjectMatches{}}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return result, nil
	}
	ftsQuery := quoteFTS(trimmed)

	byProject := map[string]*ProjectMatches{}
	var order []string

	add := func(projectID, projectPath string, m Match) {
		pm, ok := byProject[projectID]
		if !ok {
			pm = &ProjectMatches{ProjectID: projectID, ProjectPath: projectPath}
			byProject[projectID] = pm
			order = append(order, projectID)
		}
		if len(pm.Matches) < s.cfg.MaxMatchesPerProject {
			pm.Matches = append(pm.Matches, m)
		}
	}

	// Session summaries.
	rows, err := s.db.Query(`
		SELECT sess.project_id, p.path, sess.created_at, sess.summary
		FROM sessions_fts f
		JOIN sessions sess ON sess.id = f.rowid
		JOIN projects p ON p.id = sess.project_id
		WHERE sessions_fts MATCH ?
		ORDER BY p.updated_at DESC, sess.id DESC`,
		ftsQuery,
	)
	if err != nil {
		return nil, fmt.Errorf("memory: search sessions: %w", err)
	}
	if err := collectMatches(rows, "session", add); err != nil {
		return nil, err
	}

	// Decisions: the match content joins decision and rationale.
	rows, err = s.db.Query(`
		SELECT d.project_id, p.path, d.created_at, d.decision || ' - ' || d.rationale
		FROM decisions_fts f
		JOIN decisions d ON d.id = f.rowid
		JOIN projects p ON p.id = d.project_id
		WHERE decisions_fts MATCH ?
		ORDER BY p.updated_at DESC, d.id DESC`,
		ftsQuery,
	)
	if err != nil {
		return nil, fmt.Errorf("memory: search decisions: %w", err)
	}
	if err := collectMatches(rows, "decision", add); err != nil {
		return nil, err
	}

	// Objectives: substring match over the concatenated fields.
	rows, err = s.db.Query(`
		SELECT o.project_id, p.path
		FROM objectives o
		JOIN projects p ON p.id = o.project_id
		WHERE instr(lower(o.problem || ' ' || o.target_user || ' ' || o.solution || ' ' ||
		             o.success_metrics || ' ' || o.constraints), lower(?)) > 0
		ORDER BY p.updated_at DESC`,
		trimmed,
	)
	if err != nil {
		return nil, fmt.Errorf("memory: search objectives: %w", err)
	}
	func() {
		defer rows.Close()
		for rows.Next() {
			var projectID, path string
			if rows.Scan(&projectID, &path) == nil {
				add(projectID, path, Match{Type: "objective", Content: "Objective contains search term"})
			}
		}
	}()

	for _, projectID := range order {
		if len(result.Results) >= s.cfg.MaxSearchProjects {
			break
		}
		result.Results = append(result.Results, *byProject[projectID])
	}
	result.TotalResults = len(result.Results)
	return result, nil
}

func collectMatches(rows *sql.Rows, matchType string, add func(projectID, path string, m Match)) error {
	defer rows.Close()
	for rows.Next() {
		var projectID, path, timestamp, content string
		if err := rows.Scan(&projectID, &path, &timestamp, &content); err != nil {
			return err
		}
		add(projectID, path, Match{Type: matchType, Timestamp: timestamp, Content: content})
	}
	return rows.Err()
}

// quoteFTS wraps the query as an FTS5 phrase so user input is never parsed
// as query syntax. An unbalanced quote or bare operator would otherwise be
// a syntax error.
func quoteFTS(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func parseList(raw string) []string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}
