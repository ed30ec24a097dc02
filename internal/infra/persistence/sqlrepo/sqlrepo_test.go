package sqlrepo

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowpress/hollow-press/pkg/domain/model"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE articles (
	id INTEGER PRIMARY KEY, title TEXT NOT NULL, content_md TEXT, content_html TEXT,
	status TEXT NOT NULL, abbrlink TEXT, created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL,
	deleted_at DATETIME
);
CREATE TABLE post_categories (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE article_post_categories (article_id INTEGER NOT NULL, post_category_id INTEGER NOT NULL);
CREATE TABLE pages (
	id INTEGER PRIMARY KEY, title TEXT NOT NULL, path TEXT NOT NULL, content TEXT, description TEXT,
	is_published BOOLEAN NOT NULL, created_at DATETIME NOT NULL, updated_at DATETIME NOT NULL, deleted_at DATETIME
);
CREATE TABLE comments (
	id INTEGER PRIMARY KEY, target_path TEXT NOT NULL, target_title TEXT, nickname TEXT NOT NULL,
	content TEXT NOT NULL, content_html TEXT, status INTEGER NOT NULL, created_at DATETIME NOT NULL, deleted_at DATETIME
);
CREATE TABLE users (
	id INTEGER PRIMARY KEY, username TEXT NOT NULL, nickname TEXT, email TEXT, website TEXT,
	user_group_id INTEGER NOT NULL, status INTEGER NOT NULL, created_at DATETIME NOT NULL, deleted_at DATETIME
);
CREATE TABLE content_reports (
	id TEXT PRIMARY KEY, target_path TEXT NOT NULL, reason TEXT NOT NULL, details TEXT,
	reporter_nickname TEXT, status TEXT NOT NULL, created_at DATETIME NOT NULL
);`

var (
	oct1 = time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	sep1 = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

func exec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	_, err := db.Exec(query, args...)
	require.NoError(t, err)
}

func TestArticleRepo(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	exec(t, db, `INSERT INTO articles (id, title, content_md, content_html, status, abbrlink, created_at, updated_at, deleted_at) VALUES
		(1, 'The Midnight Hour', '# Midnight', '<h1>Midnight</h1>', 'PUBLISHED', 'midnight', ?, ?, NULL),
		(2, 'Old Tale', NULL, '<p>old</p>', 'PUBLISHED', NULL, ?, ?, NULL),
		(3, 'Draft', '', '', 'DRAFT', NULL, ?, ?, NULL),
		(4, 'Removed', '', '', 'PUBLISHED', NULL, ?, ?, ?)`,
		oct1, oct1, sep1, sep1, oct1, oct1, oct1, oct1, oct1)
	exec(t, db, `INSERT INTO post_categories (id, name) VALUES (1, 'Horror'), (2, 'News')`)
	exec(t, db, `INSERT INTO article_post_categories (article_id, post_category_id) VALUES (1, 1), (1, 2), (3, 1)`)

	repo := NewArticleRepo(db, dialect.SQLite)

	t.Run("只返回已发布且未删除的文章", func(t *testing.T) {
		articles, err := repo.ListPublished(ctx, nil)
		require.NoError(t, err)
		require.Len(t, articles, 2)

		assert.Equal(t, uint(1), articles[0].ID, "按创建时间倒序")
		assert.Equal(t, "midnight", articles[0].Abbrlink)
		assert.True(t, articles[0].CreatedAt.Equal(oct1))
		assert.ElementsMatch(t, []string{"Horror", "News"}, articles[0].CategoryNames())

		assert.Equal(t, "", articles[1].ContentMd)
		assert.Empty(t, articles[1].PostCategories)
	})

	t.Run("按起始日期过滤", func(t *testing.T) {
		from := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		articles, err := repo.ListPublished(ctx, &from)
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "The Midnight Hour", articles[0].Title)
	})
}

func TestPageRepo(t *testing.T) {
	db := openTestDB(t)
	exec(t, db, `INSERT INTO pages (id, title, path, content, description, is_published, created_at, updated_at, deleted_at) VALUES
		(1, 'About', '/about', '<p>About us</p>', 'who we are', 1, ?, ?, NULL),
		(2, 'Hidden', '/hidden', NULL, NULL, 0, ?, ?, NULL)`,
		oct1, oct1, oct1, oct1)

	pages, err := NewPageRepo(db, dialect.SQLite).ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "/about", pages[0].Path)
	assert.True(t, pages[0].IsPublished)
	assert.Equal(t, "who we are", pages[0].Description)
}

func TestCommentRepo(t *testing.T) {
	db := openTestDB(t)
	exec(t, db, `INSERT INTO comments (id, target_path, target_title, nickname, content, content_html, status, created_at, deleted_at) VALUES
		(1, '/posts/midnight', 'The Midnight Hour', 'raven', 'Spooky', '<p>Spooky</p>', 1, ?, NULL),
		(2, '/about', NULL, 'crow', 'Hello', NULL, 1, ?, NULL),
		(3, '/about', NULL, 'spam', 'Buy now', NULL, 2, ?, NULL),
		(4, '/about', NULL, 'gone', 'Deleted', NULL, 1, ?, ?)`,
		oct1, sep1, oct1, oct1, oct1)

	comments, err := NewCommentRepo(db, dialect.SQLite).ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, comments, 2)

	byID := map[uint]*model.Comment{}
	for _, c := range comments {
		byID[c.ID] = c
	}
	require.NotNil(t, byID[1].TargetTitle)
	assert.Equal(t, "The Midnight Hour", *byID[1].TargetTitle)
	assert.Nil(t, byID[2].TargetTitle)
	assert.True(t, byID[2].IsPublished())
}

func TestUserRepo(t *testing.T) {
	db := openTestDB(t)
	exec(t, db, `INSERT INTO users (id, username, nickname, email, website, user_group_id, status, created_at, deleted_at) VALUES
		(1, 'admin', 'Midnight Admin', 'admin@example.com', NULL, 1, 1, ?, NULL),
		(2, 'ghost', NULL, NULL, NULL, 2, 1, ?, ?)`,
		oct1, oct1, oct1)

	users, err := NewUserRepo(db, dialect.SQLite).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, uint(model.AdminUserGroupID), users[0].UserGroupID)
	assert.Equal(t, "", users[0].Website)
}

func TestReportRepo(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	exec(t, db, `INSERT INTO content_reports (id, target_path, reason, details, reporter_nickname, status, created_at) VALUES
		('6f1c2d8e-7a4b-4e3c-9d1f-2b3a4c5d6e7f', '/posts/midnight', 'Spam links', NULL, 'raven', 'OPEN', ?)`, oct1)

	repo := NewReportRepo(db, dialect.SQLite)
	reports, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "6f1c2d8e-7a4b-4e3c-9d1f-2b3a4c5d6e7f", reports[0].ID.String())
	assert.Equal(t, model.ReportStatusOpen, reports[0].Status)

	exec(t, db, `INSERT INTO content_reports (id, target_path, reason, status, created_at) VALUES ('not-a-uuid', '/x', 'bad', 'OPEN', ?)`, oct1)
	_, err = repo.ListAll(ctx)
	assert.ErrorContains(t, err, "not-a-uuid")
}

func TestDBTimeScan(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    time.Time
		wantErr bool
	}{
		{"空值", nil, time.Time{}, false},
		{"时间类型", oct1, oct1, false},
		{"RFC3339 文本", "2026-10-01T08:00:00Z", oct1, false},
		{"SQLite 默认格式", []byte("2026-10-01 08:00:00"), oct1, false},
		{"Unix 时间戳", oct1.Unix(), oct1, false},
		{"无法解析", "yesterday", time.Time{}, true},
		{"不支持的类型", 3.14, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got dbTime
			err := got.Scan(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Time.Equal(tt.want), "got %v", got.Time)
		})
	}
}

func TestQueriesUseDialectPlaceholders(t *testing.T) {
	pg := &articleRepo{base{dialect: dialect.Postgres}}
	query, args := pg.listPublishedQuery(&oct1).Query()
	assert.Contains(t, query, "$1")
	assert.Contains(t, query, `"articles"."deleted_at" IS NULL`)
	assert.Len(t, args, 2)

	my := &commentRepo{base{dialect: dialect.MySQL}}
	query, _ = my.listPublishedQuery().Query()
	assert.Contains(t, query, "`comments`.`status` = ?")
}
